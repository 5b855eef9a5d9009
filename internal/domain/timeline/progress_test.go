package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress(t *testing.T) {
	src := Sources{
		Activities: []Activity{
			{ID: "a1", ActivityType: "walk", StartTime: on(0, 7, 0), DurationMinutes: ptr(30), DistanceKm: ptr(2.5), Calories: ptr(120)},
			{ID: "a2", ActivityType: "play", StartTime: on(0, 9, 0), DurationMinutes: ptr(15), DistanceKm: ptr(1.25)},
			{ID: "a3", ActivityType: "walk", StartTime: on(-1, 18, 0), DurationMinutes: ptr(60), Calories: ptr(300)},
			{ID: "a4", ActivityType: "run", StartTime: on(0, 12, 0), DurationMinutes: ptr(90)},
		},
		Treats: []TreatLog{{ID: "tr1", Quantity: 1, Calories: ptr(50), GivenAt: on(0, 8, 0)}},
	}

	events, _ := Normalize(src, testNow)
	p := ComputeProgress(Bucket(events, testNow))

	assert.Equal(t, TodayProgress{Minutes: 45, Distance: 3.75, Calories: 120}, p)
}

func TestComputeProgress_NoToday(t *testing.T) {
	days := Bucket([]Event{ev("y", -1, 9, 0, StatusCompleted)}, testNow)
	assert.Equal(t, TodayProgress{}, ComputeProgress(days))
	assert.Equal(t, TodayProgress{}, ComputeProgress(nil))
}

func TestComputeProgress_MatchesTodayMetrics(t *testing.T) {
	events, _ := Normalize(fullSources(), testNow)
	days := Bucket(events, testNow)

	today, ok := Today(days)
	if !ok {
		t.Fatal("expected a Today bucket")
	}
	want := TodayProgress{}
	for _, e := range today.Events {
		if e.Type != EventActivity || e.Status != StatusCompleted {
			continue
		}
		if v, ok := e.Metric(MetricDuration); ok {
			want.Minutes += leadingInt(v)
		}
	}
	assert.Equal(t, want.Minutes, ComputeProgress(days).Minutes)
	assert.Equal(t, 45, want.Minutes)
}

func TestLeadingNumbers(t *testing.T) {
	ints := map[string]int{
		"30 min":   30,
		"120 kcal": 120,
		"2.5 km":   2,
		"":         0,
		"min":      0,
		" 7 min":   7,
		"-3 min":   -3,
	}
	for in, want := range ints {
		assert.Equal(t, want, leadingInt(in), "leadingInt(%q)", in)
	}

	floats := map[string]float64{
		"2.5 km":  2.5,
		"3 km":    3,
		"0.75km":  0.75,
		"4. km":   4,
		"km":      0,
		"1.2.3 x": 1.2,
	}
	for in, want := range floats {
		assert.InDelta(t, want, leadingFloat(in), 1e-9, "leadingFloat(%q)", in)
	}
}
