package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ev(id string, day, hh, mm int, st Status) Event {
	return Event{ID: id, Type: EventActivity, Timestamp: at(day, hh, mm), Status: st}
}

func TestBucket_OrderAndLabels(t *testing.T) {
	events := []Event{
		ev("y1", -1, 9, 0, StatusCompleted),
		ev("t-late", 0, 18, 0, StatusUpcoming),
		ev("t1", 0, 8, 0, StatusCompleted),
		ev("old", -2, 12, 0, StatusCompleted),
		ev("tm", 1, 9, 0, StatusUpcoming),
		ev("t2", 0, 9, 30, StatusCompleted),
		ev("in3", 3, 8, 0, StatusUpcoming),
		ev("y2", -1, 21, 0, StatusCompleted),
	}

	days := Bucket(events, testNow)

	assert.Equal(t, []string{"Today", "Yesterday", "Saturday, Oct 17", "Tomorrow", "In 3 days"}, dayLabels(days))
	assert.Equal(t, []string{"t-late", "t2", "t1"}, eventIDs(days[0].Events))
	assert.Equal(t, []string{"y2", "y1"}, eventIDs(days[1].Events))

	assert.True(t, days[0].IsToday)
	assert.False(t, days[0].IsYesterday)
	assert.True(t, days[1].IsYesterday)
	assert.False(t, days[3].IsToday)
	assert.Equal(t, at(0, 0, 0), days[0].Date)
}

func TestBucket_FutureOnlyToday(t *testing.T) {
	days := Bucket([]Event{ev("later", 0, 20, 0, StatusUpcoming), ev("tm", 1, 8, 0, StatusUpcoming)}, testNow)

	require.Len(t, days, 2)
	assert.Equal(t, "Today", days[0].Label)
	assert.Equal(t, "Tomorrow", days[1].Label)
}

func TestBucket_Empty(t *testing.T) {
	days := Bucket(nil, testNow)
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestBucket_EveryEventInExactlyOneDay(t *testing.T) {
	events, _ := Normalize(fullSources(), testNow)
	days := Bucket(events, testNow)

	assert.Equal(t, len(events), CountEvents(days))

	seen := map[string]int{}
	for _, d := range days {
		require.NotEmpty(t, d.Events)
		for _, e := range d.Events {
			seen[e.ID]++
			assert.True(t, sameDay(e.Timestamp, d.Date, testNow.Location()), "%s in wrong day", e.ID)
		}
		for i := 1; i < len(d.Events); i++ {
			assert.False(t, d.Events[i].Timestamp.After(d.Events[i-1].Timestamp), "day %s not newest first", d.Label)
		}
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "event %s", id)
	}
}

func TestBucket_DoesNotReorderInput(t *testing.T) {
	events := []Event{ev("a", -1, 9, 0, StatusCompleted), ev("b", 0, 9, 0, StatusCompleted)}
	_ = Bucket(events, testNow)
	assert.Equal(t, []string{"a", "b"}, eventIDs(events))
}
