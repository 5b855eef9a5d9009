package timeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pet-wellness-timeline/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repos
// -------------------------

var errRepoDown = errors.New("repo: down")

type readOnlyRepo struct {
	byPet map[string]Sources
	err   error
	calls int
}

func (r *readOnlyRepo) LoadSources(ctx context.Context, petID string) (Sources, error) {
	r.calls++
	if r.err != nil {
		return Sources{}, r.err
	}
	return r.byPet[petID], nil
}

type writableRepo struct {
	readOnlyRepo
}

func (r *writableRepo) ReplaceSources(ctx context.Context, petID string, src Sources) error {
	if r.byPet == nil {
		r.byPet = map[string]Sources{}
	}
	r.byPet[petID] = src
	return nil
}

func newTestService(repo Repository, opts ServiceOptions) *Service {
	svc := NewService(repo, opts)
	svc.SetClock(func() time.Time { return testNow })
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestService_Timeline(t *testing.T) {
	repo := &readOnlyRepo{byPet: map[string]Sources{"pet-1": fullSources()}}
	svc := newTestService(repo, ServiceOptions{Location: time.UTC})

	res, err := svc.Timeline(context.Background(), " pet-1 ", false)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Days)
	assert.Equal(t, "Today", res.Days[0].Label)
	assert.Equal(t, 1, repo.calls)
}

func TestService_Timeline_InvalidPet(t *testing.T) {
	svc := newTestService(&readOnlyRepo{}, ServiceOptions{})
	_, err := svc.Timeline(context.Background(), "  ", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Timeline_RepoError(t *testing.T) {
	svc := newTestService(&readOnlyRepo{err: errRepoDown}, ServiceOptions{})
	_, err := svc.Timeline(context.Background(), "pet-1", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errRepoDown)
	assert.Contains(t, err.Error(), "load sources")
}

func TestService_DisplayLimit(t *testing.T) {
	var src Sources
	for i := 0; i < 6; i++ {
		src.Weights = append(src.Weights, WeightRecord{ID: string(rune('a' + i)), WeightKg: 9, RecordedAt: on(-i, 8, 0)})
	}
	svc := newTestService(&readOnlyRepo{byPet: map[string]Sources{"p": src}}, ServiceOptions{Location: time.UTC, DisplayLimit: 4})

	res, err := svc.Timeline(context.Background(), "p", false)
	require.NoError(t, err)
	assert.Equal(t, 4, res.ShownEvents)

	res, err = svc.Timeline(context.Background(), "p", true)
	require.NoError(t, err)
	assert.Equal(t, 6, res.ShownEvents)
}

func TestService_UsesConfiguredLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 10:00 UTC = 19:00 en Tokio; 16:00 UTC ya es mañana allá
	src := Sources{Checkups: []Checkup{{ID: "c1", CheckupDate: on(-1, 16, 0)}}}
	svc := newTestService(&readOnlyRepo{byPet: map[string]Sources{"p": src}}, ServiceOptions{Location: tokyo})

	res, err := svc.Timeline(context.Background(), "p", true)
	require.NoError(t, err)
	require.Len(t, res.Days, 1)
	assert.Equal(t, "Today", res.Days[0].Label)
	assert.Equal(t, tokyo, svc.Now().Location())
}

func TestService_AlertsAndProgressIgnoreLimit(t *testing.T) {
	src := Sources{
		Activities: []Activity{{ID: "a1", StartTime: on(0, 9, 0), DurationMinutes: ptr(20)}},
		Treatments: []Treatment{{ID: "t1", TreatmentName: "Deworming", NextDueDate: ptr(on(-4, 0, 0))}},
	}
	svc := newTestService(&readOnlyRepo{byPet: map[string]Sources{"p": src}}, ServiceOptions{Location: time.UTC, DisplayLimit: 1})

	alerts, err := svc.Alerts(context.Background(), "p")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "t1", alerts[0].EventID)
	assert.Equal(t, "4 days overdue", alerts[0].Description)

	p, err := svc.Progress(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, 20, p.Minutes)
}

func TestService_LogsSkippedRecords(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Options{Level: logger.Warn, Format: logger.FormatJSON})

	src := Sources{Meals: []Meal{{ID: "m-bad", ScheduledDate: "tomorrow", MealTime: "noon"}}}
	svc := newTestService(&readOnlyRepo{byPet: map[string]Sources{"p": src}}, ServiceOptions{Logger: log})

	res, err := svc.Timeline(context.Background(), "p", false)
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)

	out := buf.String()
	assert.Contains(t, out, `"msg":"record skipped"`)
	assert.Contains(t, out, `"record_id":"m-bad"`)
	assert.Contains(t, out, `"component":"timeline"`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestService_ReplaceSources(t *testing.T) {
	ctx := context.Background()

	ro := newTestService(&readOnlyRepo{}, ServiceOptions{})
	assert.False(t, ro.Writable())
	assert.ErrorIs(t, ro.ReplaceSources(ctx, "p", Sources{}), ErrReadOnlySources)

	repo := &writableRepo{}
	svc := newTestService(repo, ServiceOptions{})
	assert.True(t, svc.Writable())
	assert.ErrorIs(t, svc.ReplaceSources(ctx, "", Sources{}), ErrInvalidInput)

	require.NoError(t, svc.ReplaceSources(ctx, "p", Sources{Checkups: []Checkup{{ID: "c1", CheckupDate: on(-1, 9, 0)}}}))
	res, err := svc.Timeline(ctx, "p", false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalEvents)
}
