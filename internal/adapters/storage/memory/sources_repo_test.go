package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-wellness-timeline/internal/domain/timeline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcesRepo_UnknownPetIsEmpty(t *testing.T) {
	repo := NewSourcesRepo()
	src, err := repo.LoadSources(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, src.Len())
	assert.Nil(t, src.NutritionPlan)
}

func TestSourcesRepo_ReplaceAssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewSourcesRepo()
	at := timeline.DateOf(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))

	err := repo.ReplaceSources(ctx, "pet-1", timeline.Sources{
		Activities:    []timeline.Activity{{ActivityType: "walk", StartTime: at}},
		Checkups:      []timeline.Checkup{{ID: "keep-me", PetID: "other", CheckupDate: at}},
		NutritionPlan: &timeline.NutritionPlan{FoodBowlCleanedAt: &at},
	})
	require.NoError(t, err)

	src, err := repo.LoadSources(ctx, "pet-1")
	require.NoError(t, err)
	require.Len(t, src.Activities, 1)

	_, err = uuid.Parse(src.Activities[0].ID)
	assert.NoError(t, err, "generated id should be a uuid")
	assert.Equal(t, "pet-1", src.Activities[0].PetID)

	assert.Equal(t, "keep-me", src.Checkups[0].ID)
	assert.Equal(t, "pet-1", src.Checkups[0].PetID)

	require.NotNil(t, src.NutritionPlan)
	assert.NotEmpty(t, src.NutritionPlan.ID)
}

func TestSourcesRepo_ReplaceRequiresPet(t *testing.T) {
	err := NewSourcesRepo().ReplaceSources(context.Background(), " ", timeline.Sources{})
	assert.ErrorIs(t, err, ErrPetIDRequired)
}

func TestSourcesRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewSourcesRepo()
	in := timeline.Sources{Weights: []timeline.WeightRecord{{ID: "w1", WeightKg: 10}}}
	require.NoError(t, repo.ReplaceSources(ctx, "p", in))

	// el llamador no comparte memoria con el repo en ninguna dirección
	in.Weights[0].WeightKg = 99
	got, _ := repo.LoadSources(ctx, "p")
	assert.Equal(t, 10.0, got.Weights[0].WeightKg)

	got.Weights[0].WeightKg = 50
	again, _ := repo.LoadSources(ctx, "p")
	assert.Equal(t, 10.0, again.Weights[0].WeightKg)
}

func TestSourcesRepo_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewSourcesRepo()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.ReplaceSources(ctx, "p", timeline.Sources{Checkups: []timeline.Checkup{{}}})
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.LoadSources(ctx, "p")
		}()
	}
	wg.Wait()

	src, err := repo.LoadSources(ctx, "p")
	require.NoError(t, err)
	assert.Len(t, src.Checkups, 1)
}
