package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-wellness-timeline/internal/domain/timeline"

	"github.com/google/uuid"
)

var (
	ErrPetIDRequired = errors.New("pet id required")
)

// SourcesRepo guarda un snapshot por mascota. Implementa timeline.Repository
// y timeline.SourceWriter.
type SourcesRepo struct {
	mu    sync.RWMutex
	byPet map[string]timeline.Sources
}

func NewSourcesRepo() *SourcesRepo {
	return &SourcesRepo{
		byPet: make(map[string]timeline.Sources),
	}
}

// LoadSources devuelve una copia; una mascota sin datos da un snapshot vacío.
func (r *SourcesRepo) LoadSources(ctx context.Context, petID string) (timeline.Sources, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.byPet[petID]
	if !ok {
		return timeline.Sources{}, nil
	}
	return src.Clone(), nil
}

// ReplaceSources reemplaza el snapshot completo. Registros sin id reciben uno
// y se les fija el pet_id.
func (r *SourcesRepo) ReplaceSources(ctx context.Context, petID string, src timeline.Sources) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return ErrPetIDRequired
	}

	src = src.Clone()
	assignIDs(petID, &src)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byPet[petID] = src
	return nil
}

func assignIDs(petID string, src *timeline.Sources) {
	for i := range src.Activities {
		fill(&src.Activities[i].ID, &src.Activities[i].PetID, petID)
	}
	for i := range src.Meals {
		fill(&src.Meals[i].ID, &src.Meals[i].PetID, petID)
	}
	for i := range src.Weights {
		fill(&src.Weights[i].ID, &src.Weights[i].PetID, petID)
	}
	for i := range src.Grooming {
		fill(&src.Grooming[i].ID, &src.Grooming[i].PetID, petID)
	}
	for i := range src.VetVisits {
		fill(&src.VetVisits[i].ID, &src.VetVisits[i].PetID, petID)
	}
	for i := range src.Vaccinations {
		fill(&src.Vaccinations[i].ID, &src.Vaccinations[i].PetID, petID)
	}
	for i := range src.Checkups {
		fill(&src.Checkups[i].ID, &src.Checkups[i].PetID, petID)
	}
	for i := range src.Treatments {
		fill(&src.Treatments[i].ID, &src.Treatments[i].PetID, petID)
	}
	for i := range src.Treats {
		fill(&src.Treats[i].ID, &src.Treats[i].PetID, petID)
	}
	if src.NutritionPlan != nil {
		fill(&src.NutritionPlan.ID, &src.NutritionPlan.PetID, petID)
	}
}

func fill(id, recPetID *string, petID string) {
	if strings.TrimSpace(*id) == "" {
		*id = uuid.NewString()
	}
	*recPetID = petID
}
