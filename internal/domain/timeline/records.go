package timeline

// RecordKind identifica el tipo de registro fuente que alimenta el timeline.
type RecordKind string

const (
	KindActivity     RecordKind = "activity"
	KindMeal         RecordKind = "meal"
	KindWeight       RecordKind = "weight"
	KindGrooming     RecordKind = "grooming"
	KindVetVisit     RecordKind = "vet_visit"
	KindVaccination  RecordKind = "vaccination"
	KindCheckup      RecordKind = "checkup"
	KindTreatment    RecordKind = "treatment"
	KindTreat        RecordKind = "treat"
	KindBowlCleaning RecordKind = "bowl_cleaning"
)

// Record es la unión de registros fuente. Cada variante tiene su propio normalizer.
type Record interface {
	Kind() RecordKind
	RecordID() string
}

type Activity struct {
	ID              string   `json:"id"`
	PetID           string   `json:"pet_id"`
	ActivityType    string   `json:"activity_type"` // walk, run, play...
	StartTime       Date     `json:"start_time"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	Calories        *int     `json:"calories,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// Meal guarda fecha y hora programadas como texto, tal como vienen del backend.
type Meal struct {
	ID             string   `json:"id"`
	PetID          string   `json:"pet_id"`
	MealName       string   `json:"meal_name"`
	ScheduledDate  string   `json:"scheduled_date,omitempty"` // YYYY-MM-DD
	MealTime       string   `json:"meal_time,omitempty"`      // HH:MM o HH:MM:SS
	CompletedAt    *Date    `json:"completed_at,omitempty"`
	AmountGiven    *float64 `json:"amount_given,omitempty"`
	AmountConsumed *float64 `json:"amount_consumed,omitempty"`
	Unit           string   `json:"unit,omitempty"` // "g", "cups"
}

type WeightRecord struct {
	ID                 string  `json:"id"`
	PetID              string  `json:"pet_id"`
	WeightKg           float64 `json:"weight_kg"`
	BodyConditionScore *int    `json:"body_condition_score,omitempty"` // 1-9
	RecordedAt         Date    `json:"recorded_at"`
}

type GroomingSchedule struct {
	ID              string `json:"id"`
	PetID           string `json:"pet_id"`
	GroomingType    string `json:"grooming_type"` // bath, nail_trim...
	LastCompletedAt *Date  `json:"last_completed_at,omitempty"`
	NextDueDate     *Date  `json:"next_due_date,omitempty"`
}

type VetVisit struct {
	ID         string `json:"id"`
	PetID      string `json:"pet_id"`
	VisitDate  Date   `json:"visit_date"`
	Reason     string `json:"reason,omitempty"`
	ClinicName string `json:"clinic_name,omitempty"`
	VetName    string `json:"vet_name,omitempty"`
}

type Vaccination struct {
	ID               string `json:"id"`
	PetID            string `json:"pet_id"`
	VaccineName      string `json:"vaccine_name"`
	AdministeredDate Date   `json:"administered_date"`
	DueDate          *Date  `json:"due_date,omitempty"`
	LotNumber        string `json:"lot_number,omitempty"`
}

type Checkup struct {
	ID          string `json:"id"`
	PetID       string `json:"pet_id"`
	CheckupDate Date   `json:"checkup_date"`
	Notes       string `json:"notes,omitempty"`
}

type Treatment struct {
	ID                 string `json:"id"`
	PetID              string `json:"pet_id"`
	TreatmentName      string `json:"treatment_name"`
	TreatmentType      string `json:"treatment_type,omitempty"` // deworming, flea_tick...
	Dosage             string `json:"dosage,omitempty"`
	LastAdministeredAt *Date  `json:"last_administered_at,omitempty"`
	NextDueDate        *Date  `json:"next_due_date,omitempty"`
}

type TreatLog struct {
	ID        string `json:"id"`
	PetID     string `json:"pet_id"`
	TreatName string `json:"treat_name"`
	Quantity  int    `json:"quantity"`
	Calories  *int   `json:"calories,omitempty"`
	GivenAt   Date   `json:"given_at"`
}

// NutritionPlan solo aporta los timestamps de limpieza de platos.
type NutritionPlan struct {
	ID                 string `json:"id"`
	PetID              string `json:"pet_id"`
	FoodBowlCleanedAt  *Date  `json:"food_bowl_cleaned_at,omitempty"`
	WaterBowlCleanedAt *Date  `json:"water_bowl_cleaned_at,omitempty"`
}

func (Activity) Kind() RecordKind         { return KindActivity }
func (Meal) Kind() RecordKind             { return KindMeal }
func (WeightRecord) Kind() RecordKind     { return KindWeight }
func (GroomingSchedule) Kind() RecordKind { return KindGrooming }
func (VetVisit) Kind() RecordKind         { return KindVetVisit }
func (Vaccination) Kind() RecordKind      { return KindVaccination }
func (Checkup) Kind() RecordKind          { return KindCheckup }
func (Treatment) Kind() RecordKind        { return KindTreatment }
func (TreatLog) Kind() RecordKind         { return KindTreat }
func (NutritionPlan) Kind() RecordKind    { return KindBowlCleaning }

func (r Activity) RecordID() string         { return r.ID }
func (r Meal) RecordID() string             { return r.ID }
func (r WeightRecord) RecordID() string     { return r.ID }
func (r GroomingSchedule) RecordID() string { return r.ID }
func (r VetVisit) RecordID() string         { return r.ID }
func (r Vaccination) RecordID() string      { return r.ID }
func (r Checkup) RecordID() string          { return r.ID }
func (r Treatment) RecordID() string        { return r.ID }
func (r TreatLog) RecordID() string         { return r.ID }
func (r NutritionPlan) RecordID() string    { return r.ID }

// Sources es un snapshot consistente de las colecciones de una mascota.
// El core nunca lo modifica.
type Sources struct {
	Activities    []Activity         `json:"activities"`
	Meals         []Meal             `json:"meals"`
	Weights       []WeightRecord     `json:"weights"`
	Grooming      []GroomingSchedule `json:"grooming"`
	VetVisits     []VetVisit         `json:"vet_visits"`
	Vaccinations  []Vaccination      `json:"vaccinations"`
	Checkups      []Checkup          `json:"checkups"`
	Treatments    []Treatment        `json:"treatments"`
	Treats        []TreatLog         `json:"treats"`
	NutritionPlan *NutritionPlan     `json:"nutrition_plan,omitempty"`
}

// Records aplana el snapshot en orden fijo de colecciones.
func (s Sources) Records() []Record {
	out := make([]Record, 0, s.Len()+1)
	for _, r := range s.Activities {
		out = append(out, r)
	}
	for _, r := range s.Meals {
		out = append(out, r)
	}
	for _, r := range s.Weights {
		out = append(out, r)
	}
	for _, r := range s.Grooming {
		out = append(out, r)
	}
	for _, r := range s.VetVisits {
		out = append(out, r)
	}
	for _, r := range s.Vaccinations {
		out = append(out, r)
	}
	for _, r := range s.Checkups {
		out = append(out, r)
	}
	for _, r := range s.Treatments {
		out = append(out, r)
	}
	for _, r := range s.Treats {
		out = append(out, r)
	}
	if s.NutritionPlan != nil {
		out = append(out, *s.NutritionPlan)
	}
	return out
}

// Len cuenta registros de las nueve colecciones (sin el plan de nutrición).
func (s Sources) Len() int {
	return len(s.Activities) + len(s.Meals) + len(s.Weights) + len(s.Grooming) +
		len(s.VetVisits) + len(s.Vaccinations) + len(s.Checkups) + len(s.Treatments) + len(s.Treats)
}

// Clone copia los slices para que el llamador no comparta backing arrays con el repo.
func (s Sources) Clone() Sources {
	out := Sources{
		Activities:   append([]Activity(nil), s.Activities...),
		Meals:        append([]Meal(nil), s.Meals...),
		Weights:      append([]WeightRecord(nil), s.Weights...),
		Grooming:     append([]GroomingSchedule(nil), s.Grooming...),
		VetVisits:    append([]VetVisit(nil), s.VetVisits...),
		Vaccinations: append([]Vaccination(nil), s.Vaccinations...),
		Checkups:     append([]Checkup(nil), s.Checkups...),
		Treatments:   append([]Treatment(nil), s.Treatments...),
		Treats:       append([]TreatLog(nil), s.Treats...),
	}
	if s.NutritionPlan != nil {
		np := *s.NutritionPlan
		out.NutritionPlan = &np
	}
	return out
}
