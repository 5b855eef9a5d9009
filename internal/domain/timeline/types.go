package timeline

import "time"

type EventType string

const (
	EventActivity     EventType = "activity"
	EventMeal         EventType = "meal"
	EventWeight       EventType = "weight"
	EventGrooming     EventType = "grooming"
	EventVetVisit     EventType = "vet_visit"
	EventVaccination  EventType = "vaccination"
	EventCheckup      EventType = "checkup"
	EventTreatment    EventType = "treatment"
	EventTreat        EventType = "treat"
	EventBowlCleaning EventType = "bowl_cleaning"
	EventInjury       EventType = "injury"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusUpcoming  Status = "upcoming"
	StatusOverdue   Status = "overdue"
)

// Labels de métricas que el agregador de progreso lee de vuelta.
const (
	MetricDuration = "Duration"
	MetricDistance = "Distance"
	MetricCalories = "Calories"
)

// DefaultDisplayLimit es el máximo de eventos visibles sin "ver todo".
const DefaultDisplayLimit = 12

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Event es un TimelineEvent: valor derivado, se recalcula en cada pasada.
type Event struct {
	ID        string
	Type      EventType
	Title     string
	Timestamp time.Time
	Status    Status
	Metrics   []Metric

	// Details apunta al registro fuente (solo lectura).
	Details  Record
	Metadata map[string]string
}

// Metric devuelve el valor de la métrica con ese label, si existe.
func (e Event) Metric(label string) (string, bool) {
	for _, m := range e.Metrics {
		if m.Label == label {
			return m.Value, true
		}
	}
	return "", false
}

// Day agrupa los eventos de un mismo día calendario local, más reciente primero.
type Day struct {
	Date        time.Time
	Label       string
	Events      []Event
	IsToday     bool
	IsYesterday bool
}

type UrgentAlert struct {
	Type        EventType
	Title       string
	Description string
	EventID     string // id del registro fuente, no del evento
	DaysOverdue int
	Metadata    map[string]string
}

type TodayProgress struct {
	Minutes  int     `json:"minutes"`
	Distance float64 `json:"distance"`
	Calories int     `json:"calories"`
}

// Issue describe un registro cuya derivación se omitió. No corta el pipeline.
type Issue struct {
	Kind     RecordKind
	RecordID string
	Err      error
}

type Options struct {
	Now      time.Time
	ShowFull bool

	// Limit <= 0 usa DefaultDisplayLimit.
	Limit int
}

type Result struct {
	// Now es el instante de referencia contra el que se calculó todo.
	Now time.Time

	// Days es lo que se muestra (posiblemente truncado).
	Days []Day
	// AllDays es la salida completa del merger.
	AllDays []Day

	Alerts   []UrgentAlert
	Progress TodayProgress

	TotalEvents int
	ShownEvents int

	Issues []Issue
}

// HiddenEvents es lo que queda detrás de "ver todo".
func (r Result) HiddenEvents() int {
	return r.TotalEvents - r.ShownEvents
}
