package timeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrMalformedSchedule: fecha/hora de comida que no se pudo parsear.
	ErrMalformedSchedule = errors.New("malformed meal schedule")

	errKindMismatch = errors.New("record kind mismatch")
)

// mealHorizon: comidas programadas más allá de esto no aparecen.
const mealHorizon = 24 * time.Hour

const dueSuffix = "-due"

// normalizer mapea un registro a 0..2 eventos. Debe ser pura.
type normalizer func(rec Record, now time.Time) ([]Event, error)

var normalizers = map[RecordKind]normalizer{
	KindActivity:     typed(normalizeActivity),
	KindMeal:         typed(normalizeMeal),
	KindWeight:       typed(normalizeWeight),
	KindGrooming:     typed(normalizeGrooming),
	KindVetVisit:     typed(normalizeVetVisit),
	KindVaccination:  typed(normalizeVaccination),
	KindCheckup:      typed(normalizeCheckup),
	KindTreatment:    typed(normalizeTreatment),
	KindTreat:        typed(normalizeTreat),
	KindBowlCleaning: typed(normalizeBowls),
}

func typed[T Record](fn func(T, time.Time) ([]Event, error)) normalizer {
	return func(rec Record, now time.Time) ([]Event, error) {
		v, ok := rec.(T)
		if !ok {
			return nil, fmt.Errorf("%w: %T as %s", errKindMismatch, rec, rec.Kind())
		}
		return fn(v, now)
	}
}

// Normalize convierte todo el snapshot en eventos. Los registros que fallan
// se reportan como Issue y el resto sigue procesándose.
func Normalize(src Sources, now time.Time) ([]Event, []Issue) {
	records := src.Records()
	out := make([]Event, 0, len(records)*2)
	var issues []Issue

	for _, rec := range records {
		fn, ok := normalizers[rec.Kind()]
		if !ok {
			issues = append(issues, Issue{Kind: rec.Kind(), RecordID: rec.RecordID(), Err: errKindMismatch})
			continue
		}
		evs, err := fn(rec, now)
		if err != nil {
			issues = append(issues, Issue{Kind: rec.Kind(), RecordID: rec.RecordID(), Err: err})
		}
		out = append(out, evs...)
	}
	return out, issues
}

func normalizeActivity(a Activity, now time.Time) ([]Event, error) {
	ds := datesIn(now)
	start, ok := ds.at(a.StartTime)
	// Solo actividad ya ocurrida cuenta como hecho.
	if !ok || start.After(now) {
		return nil, ds.err()
	}

	var metrics []Metric
	if a.DurationMinutes != nil {
		metrics = append(metrics, Metric{Label: MetricDuration, Value: fmt.Sprintf("%d min", *a.DurationMinutes)})
	}
	if a.DistanceKm != nil {
		metrics = append(metrics, Metric{Label: MetricDistance, Value: formatFloat(*a.DistanceKm) + " km"})
	}
	if a.Calories != nil {
		metrics = append(metrics, Metric{Label: MetricCalories, Value: fmt.Sprintf("%d kcal", *a.Calories)})
	}

	return []Event{{
		ID:        a.ID,
		Type:      EventActivity,
		Title:     titleize(a.ActivityType, "Activity"),
		Timestamp: start,
		Status:    StatusCompleted,
		Metrics:   metrics,
		Details:   a,
		Metadata:  map[string]string{"activity_id": a.ID},
	}}, nil
}

func normalizeMeal(m Meal, now time.Time) ([]Event, error) {
	title := strings.TrimSpace(m.MealName)
	if title == "" {
		title = "Meal"
	}

	ds := datesIn(now)
	if done, ok := ds.opt(m.CompletedAt); ok && !done.After(now) {
		return []Event{{
			ID:        m.ID,
			Type:      EventMeal,
			Title:     title,
			Timestamp: done,
			Status:    StatusCompleted,
			Metrics:   mealMetrics(m),
			Details:   m,
		}}, nil
	}

	if strings.TrimSpace(m.ScheduledDate) == "" || strings.TrimSpace(m.MealTime) == "" {
		return nil, ds.err()
	}
	at, err := parseMealSchedule(m.ScheduledDate, m.MealTime, now.Location())
	if err != nil {
		return nil, errors.Join(ds.err(), err)
	}
	if at.After(now.Add(mealHorizon)) {
		return nil, ds.err()
	}

	status := StatusUpcoming
	if at.Before(now) {
		status = StatusOverdue
	}
	return []Event{{
		ID:        m.ID + dueSuffix,
		Type:      EventMeal,
		Title:     title,
		Timestamp: at,
		Status:    status,
		Metrics:   mealMetrics(m),
		Details:   m,
	}}, ds.err()
}

func parseMealSchedule(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, date+" "+clock, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q %q", ErrMalformedSchedule, date, clock)
}

func mealMetrics(m Meal) []Metric {
	unit := strings.TrimSpace(m.Unit)
	if unit == "" {
		unit = "g"
	}
	var out []Metric
	if m.AmountGiven != nil {
		out = append(out, Metric{Label: "Given", Value: formatFloat(*m.AmountGiven) + " " + unit})
	}
	if m.AmountConsumed != nil {
		out = append(out, Metric{Label: "Consumed", Value: formatFloat(*m.AmountConsumed) + " " + unit})
	}
	return out
}

func normalizeWeight(w WeightRecord, now time.Time) ([]Event, error) {
	ds := datesIn(now)
	recorded, ok := ds.at(w.RecordedAt)
	if !ok {
		return nil, ds.err()
	}
	metrics := []Metric{{Label: "Weight", Value: formatFloat(w.WeightKg) + " kg"}}
	if w.BodyConditionScore != nil {
		metrics = append(metrics, Metric{Label: "Body condition", Value: fmt.Sprintf("%d/9", *w.BodyConditionScore)})
	}
	return []Event{{
		ID:        w.ID,
		Type:      EventWeight,
		Title:     "Weight check",
		Timestamp: recorded,
		Status:    StatusCompleted,
		Metrics:   metrics,
		Details:   w,
	}}, nil
}

func normalizeGrooming(g GroomingSchedule, now time.Time) ([]Event, error) {
	title := titleize(g.GroomingType, "Grooming")
	out := make([]Event, 0, 2)
	ds := datesIn(now)

	if last, ok := ds.opt(g.LastCompletedAt); ok {
		out = append(out, Event{
			ID:        g.ID,
			Type:      EventGrooming,
			Title:     title,
			Timestamp: last,
			Status:    StatusCompleted,
			Details:   g,
		})
	}
	if due, ok := ds.opt(g.NextDueDate); ok {
		out = append(out, Event{
			ID:        g.ID + dueSuffix,
			Type:      EventGrooming,
			Title:     title + " due",
			Timestamp: due,
			Status:    dueStatus(due, now),
			Details:   g,
		})
	}
	return out, ds.err()
}

func normalizeVetVisit(v VetVisit, now time.Time) ([]Event, error) {
	ds := datesIn(now)
	visit, ok := ds.at(v.VisitDate)
	if !ok {
		return nil, ds.err()
	}
	status := StatusCompleted
	if dayOffset(now, visit, now.Location()) > 0 {
		status = StatusUpcoming
	}

	title := strings.TrimSpace(v.Reason)
	if title == "" {
		title = "Vet visit"
	}
	var metrics []Metric
	if c := strings.TrimSpace(v.ClinicName); c != "" {
		metrics = append(metrics, Metric{Label: "Clinic", Value: c})
	}
	if n := strings.TrimSpace(v.VetName); n != "" {
		metrics = append(metrics, Metric{Label: "Vet", Value: n})
	}

	return []Event{{
		ID:        v.ID,
		Type:      EventVetVisit,
		Title:     title,
		Timestamp: visit,
		Status:    status,
		Metrics:   metrics,
		Details:   v,
	}}, nil
}

// normalizeVaccination nunca produce overdue: un refuerzo con fecha pasada
// se sigue mostrando como upcoming.
func normalizeVaccination(v Vaccination, now time.Time) ([]Event, error) {
	name := strings.TrimSpace(v.VaccineName)
	if name == "" {
		name = "Vaccination"
	}
	var metrics []Metric
	if lot := strings.TrimSpace(v.LotNumber); lot != "" {
		metrics = append(metrics, Metric{Label: "Lot", Value: lot})
	}

	out := make([]Event, 0, 2)
	ds := datesIn(now)
	if given, ok := ds.at(v.AdministeredDate); ok {
		out = append(out, Event{
			ID:        v.ID,
			Type:      EventVaccination,
			Title:     name,
			Timestamp: given,
			Status:    StatusCompleted,
			Metrics:   metrics,
			Details:   v,
		})
	}
	if due, ok := ds.opt(v.DueDate); ok {
		out = append(out, Event{
			ID:        v.ID + dueSuffix,
			Type:      EventVaccination,
			Title:     name + " booster due",
			Timestamp: due,
			Status:    StatusUpcoming,
			Details:   v,
		})
	}
	return out, ds.err()
}

func normalizeCheckup(c Checkup, now time.Time) ([]Event, error) {
	ds := datesIn(now)
	when, ok := ds.at(c.CheckupDate)
	if !ok {
		return nil, ds.err()
	}
	return []Event{{
		ID:        c.ID,
		Type:      EventCheckup,
		Title:     "Health checkup",
		Timestamp: when,
		Status:    StatusCompleted,
		Details:   c,
	}}, nil
}

func normalizeTreatment(t Treatment, now time.Time) ([]Event, error) {
	name := strings.TrimSpace(t.TreatmentName)
	if name == "" {
		name = titleize(t.TreatmentType, "Treatment")
	}
	var metrics []Metric
	if d := strings.TrimSpace(t.Dosage); d != "" {
		metrics = append(metrics, Metric{Label: "Dosage", Value: d})
	}

	out := make([]Event, 0, 2)
	ds := datesIn(now)
	if last, ok := ds.opt(t.LastAdministeredAt); ok {
		out = append(out, Event{
			ID:        t.ID,
			Type:      EventTreatment,
			Title:     name,
			Timestamp: last,
			Status:    StatusCompleted,
			Metrics:   metrics,
			Details:   t,
		})
	}
	if due, ok := ds.opt(t.NextDueDate); ok {
		out = append(out, Event{
			ID:        t.ID + dueSuffix,
			Type:      EventTreatment,
			Title:     name + " due",
			Timestamp: due,
			Status:    dueStatus(due, now),
			Metrics:   metrics,
			Details:   t,
		})
	}
	return out, ds.err()
}

func normalizeBowls(p NutritionPlan, now time.Time) ([]Event, error) {
	prefix := p.ID
	if prefix != "" {
		prefix += "-"
	}
	out := make([]Event, 0, 2)
	ds := datesIn(now)
	if food, ok := ds.opt(p.FoodBowlCleanedAt); ok {
		out = append(out, Event{
			ID:        prefix + "food-bowl",
			Type:      EventBowlCleaning,
			Title:     "Food bowl cleaned",
			Timestamp: food,
			Status:    StatusCompleted,
			Details:   p,
		})
	}
	if water, ok := ds.opt(p.WaterBowlCleanedAt); ok {
		out = append(out, Event{
			ID:        prefix + "water-bowl",
			Type:      EventBowlCleaning,
			Title:     "Water bowl cleaned",
			Timestamp: water,
			Status:    StatusCompleted,
			Details:   p,
		})
	}
	return out, ds.err()
}

func normalizeTreat(t TreatLog, now time.Time) ([]Event, error) {
	ds := datesIn(now)
	given, ok := ds.at(t.GivenAt)
	if !ok {
		return nil, ds.err()
	}
	name := strings.TrimSpace(t.TreatName)
	if name == "" {
		name = "Treat"
	}
	metrics := []Metric{{Label: "Quantity", Value: strconv.Itoa(t.Quantity)}}
	if t.Calories != nil {
		metrics = append(metrics, Metric{Label: MetricCalories, Value: fmt.Sprintf("%d kcal", *t.Calories)})
	}
	return []Event{{
		ID:        t.ID,
		Type:      EventTreat,
		Title:     name,
		Timestamp: given,
		Status:    StatusCompleted,
		Metrics:   metrics,
		Details:   t,
	}}, nil
}

// dateSet ubica los Date de un registro en la zona de now y junta los ilegibles.
type dateSet struct {
	loc  *time.Location
	errs []error
}

func datesIn(now time.Time) *dateSet {
	return &dateSet{loc: now.Location()}
}

// at resuelve un campo obligatorio; false si el texto era ilegible.
func (ds *dateSet) at(d Date) (time.Time, bool) {
	if err := d.Err(); err != nil {
		ds.errs = append(ds.errs, err)
		return time.Time{}, false
	}
	return d.Resolve(ds.loc), true
}

// opt es at para campos opcionales: nil o vacío no genera evento.
func (ds *dateSet) opt(d *Date) (time.Time, bool) {
	if d == nil || d.IsZero() {
		return time.Time{}, false
	}
	return ds.at(*d)
}

func (ds *dateSet) err() error {
	return errors.Join(ds.errs...)
}

// titleize: "nail_trim" -> "Nail Trim".
func titleize(s, fallback string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return fallback
	}
	return cases.Title(language.English).String(s)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
