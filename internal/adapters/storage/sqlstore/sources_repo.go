package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-wellness-timeline/internal/domain/timeline"
)

// SourcesRepo lee las nueve colecciones + plan de nutrición de una mascota.
// Solo lectura: la escritura es responsabilidad del backend dueño de los datos.
type SourcesRepo struct {
	db *sql.DB
	d  Dialect
}

func NewSourcesRepo(db *sql.DB, d Dialect) *SourcesRepo {
	return &SourcesRepo{db: db, d: d}
}

// LoadSources lee todo dentro de una transacción de solo lectura para que el
// snapshot sea consistente entre tablas.
func (r *SourcesRepo) LoadSources(ctx context.Context, petID string) (timeline.Sources, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return timeline.Sources{}, nil
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: r.d.Name == Postgres.Name})
	if err != nil {
		return timeline.Sources{}, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var src timeline.Sources
	loaders := []struct {
		name string
		fn   func(context.Context, *sql.Tx, string, *timeline.Sources) error
	}{
		{"activities", r.loadActivities},
		{"meals", r.loadMeals},
		{"weight_records", r.loadWeights},
		{"grooming_schedules", r.loadGrooming},
		{"vet_visits", r.loadVetVisits},
		{"vaccinations", r.loadVaccinations},
		{"health_checkups", r.loadCheckups},
		{"medical_treatments", r.loadTreatments},
		{"treat_logs", r.loadTreats},
		{"nutrition_plans", r.loadNutritionPlan},
	}
	for _, l := range loaders {
		if err := l.fn(ctx, tx, petID, &src); err != nil {
			return timeline.Sources{}, fmt.Errorf("load %s: %w", l.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return timeline.Sources{}, fmt.Errorf("commit: %w", err)
	}
	return src, nil
}

func (r *SourcesRepo) query(ctx context.Context, tx *sql.Tx, q, petID string, scan func(*sql.Rows) error) error {
	rows, err := tx.QueryContext(ctx, q+" WHERE pet_id = "+r.d.Bind(1)+" ORDER BY id", petID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *SourcesRepo) loadActivities(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, activity_type, ` + r.d.TimeCol("start_time") + `, duration_minutes, distance_km, calories, notes
		FROM activities`, petID, func(rows *sql.Rows) error {
		var a timeline.Activity
		var start nullDate
		var dur, cal sql.NullInt64
		var dist sql.NullFloat64
		if err := rows.Scan(&a.ID, &a.PetID, &a.ActivityType, &start, &dur, &dist, &cal, &a.Notes); err != nil {
			return err
		}
		a.StartTime = start.Date
		a.DurationMinutes = intPtr(dur)
		a.DistanceKm = floatPtr(dist)
		a.Calories = intPtr(cal)
		src.Activities = append(src.Activities, a)
		return nil
	})
}

func (r *SourcesRepo) loadMeals(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, meal_name, scheduled_date, meal_time, ` + r.d.TimeCol("completed_at") + `, amount_given, amount_consumed, unit
		FROM meals`, petID, func(rows *sql.Rows) error {
		var m timeline.Meal
		var completed nullDate
		var given, consumed sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.PetID, &m.MealName, &m.ScheduledDate, &m.MealTime, &completed, &given, &consumed, &m.Unit); err != nil {
			return err
		}
		m.CompletedAt = completed.ptr()
		m.AmountGiven = floatPtr(given)
		m.AmountConsumed = floatPtr(consumed)
		src.Meals = append(src.Meals, m)
		return nil
	})
}

func (r *SourcesRepo) loadWeights(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, weight_kg, body_condition_score, ` + r.d.TimeCol("recorded_at") + `
		FROM weight_records`, petID, func(rows *sql.Rows) error {
		var w timeline.WeightRecord
		var bcs sql.NullInt64
		var at nullDate
		if err := rows.Scan(&w.ID, &w.PetID, &w.WeightKg, &bcs, &at); err != nil {
			return err
		}
		w.BodyConditionScore = intPtr(bcs)
		w.RecordedAt = at.Date
		src.Weights = append(src.Weights, w)
		return nil
	})
}

func (r *SourcesRepo) loadGrooming(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, grooming_type, ` + r.d.TimeCol("last_completed_at") + `, ` + r.d.TimeCol("next_due_date") + `
		FROM grooming_schedules`, petID, func(rows *sql.Rows) error {
		var g timeline.GroomingSchedule
		var last, next nullDate
		if err := rows.Scan(&g.ID, &g.PetID, &g.GroomingType, &last, &next); err != nil {
			return err
		}
		g.LastCompletedAt = last.ptr()
		g.NextDueDate = next.ptr()
		src.Grooming = append(src.Grooming, g)
		return nil
	})
}

func (r *SourcesRepo) loadVetVisits(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, ` + r.d.TimeCol("visit_date") + `, reason, clinic_name, vet_name
		FROM vet_visits`, petID, func(rows *sql.Rows) error {
		var v timeline.VetVisit
		var at nullDate
		if err := rows.Scan(&v.ID, &v.PetID, &at, &v.Reason, &v.ClinicName, &v.VetName); err != nil {
			return err
		}
		v.VisitDate = at.Date
		src.VetVisits = append(src.VetVisits, v)
		return nil
	})
}

func (r *SourcesRepo) loadVaccinations(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, vaccine_name, ` + r.d.TimeCol("administered_date") + `, ` + r.d.TimeCol("due_date") + `, lot_number
		FROM vaccinations`, petID, func(rows *sql.Rows) error {
		var v timeline.Vaccination
		var given, due nullDate
		if err := rows.Scan(&v.ID, &v.PetID, &v.VaccineName, &given, &due, &v.LotNumber); err != nil {
			return err
		}
		v.AdministeredDate = given.Date
		v.DueDate = due.ptr()
		src.Vaccinations = append(src.Vaccinations, v)
		return nil
	})
}

func (r *SourcesRepo) loadCheckups(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, ` + r.d.TimeCol("checkup_date") + `, notes
		FROM health_checkups`, petID, func(rows *sql.Rows) error {
		var c timeline.Checkup
		var at nullDate
		if err := rows.Scan(&c.ID, &c.PetID, &at, &c.Notes); err != nil {
			return err
		}
		c.CheckupDate = at.Date
		src.Checkups = append(src.Checkups, c)
		return nil
	})
}

func (r *SourcesRepo) loadTreatments(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, treatment_name, treatment_type, dosage, ` + r.d.TimeCol("last_administered_at") + `, ` + r.d.TimeCol("next_due_date") + `
		FROM medical_treatments`, petID, func(rows *sql.Rows) error {
		var t timeline.Treatment
		var last, next nullDate
		if err := rows.Scan(&t.ID, &t.PetID, &t.TreatmentName, &t.TreatmentType, &t.Dosage, &last, &next); err != nil {
			return err
		}
		t.LastAdministeredAt = last.ptr()
		t.NextDueDate = next.ptr()
		src.Treatments = append(src.Treatments, t)
		return nil
	})
}

func (r *SourcesRepo) loadTreats(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, treat_name, quantity, calories, ` + r.d.TimeCol("given_at") + `
		FROM treat_logs`, petID, func(rows *sql.Rows) error {
		var t timeline.TreatLog
		var cal sql.NullInt64
		var at nullDate
		if err := rows.Scan(&t.ID, &t.PetID, &t.TreatName, &t.Quantity, &cal, &at); err != nil {
			return err
		}
		t.Calories = intPtr(cal)
		t.GivenAt = at.Date
		src.Treats = append(src.Treats, t)
		return nil
	})
}

// loadNutritionPlan toma el primer plan por id; una mascota tiene a lo sumo uno activo.
func (r *SourcesRepo) loadNutritionPlan(ctx context.Context, tx *sql.Tx, petID string, src *timeline.Sources) error {
	return r.query(ctx, tx, `
		SELECT id, pet_id, ` + r.d.TimeCol("food_bowl_cleaned_at") + `, ` + r.d.TimeCol("water_bowl_cleaned_at") + `
		FROM nutrition_plans`, petID, func(rows *sql.Rows) error {
		if src.NutritionPlan != nil {
			return nil
		}
		var p timeline.NutritionPlan
		var food, water nullDate
		if err := rows.Scan(&p.ID, &p.PetID, &food, &water); err != nil {
			return err
		}
		p.FoodBowlCleanedAt = food.ptr()
		p.WaterBowlCleanedAt = water.ptr()
		src.NutritionPlan = &p
		return nil
	})
}
