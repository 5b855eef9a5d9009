package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion es la última versión de esquema que conoce Migrate.
const SchemaVersion = 1

func schema(d Dialect) []string {
	ts := d.timestamp
	num := d.real
	return []string{
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			activity_type TEXT NOT NULL DEFAULT '',
			start_time ` + ts + ` NOT NULL,
			duration_minutes INTEGER,
			distance_km ` + num + `,
			calories INTEGER,
			notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS meals (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			meal_name TEXT NOT NULL DEFAULT '',
			scheduled_date TEXT NOT NULL DEFAULT '',
			meal_time TEXT NOT NULL DEFAULT '',
			completed_at ` + ts + `,
			amount_given ` + num + `,
			amount_consumed ` + num + `,
			unit TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS weight_records (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			weight_kg ` + num + ` NOT NULL,
			body_condition_score INTEGER,
			recorded_at ` + ts + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS grooming_schedules (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			grooming_type TEXT NOT NULL DEFAULT '',
			last_completed_at ` + ts + `,
			next_due_date ` + ts + `
		)`,
		`CREATE TABLE IF NOT EXISTS vet_visits (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			visit_date ` + ts + ` NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			clinic_name TEXT NOT NULL DEFAULT '',
			vet_name TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS vaccinations (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			vaccine_name TEXT NOT NULL DEFAULT '',
			administered_date ` + ts + ` NOT NULL,
			due_date ` + ts + `,
			lot_number TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS health_checkups (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			checkup_date ` + ts + ` NOT NULL,
			notes TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS medical_treatments (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			treatment_name TEXT NOT NULL DEFAULT '',
			treatment_type TEXT NOT NULL DEFAULT '',
			dosage TEXT NOT NULL DEFAULT '',
			last_administered_at ` + ts + `,
			next_due_date ` + ts + `
		)`,
		`CREATE TABLE IF NOT EXISTS treat_logs (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			treat_name TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 1,
			calories INTEGER,
			given_at ` + ts + ` NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS nutrition_plans (
			id TEXT PRIMARY KEY,
			pet_id TEXT NOT NULL,
			food_bowl_cleaned_at ` + ts + `,
			water_bowl_cleaned_at ` + ts + `
		)`,
	}
}

// Migrate crea las tablas fuente si no existen y registra la versión aplicada.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, stmt := range schema(d) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: apply schema: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (`+d.Bind(1)+`)`, SchemaVersion)
	if err != nil {
		return fmt.Errorf("migrate: record version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}
