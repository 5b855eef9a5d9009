package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pet-wellness-timeline/internal/adapters/storage/sqlstore"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre un pool a Postgres usando pgx (database/sql) y aplica el esquema
// de las tablas fuente.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	if err := sqlstore.Migrate(ctx, db, sqlstore.Postgres); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return db, nil
}

// NewSourcesRepo arma el repo de colecciones fuente con placeholders $n.
func NewSourcesRepo(db *sql.DB) *sqlstore.SourcesRepo {
	return sqlstore.NewSourcesRepo(db, sqlstore.Postgres)
}
