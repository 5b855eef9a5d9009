package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-wellness-timeline/internal/adapters/storage/sqlstore"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) una base SQLite local sin cgo y aplica el esquema.
// path puede ser un archivo o ":memory:".
func Open(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite: path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// SQLite serializa escrituras; una conexión evita "database is locked"
	// y mantiene viva una base :memory:.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: pragma: %w", err)
	}

	if err := sqlstore.Migrate(ctx, db, sqlstore.SQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	return db, nil
}

// NewSourcesRepo arma el repo de colecciones fuente con placeholders ?.
func NewSourcesRepo(db *sql.DB) *sqlstore.SourcesRepo {
	return sqlstore.NewSourcesRepo(db, sqlstore.SQLite)
}
