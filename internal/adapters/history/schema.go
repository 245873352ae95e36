package history

import (
	"database/sql"
	"errors"
	"fmt"
)

// Dialect selects the SQL flavour of the history store.
type Dialect string

const (
	Postgres Dialect = "pgx"
	SQLite   Dialect = "sqlite"
)

// Initialize the trip_history schema for the given dialect.
func InitSchema(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var createTripHistoryQuery string
	switch dialect {
	case Postgres:
		createTripHistoryQuery = `
		CREATE TABLE IF NOT EXISTS trip_history (
			id TEXT PRIMARY KEY,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			mode TEXT NOT NULL,
			distance_km DOUBLE PRECISION NOT NULL,
			distance_miles DOUBLE PRECISION NOT NULL,
			duration TEXT NOT NULL,
			instructions TEXT NOT NULL,
			planned_at TIMESTAMPTZ NOT NULL
		);
		`
	case SQLite:
		// planned_at holds fixed-width UTC text so it sorts lexically.
		createTripHistoryQuery = `
		CREATE TABLE IF NOT EXISTS trip_history (
			id TEXT PRIMARY KEY,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			mode TEXT NOT NULL,
			distance_km REAL NOT NULL,
			distance_miles REAL NOT NULL,
			duration TEXT NOT NULL,
			instructions TEXT NOT NULL,
			planned_at TEXT NOT NULL
		);
		`
	default:
		return fmt.Errorf("init schema: unsupported dialect %q", dialect)
	}

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trip_history_planned_at
	ON trip_history(planned_at);
	`

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range []string{createTripHistoryQuery, createIndexQuery} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
