package history

import (
	"database/sql"
	"fmt"
	"trip-route-planner/internal/ports"
)

// NewTripLog returns the history store matching dialect.
func NewTripLog(db *sql.DB, dialect Dialect) (ports.TripLog, error) {
	switch dialect {
	case Postgres:
		return NewSQLTripLog(db), nil
	case SQLite:
		return NewSqliteTripLog(db), nil
	default:
		return nil, fmt.Errorf("new trip log: unsupported dialect %q", dialect)
	}
}
