package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"trip-route-planner/internal/domain"
	"trip-route-planner/internal/platform/obs"
)

// Fixed-width UTC timestamps keep lexical order equal to time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite backed trip history for local runs.
type SqliteTripLog struct {
	DB *sql.DB
}

func NewSqliteTripLog(db *sql.DB) *SqliteTripLog {
	return &SqliteTripLog{DB: db}
}

// Append one completed trip. Re-recording the same id is a no-op.
func (s *SqliteTripLog) Record(ctx context.Context, rec domain.TripRecord) (err error) {
	defer obs.Time(ctx, "history.sqlite.Record")(&err)

	if s.DB == nil {
		return errors.New("trip log: db is nil")
	}

	r, err := toRow(rec)
	if err != nil {
		return fmt.Errorf("insert trip history: %w", err)
	}

	q := `
	INSERT OR IGNORE INTO trip_history (
		id,
		origin,
		destination,
		mode,
		distance_km,
		distance_miles,
		duration,
		instructions,
		planned_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q,
		r.ID, r.Origin, r.Destination, r.Mode, r.DistanceKm, r.DistanceMiles, r.Duration, r.Instructions,
		rec.PlannedAt.UTC().Format(sqliteTimeLayout),
	); err != nil {
		return fmt.Errorf("insert trip history id=%s: %w", r.ID, err)
	}

	return nil
}

// Fetch the most recent trips, newest first.
func (s *SqliteTripLog) Recent(ctx context.Context, limit int) (_ []domain.TripRecord, err error) {
	defer obs.Time(ctx, "history.sqlite.Recent")(&err)

	if s.DB == nil {
		return nil, errors.New("trip log: db is nil")
	}
	if limit <= 0 {
		return []domain.TripRecord{}, nil
	}

	q := `
	SELECT
		id,
		origin,
		destination,
		mode,
		distance_km,
		distance_miles,
		duration,
		instructions,
		planned_at
	FROM trip_history
	ORDER BY planned_at DESC, id
	LIMIT ?;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list trip history: query trip_history table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TripRecord, 0, limit)
	for rows.Next() {
		var r row
		var plannedAt string
		if err := rows.Scan(&r.ID, &r.Origin, &r.Destination, &r.Mode, &r.DistanceKm, &r.DistanceMiles,
			&r.Duration, &r.Instructions, &plannedAt); err != nil {
			return nil, fmt.Errorf("list trip history: scan rows: %w", err)
		}

		rec, err := r.toRecord()
		if err != nil {
			return nil, fmt.Errorf("list trip history: %w", err)
		}
		rec.PlannedAt, err = time.Parse(sqliteTimeLayout, plannedAt)
		if err != nil {
			return nil, fmt.Errorf("list trip history: parse planned_at %q: %w", plannedAt, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trip history: row iteration: %w", err)
	}

	return out, nil
}
