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

// SQLTripLog is a Postgres-backed trip history (pgx driver).
type SQLTripLog struct {
	DB *sql.DB
}

func NewSQLTripLog(db *sql.DB) *SQLTripLog {
	return &SQLTripLog{DB: db}
}

// Append one completed trip. Re-recording the same id is a no-op.
func (s *SQLTripLog) Record(ctx context.Context, rec domain.TripRecord) (err error) {
	defer obs.Time(ctx, "history.sql.Record")(&err)

	if s.DB == nil {
		return errors.New("trip log: db is nil")
	}

	r, err := toRow(rec)
	if err != nil {
		return fmt.Errorf("insert trip history: %w", err)
	}

	q := `
	INSERT INTO trip_history (
		id, origin, destination, mode, distance_km, distance_miles, duration, instructions, planned_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO NOTHING;
	`

	if _, err := s.DB.ExecContext(ctx, q,
		r.ID, r.Origin, r.Destination, r.Mode, r.DistanceKm, r.DistanceMiles, r.Duration, r.Instructions,
		rec.PlannedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert trip history id=%s: %w", r.ID, err)
	}

	return nil
}

// Fetch the most recent trips, newest first.
func (s *SQLTripLog) Recent(ctx context.Context, limit int) (_ []domain.TripRecord, err error) {
	defer obs.Time(ctx, "history.sql.Recent")(&err)

	if s.DB == nil {
		return nil, errors.New("trip log: db is nil")
	}
	if limit <= 0 {
		return []domain.TripRecord{}, nil
	}

	q := `
	SELECT id, origin, destination, mode, distance_km, distance_miles, duration, instructions, planned_at
	FROM trip_history
	ORDER BY planned_at DESC, id
	LIMIT $1;
	`

	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list trip history: query trip_history table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.TripRecord, 0, limit)
	for rows.Next() {
		var r row
		var plannedAt time.Time
		if err := rows.Scan(&r.ID, &r.Origin, &r.Destination, &r.Mode, &r.DistanceKm, &r.DistanceMiles,
			&r.Duration, &r.Instructions, &plannedAt); err != nil {
			return nil, fmt.Errorf("list trip history: scan rows: %w", err)
		}

		rec, err := r.toRecord()
		if err != nil {
			return nil, fmt.Errorf("list trip history: %w", err)
		}
		rec.PlannedAt = plannedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trip history: row iteration: %w", err)
	}

	return out, nil
}
