package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNoRun is returned when no run was recorded for a country/parameter.
var ErrNoRun = errors.New("store: no recorded run")

// Run is one audited fill of a country parameter. Every country of a
// batch shares the batch's ID.
type Run struct {
	ID         uuid.UUID
	Country    string
	Parameter  string
	Rows       int
	Filled     int
	Unfilled   int
	Unresolved int
	StartedAt  time.Time
	Elapsed    time.Duration
}

// RecordRun appends r to mbench_runs.
func (s *Store) RecordRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mbench_runs(id, country, parameter, row_count, filled, unfilled, unresolved, started_at, elapsed_ms)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID.String(), r.Country, r.Parameter, r.Rows, r.Filled, r.Unfilled, r.Unresolved,
		r.StartedAt.UTC(), r.Elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("record run %s/%s: %w", r.Country, r.Parameter, err)
	}

	return nil
}

// LatestRun returns the most recent run of country/parameter.
func (s *Store) LatestRun(ctx context.Context, country, parameter string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, country, parameter, row_count, filled, unfilled, unresolved, started_at, elapsed_ms
		 FROM mbench_runs WHERE country=$1 AND parameter=$2
		 ORDER BY started_at DESC LIMIT 1`, country, parameter)

	var (
		r       Run
		id      string
		elapsed int64
	)
	err := row.Scan(&id, &r.Country, &r.Parameter, &r.Rows, &r.Filled, &r.Unfilled, &r.Unresolved, &r.StartedAt, &elapsed)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s/%s", ErrNoRun, country, parameter)
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	if r.ID, err = uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("latest run id %q: %w", id, err)
	}
	r.Elapsed = time.Duration(elapsed) * time.Millisecond

	return r, nil
}
