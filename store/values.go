package store

import (
	"context"
	"fmt"

	"github.com/malaria-bench/mbench/dataset"
	"github.com/malaria-bench/mbench/logger"
)

// LoadValues reads one parameter column of a country. NULL values come
// back as dataset.Undefined. A parameter with no rows yields an empty
// Dataset.
func (s *Store) LoadValues(ctx context.Context, country, parameter string) (*dataset.Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, value FROM mbench_values WHERE country=$1 AND parameter=$2 ORDER BY ord, label`,
		country, parameter)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}
	defer rows.Close()

	var labels []string
	var values []float64
	for rows.Next() {
		var label string
		var v *float64
		if err := rows.Scan(&label, &v); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		labels = append(labels, label)
		values = append(values, fromNull(v))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}
	if len(labels) == 0 {
		return dataset.New(), nil
	}

	ds, err := dataset.FromPairs(labels, values)
	if err != nil {
		return nil, fmt.Errorf("load values %s/%s: %w", country, parameter, err)
	}
	logger.L().Debug("values_loaded", "country", country, "parameter", parameter, "rows", ds.Len(), "missing", len(ds.Missing()))

	return ds, nil
}

// SaveValues replaces one parameter column of a country; undefined values
// are stored as NULL.
func (s *Store) SaveValues(ctx context.Context, country, parameter string, ds *dataset.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save values: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM mbench_values WHERE country=$1 AND parameter=$2`, country, parameter); err != nil {
		return fmt.Errorf("clear values: %w", err)
	}
	for i, k := range ds.Keys() {
		v, _ := ds.Value(k)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO mbench_values(country, parameter, ord, label, value) VALUES($1, $2, $3, $4, $5)`,
			country, parameter, i, k, nullable(v)); err != nil {
			return fmt.Errorf("insert value %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save values: %w", err)
	}
	logger.L().Debug("values_saved", "country", country, "parameter", parameter, "rows", ds.Len())

	return nil
}
