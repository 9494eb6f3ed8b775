package store

import (
	"context"
	"fmt"

	"github.com/malaria-bench/mbench/logger"
)

// EnsureSchema creates the tables on first run. Statements use IF NOT
// EXISTS so repeated calls are no-ops.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS mbench_districts (
            country TEXT NOT NULL,
            ord INT NOT NULL,
            id TEXT NOT NULL,
            name TEXT NOT NULL,
            PRIMARY KEY (country, id)
        )`,
		`CREATE TABLE IF NOT EXISTS mbench_district_aliases (
            country TEXT NOT NULL,
            district_id TEXT NOT NULL,
            ord INT NOT NULL,
            alias TEXT NOT NULL,
            PRIMARY KEY (country, district_id, alias),
            FOREIGN KEY (country, district_id) REFERENCES mbench_districts(country, id) ON DELETE CASCADE
        )`,
		`CREATE TABLE IF NOT EXISTS mbench_adjacency (
            country TEXT NOT NULL,
            ord INT NOT NULL,
            from_label TEXT NOT NULL,
            to_label TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_mbench_adjacency_country ON mbench_adjacency(country, ord)`,
		`CREATE TABLE IF NOT EXISTS mbench_crosswalk (
            country TEXT NOT NULL,
            ord INT NOT NULL,
            old_label TEXT NOT NULL,
            new_label TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_mbench_crosswalk_country ON mbench_crosswalk(country, ord)`,
		`CREATE TABLE IF NOT EXISTS mbench_values (
            country TEXT NOT NULL,
            parameter TEXT NOT NULL,
            ord INT NOT NULL,
            label TEXT NOT NULL,
            value DOUBLE PRECISION,
            PRIMARY KEY (country, parameter, label)
        )`,
		`CREATE TABLE IF NOT EXISTS mbench_runs (
            id UUID NOT NULL,
            country TEXT NOT NULL,
            parameter TEXT NOT NULL,
            row_count INT NOT NULL,
            filled INT NOT NULL,
            unfilled INT NOT NULL,
            unresolved INT NOT NULL,
            started_at TIMESTAMPTZ NOT NULL,
            elapsed_ms BIGINT NOT NULL,
            PRIMARY KEY (id, country, parameter)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_mbench_runs_latest ON mbench_runs(country, parameter, started_at DESC)`,
	}
	for i, stmt := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema (statement %d): %w", i, err)
		}
	}
	logger.L().Debug("schema_done")

	return nil
}
