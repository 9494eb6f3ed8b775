// Package store persists country bundles and parameter values in
// PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/malaria-bench/mbench/config"
	"github.com/malaria-bench/mbench/logger"
)

// ErrUnknownCountry is returned when no districts are stored for a country.
var ErrUnknownCountry = errors.New("store: unknown country")

// Store wraps the connection pool.
type Store struct {
	db *sql.DB
}

// AttachDB wraps an already opened pool.
func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// Open connects with the lib/pq driver and sizes the pool from pg.
func Open(pg config.Postgres) (*Store, error) {
	db, err := sql.Open("postgres", pg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if pg.MaxOpen > 0 {
		db.SetMaxOpenConns(pg.MaxOpen)
	}
	if pg.MaxIdle > 0 {
		db.SetMaxIdleConns(pg.MaxIdle)
	}
	logger.L().Debug("db_open", "host", pg.Host, "db", pg.DB)

	return &Store{db: db}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close closes the pool.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the pool.
func (s *Store) DB() *sql.DB { return s.db }

// Countries lists every country with stored districts, sorted.
func (s *Store) Countries(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT country FROM mbench_districts ORDER BY country`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	return out, nil
}
