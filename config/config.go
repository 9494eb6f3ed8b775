// Package config reads the batch tool's settings from the environment,
// optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/malaria-bench/mbench/interpolate"
)

// ErrInvalid is returned when a variable holds an unusable value.
var ErrInvalid = errors.New("config: invalid value")

// Postgres holds connection settings.
type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
	MaxOpen  int
	MaxIdle  int
}

// DSN renders a postgres:// connection string.
func (p Postgres) DSN() string {
	dsn := "postgres://" + p.User
	if p.Password != "" {
		dsn += ":" + p.Password
	}

	return dsn + "@" + p.Host + ":" + p.Port + "/" + p.DB + "?sslmode=" + p.SSLMode
}

// Config is the full configuration of cmd/mbench-fill.
type Config struct {
	Postgres Postgres

	// Countries to process; empty means every country in the store.
	Countries []string
	// Parameter is the value column to fill.
	Parameter string
	// Rounds is the number of interpolation passes.
	Rounds int
	// ClearOnFill selects fill-then-clear instead of repeated smoothing.
	ClearOnFill bool
	// Symmetric mirrors adjacency rows when building graphs.
	Symmetric bool

	// MetricsAddr, when set, serves /metrics on that address.
	MetricsAddr string

	LogLevel  string
	LogFormat string
}

// Load reads every existing file in files into the environment (without
// overriding variables already set) and then calls FromEnv.
func Load(files ...string) (Config, error) {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return Config{}, fmt.Errorf("load env files: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the process environment.
func FromEnv() (Config, error) { return FromLookup(os.Getenv) }

// FromLookup builds a Config from getenv; tests pass a map lookup.
func FromLookup(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Postgres: Postgres{
			Host:     get("PG_HOST", "localhost"),
			Port:     get("PG_PORT", "5432"),
			User:     get("PG_USER", "postgres"),
			Password: getenv("PG_PASSWORD"),
			DB:       get("PG_DB", "mbench"),
			SSLMode:  get("PG_SSLMODE", "disable"),
		},
		Parameter:   get("MBENCH_PARAMETER", "prevalence"),
		MetricsAddr: get("METRICS_ADDR", ""),
		LogLevel:    get("LOG_LEVEL", "info"),
		LogFormat:   get("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.Postgres.MaxOpen, err = atoi(get("PG_MAX_OPEN_CONNS", "10"), "PG_MAX_OPEN_CONNS"); err != nil {
		return Config{}, err
	}
	if cfg.Postgres.MaxIdle, err = atoi(get("PG_MAX_IDLE_CONNS", "5"), "PG_MAX_IDLE_CONNS"); err != nil {
		return Config{}, err
	}
	if cfg.Rounds, err = atoi(get("MBENCH_ROUNDS", strconv.Itoa(interpolate.DefaultRounds)), "MBENCH_ROUNDS"); err != nil {
		return Config{}, err
	}
	if cfg.Rounds < 1 {
		return Config{}, fmt.Errorf("%w: MBENCH_ROUNDS must be >= 1 (got %d)", ErrInvalid, cfg.Rounds)
	}
	if cfg.ClearOnFill, err = parseBool(get("MBENCH_CLEAR_ON_FILL", "false"), "MBENCH_CLEAR_ON_FILL"); err != nil {
		return Config{}, err
	}
	if cfg.Symmetric, err = parseBool(get("MBENCH_SYMMETRIC", "true"), "MBENCH_SYMMETRIC"); err != nil {
		return Config{}, err
	}
	for _, c := range strings.Split(getenv("MBENCH_COUNTRIES"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			cfg.Countries = append(cfg.Countries, c)
		}
	}

	return cfg, nil
}

func atoi(s, key string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalid, key, s)
	}

	return n, nil
}

func parseBool(s, key string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalid, key, s)
	}

	return b, nil
}
