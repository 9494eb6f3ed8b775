package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/config"
	"github.com/malaria-bench/mbench/country"
	"github.com/malaria-bench/mbench/dataset"
	"github.com/malaria-bench/mbench/interpolate"
	"github.com/malaria-bench/mbench/logger"
	"github.com/malaria-bench/mbench/metrics"
	"github.com/malaria-bench/mbench/store"
)

// countryStore is the part of *store.Store a run needs.
type countryStore interface {
	LoadCountry(ctx context.Context, name string, opts ...adjacency.Option) (*country.Country, error)
	LoadValues(ctx context.Context, country, parameter string) (*dataset.Dataset, error)
	SaveValues(ctx context.Context, country, parameter string, ds *dataset.Dataset) error
	RecordRun(ctx context.Context, r store.Run) error
}

// report summarizes one country run.
type report struct {
	RunID      uuid.UUID
	Country    string
	Parameter  string
	Rows       int
	Filled     int
	Unfilled   int
	Unresolved []string
	Components int
	Elapsed    time.Duration
}

// run processes countries concurrently under one run id; the first failure
// cancels the rest. Reports of finished countries are returned in input
// order even on error.
func run(ctx context.Context, st countryStore, cfg config.Config, m *metrics.Metrics, countries []string) ([]report, error) {
	runID := uuid.New()
	logger.L().Info("run_start", "run_id", runID, "countries", len(countries), "parameter", cfg.Parameter)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var mu sync.Mutex
	done := make(map[string]report, len(countries))
	for _, name := range countries {
		name := name
		g.Go(func() error {
			r, err := fillCountry(ctx, st, cfg, m, runID, name)
			if err != nil {
				return fmt.Errorf("country %s: %w", name, err)
			}
			mu.Lock()
			done[name] = r
			mu.Unlock()

			return nil
		})
	}
	err := g.Wait()

	out := make([]report, 0, len(done))
	for _, name := range countries {
		if r, ok := done[name]; ok {
			out = append(out, r)
		}
	}

	return out, err
}

func fillCountry(ctx context.Context, st countryStore, cfg config.Config, m *metrics.Metrics, runID uuid.UUID, name string) (report, error) {
	start := time.Now()
	log := logger.L().With("run_id", runID, "country", name, "parameter", cfg.Parameter)

	var graphOpts []adjacency.Option
	if cfg.Symmetric {
		graphOpts = append(graphOpts, adjacency.WithSymmetric())
	}
	c, err := st.LoadCountry(ctx, name, graphOpts...)
	if err != nil {
		return report{}, err
	}
	raw, err := st.LoadValues(ctx, name, cfg.Parameter)
	if err != nil {
		return report{}, err
	}

	tbl := country.NewTable(c)
	unresolved, err := tbl.AddParameter(cfg.Parameter, raw)
	if err != nil {
		return report{}, err
	}
	if len(unresolved) > 0 {
		log.Warn("unresolved_labels", "labels", unresolved)
	}
	m.AddUnresolved(name, len(unresolved))

	opts := []interpolate.Option{
		interpolate.WithRounds(cfg.Rounds),
		interpolate.WithOnRound(func(round int, maxDelta float64) {
			log.Debug("fill_round", "round", round, "max_delta", maxDelta)
		}),
	}
	if cfg.ClearOnFill {
		opts = append(opts, interpolate.WithClearOnFill())
	}
	if err := ctx.Err(); err != nil {
		return report{}, err
	}
	res, err := tbl.Fill(cfg.Parameter, opts...)
	if err != nil {
		return report{}, err
	}

	components := 0
	if c.Adjacency != nil {
		components = len(c.Adjacency.Components())
		warnUnreachable(log, c.Adjacency, res, cfg.Rounds)
	}

	// Unresolved input rows are written back with the filled column so the
	// next run still reports them.
	out, err := tbl.Export(cfg.Parameter)
	if err != nil {
		return report{}, err
	}
	if err := st.SaveValues(ctx, name, cfg.Parameter, out); err != nil {
		return report{}, err
	}

	r := report{
		RunID:      runID,
		Country:    name,
		Parameter:  cfg.Parameter,
		Rows:       res.Data.Len(),
		Filled:     len(res.Filled),
		Unfilled:   len(res.Unfilled),
		Unresolved: unresolved,
		Components: components,
		Elapsed:    time.Since(start),
	}
	if err := st.RecordRun(ctx, store.Run{
		ID:         runID,
		Country:    name,
		Parameter:  cfg.Parameter,
		Rows:       r.Rows,
		Filled:     r.Filled,
		Unfilled:   r.Unfilled,
		Unresolved: len(unresolved),
		StartedAt:  start,
		Elapsed:    r.Elapsed,
	}); err != nil {
		return report{}, err
	}
	m.ObserveFill(name, cfg.Parameter, r.Filled, r.Unfilled)
	m.ObserveDuration(name, r.Elapsed)

	return r, nil
}

// warnUnreachable logs the unfilled rows that no amount of extra rounds
// would reach, separately from those that only ran out of rounds.
func warnUnreachable(log *slog.Logger, g *adjacency.Graph, res *interpolate.Result, rounds int) {
	if len(res.Unfilled) == 0 {
		return
	}
	missing := make(map[string]bool, len(res.Missing))
	for _, k := range res.Missing {
		missing[k] = true
	}
	var seeds []string
	for _, k := range res.Data.Keys() {
		if !missing[k] {
			seeds = append(seeds, k)
		}
	}
	hops := g.Reach(seeds)

	var never, later []string
	for _, id := range res.Unfilled {
		if h, ok := hops[id]; !ok {
			never = append(never, id)
		} else if h > rounds {
			later = append(later, id)
		}
	}
	if len(never) > 0 {
		log.Warn("unreachable_rows", "ids", never)
	}
	if len(later) > 0 {
		log.Warn("rows_need_more_rounds", "ids", later, "rounds", rounds)
	}
}
