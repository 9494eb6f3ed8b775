package builder

import (
	"fmt"
	"math"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/country"
	"github.com/malaria-bench/mbench/dataset"
	"github.com/malaria-bench/mbench/district"
)

// Draft accumulates districts and adjacency rows while constructors run.
type Draft struct {
	ids   []string
	seen  map[string]bool
	pairs []adjacency.Pair
}

// AddDistrict registers id once; repeats are ignored.
func (d *Draft) AddDistrict(id string) {
	if d.seen[id] {
		return
	}
	d.seen[id] = true
	d.ids = append(d.ids, id)
}

// Link records an adjacency row between two districts, registering both.
func (d *Draft) Link(from, to string) {
	d.AddDistrict(from)
	d.AddDistrict(to)
	d.pairs = append(d.pairs, adjacency.Pair{From: from, To: to})
}

// Pairs returns the recorded adjacency rows.
func (d *Draft) Pairs() []adjacency.Pair {
	out := make([]adjacency.Pair, len(d.pairs))
	copy(out, d.pairs)

	return out
}

// Constructor adds one shape to a Draft.
type Constructor func(d *Draft, cfg config) error

// Build runs cons in order and assembles the result into a Country whose
// adjacency graph is symmetric.
func Build(name string, opts []Option, cons ...Constructor) (*country.Country, error) {
	cfg := newConfig(opts...)
	d := &Draft{seen: make(map[string]bool)}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(d, cfg); err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
	}

	reg := district.NewRegistry(district.WithScheme(district.SchemeDistricts))
	for _, id := range d.ids {
		if err := reg.Add(district.New(id, id)); err != nil {
			return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
		}
	}
	g, err := adjacency.FromPairs(reg, d.pairs, adjacency.WithSymmetric())
	if err != nil {
		return nil, fmt.Errorf("Build: %w: %w", ErrConstructFailed, err)
	}

	return country.New(name, reg, g, nil)
}

// Values generates one column over c's registry, in registry order. With
// WithMissing(p) each row is independently undefined with probability p,
// which requires a random source.
func Values(c *country.Country, opts ...Option) (*dataset.Dataset, error) {
	cfg := newConfig(opts...)
	if cfg.missing < 0 || cfg.missing > 1 || math.IsNaN(cfg.missing) {
		return nil, fmt.Errorf("Values: missing=%v: %w", cfg.missing, ErrInvalidProbability)
	}
	if cfg.missing > 0 && cfg.rng == nil {
		return nil, fmt.Errorf("Values: %w", ErrNeedRandSource)
	}

	ds := dataset.New()
	for i, id := range c.Districts.IDs() {
		v := cfg.valueFn(i, cfg.rng)
		if cfg.missing > 0 && cfg.rng.Float64() < cfg.missing {
			v = dataset.Undefined
		}
		ds.Set(id, v)
	}

	return ds, nil
}
