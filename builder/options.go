package builder

import (
	"math/rand"
	"strconv"
)

type config struct {
	idFn    func(int) string
	rng     *rand.Rand
	missing float64
	valueFn func(idx int, rng *rand.Rand) float64
}

// Option configures Build and Values.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		idFn:    DefaultIDFn,
		valueFn: func(idx int, _ *rand.Rand) float64 { return float64(idx) },
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithIDScheme sets how the i-th district id is named.
func WithIDScheme(fn func(int) string) Option {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *config) { c.idFn = fn }
}

// WithRand supplies the random source for stochastic steps.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed is WithRand over a fresh source seeded with seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithMissing sets the probability that Values leaves a row undefined.
func WithMissing(p float64) Option {
	return func(c *config) { c.missing = p }
}

// WithValueFn sets the value of the i-th district in registry order.
func WithValueFn(fn func(idx int, rng *rand.Rand) float64) Option {
	if fn == nil {
		panic("builder: WithValueFn(nil)")
	}
	return func(c *config) { c.valueFn = fn }
}

// DefaultIDFn names districts "D0", "D1", ...
func DefaultIDFn(idx int) string { return "D" + strconv.Itoa(idx) }

// ExcelColumnIDFn names districts "A".."Z", "AA", "AB", ...
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic("builder: ExcelColumnIDFn(idx<0)")
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}
