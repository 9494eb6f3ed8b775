package interpolate

import (
	"errors"
	"fmt"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/dataset"
)

// Sentinel errors for interpolation.
var (
	// ErrDatasetNil is returned when the dataset is nil.
	ErrDatasetNil = errors.New("interpolate: dataset is nil")

	// ErrGraphNil is returned when the graph is nil.
	ErrGraphNil = errors.New("interpolate: graph is nil")

	// ErrIndexNil is returned when the registry index is nil.
	ErrIndexNil = errors.New("interpolate: registry index is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("interpolate: invalid option supplied")

	// ErrUnresolvableNeighbour is adjacency.ErrUnresolvableNeighbour.
	ErrUnresolvableNeighbour = adjacency.ErrUnresolvableNeighbour
)

// DefaultRounds is the number of passes when WithRounds is not given.
const DefaultRounds = 3

// Option configures Fill.
type Option func(*Options)

// Options holds the parameters of one Fill call.
type Options struct {
	// Rounds is the number of passes over the missing rows.
	Rounds int

	// ClearOnFill stops recomputing a row once it holds a value.
	ClearOnFill bool

	// SeedOnly restricts the mean to neighbours defined in the input.
	SeedOnly bool

	// OnRound is called after each pass with the 1-based round number and
	// the largest absolute change of any row in that pass (a row going from
	// NaN to a value counts as +Inf).
	OnRound func(round int, maxDelta float64)

	err error
}

// DefaultOptions returns Rounds=DefaultRounds, sticky missing marks, current
// neighbour values and a no-op OnRound.
func DefaultOptions() Options {
	return Options{
		Rounds:  DefaultRounds,
		OnRound: func(int, float64) {},
	}
}

// WithRounds sets the number of passes; n must be at least 1.
func WithRounds(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: rounds must be >= 1 (got %d)", ErrOptionViolation, n)
			return
		}
		o.Rounds = n
	}
}

// WithClearOnFill switches to fill-then-clear: a row filled in one pass is
// no longer recomputed in later passes.
func WithClearOnFill() Option {
	return func(o *Options) { o.ClearOnFill = true }
}

// WithSeedNeighboursOnly averages only neighbours that were defined in the
// input, ignoring values imputed by this call.
func WithSeedNeighboursOnly() Option {
	return func(o *Options) { o.SeedOnly = true }
}

// WithOnRound registers a per-pass callback.
func WithOnRound(fn func(round int, maxDelta float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRound = fn
		}
	}
}

// Result is the outcome of Fill.
type Result struct {
	// Data is a filled copy of the input; the input is never modified.
	Data *dataset.Dataset

	// Missing lists rows that were NaN in the input, in key order.
	Missing []string

	// Filled lists rows of Missing that hold a value after the last pass.
	Filled []string

	// Unfilled lists rows of Missing still NaN after the last pass.
	Unfilled []string

	// Deltas holds the largest absolute change per pass.
	Deltas []float64
}
