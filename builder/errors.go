package builder

import "errors"

var (
	// ErrTooFewDistricts indicates a size parameter below a shape's minimum.
	ErrTooFewDistricts = errors.New("builder: parameter too small")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic step without WithSeed/WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed wraps a nil constructor or a failed assembly.
	ErrConstructFailed = errors.New("builder: construction failed")
)
