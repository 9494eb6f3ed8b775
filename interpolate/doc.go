// Package interpolate fills missing per-district values by repeated
// neighbour averaging over an adjacency.Graph.
//
// Algorithm
//
//  1. Rows whose value is NaN are marked missing.
//  2. For Rounds passes, every missing row is recomputed, in dataset key
//     order, as the arithmetic mean of its neighbours' current defined
//     values. Updates are applied in place, so a row later in the same pass
//     sees values filled earlier in that pass. With no defined neighbour the
//     row stays NaN for the pass.
//  3. The missing mark is sticky: filled rows keep being recomputed every
//     pass from the then-current neighbourhood (repeated smoothing). Values
//     may still move between late passes and settle as Rounds grows.
//  4. Rows with no path to an originally defined value within Rounds hops
//     stay NaN.
//
// Determinism
//
//	Row order is the dataset's key order and neighbour order is the graph's
//	insertion order, so repeated runs on identical input are bit-for-bit
//	identical.
//
// Options
//
//	WithRounds(n)            number of passes (default 3, n < 1 is rejected).
//	WithClearOnFill()        clear the missing mark once a row is filled.
//	WithSeedNeighboursOnly() average only neighbours defined in the input.
//	WithOnRound(fn)          observe each pass and its largest change.
//
// Errors:
//
//	ErrDatasetNil            - nil dataset.
//	ErrGraphNil              - nil graph.
//	ErrIndexNil              - nil registry index.
//	ErrOptionViolation       - invalid option value.
//	ErrUnresolvableNeighbour - the graph references an id outside the registry.
package interpolate
