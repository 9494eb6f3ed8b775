package interpolate

import (
	"math"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/dataset"
)

// Fill imputes the NaN rows of ds from their neighbours in g.
//
// idx is the registry ds is indexed by; g is validated against it before any
// work, and a dangling reference fails with ErrUnresolvableNeighbour.
// Neighbours that are registered but absent from ds count as undefined.
//
// Rows are updated in place in ds key order, so a value filled earlier in a
// pass feeds later rows of the same pass. Rounds is therefore an upper bound
// on the hops needed, not an exact one: a row within Rounds hops of a
// defined value (see adjacency.Graph.Reach) is always filled, and a row
// further away may be filled too.
//
// Complexity:
//   - Time: O(Rounds * (M + E_M)), M missing rows, E_M their neighbour entries.
//   - Memory: O(N + E_M) for the working copy and cached neighbour lists.
func Fill(ds *dataset.Dataset, g *adjacency.Graph, idx adjacency.Index, opts ...Option) (*Result, error) {
	// Validate inputs.
	if ds == nil {
		return nil, ErrDatasetNil
	}
	if g == nil {
		return nil, ErrGraphNil
	}
	if idx == nil {
		return nil, ErrIndexNil
	}

	// Apply options; the first invalid one wins.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// Every graph id must be registered before any row is touched.
	if err := g.Validate(idx); err != nil {
		return nil, err
	}

	// Mark missing rows, then run the passes.
	f := newFiller(ds, g, o)
	for round := 1; round <= o.Rounds; round++ {
		delta := f.pass()
		f.res.Deltas = append(f.res.Deltas, delta)
		o.OnRound(round, delta)
	}

	return f.result(), nil
}

// filler holds the working copy for one Fill call.
type filler struct {
	opts   Options
	keys   []string
	values map[string]float64
	seed   map[string]bool // defined in the input
	active []string        // rows recomputed each pass
	nbrs   map[string][]string
	res    *Result
}

func newFiller(ds *dataset.Dataset, g *adjacency.Graph, o Options) *filler {
	keys := ds.Keys()
	vals := ds.Values()
	f := &filler{
		opts:   o,
		keys:   keys,
		values: make(map[string]float64, len(keys)),
		seed:   make(map[string]bool, len(keys)),
		nbrs:   make(map[string][]string),
		res:    &Result{Deltas: make([]float64, 0, o.Rounds)},
	}
	for i, k := range keys {
		f.values[k] = vals[i]
		if math.IsNaN(vals[i]) {
			f.active = append(f.active, k)
			f.res.Missing = append(f.res.Missing, k)
			f.nbrs[k] = g.NeighboursOf(k)
			continue
		}
		f.seed[k] = true
	}

	return f
}

// pass recomputes every active row once and returns the largest change.
func (f *filler) pass() float64 {
	maxDelta := 0.0
	next := f.active[:0:0]
	for _, k := range f.active {
		prev := f.values[k]
		v := f.mean(f.nbrs[k])
		f.values[k] = v

		if d := change(prev, v); d > maxDelta {
			maxDelta = d
		}
		if f.opts.ClearOnFill && !math.IsNaN(v) {
			continue
		}
		next = append(next, k)
	}
	f.active = next

	return maxDelta
}

// mean averages the usable current values of nbrs; none usable yields NaN.
func (f *filler) mean(nbrs []string) float64 {
	sum, n := 0.0, 0
	for _, nb := range nbrs {
		if f.opts.SeedOnly && !f.seed[nb] {
			continue
		}
		v, ok := f.values[nb]
		if !ok || math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}

	return sum / float64(n)
}

func (f *filler) result() *Result {
	out := dataset.New()
	for _, k := range f.keys {
		out.Set(k, f.values[k])
	}
	f.res.Data = out
	for _, k := range f.res.Missing {
		if math.IsNaN(f.values[k]) {
			f.res.Unfilled = append(f.res.Unfilled, k)
		} else {
			f.res.Filled = append(f.res.Filled, k)
		}
	}

	return f.res
}

// change is |a-b| with NaN handling: NaN->NaN is 0, NaN<->value is +Inf.
func change(a, b float64) float64 {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an || bn:
		return math.Inf(1)
	default:
		return math.Abs(a - b)
	}
}
