package crosswalk

import (
	"fmt"

	"github.com/malaria-bench/mbench/dataset"
)

// Crosswalk is an ordered table of Entries. It is immutable after New.
type Crosswalk struct {
	resolver Resolver
	columns  Columns
	entries  []Entry
}

// New builds a Crosswalk from parallel start and to columns.
// start labels are normalized, to labels are resolved through r.
// Unequal column lengths or a nil resolver fail with ErrSchema.
func New(r Resolver, start, to []string, opts ...Option) (*Crosswalk, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil resolver", ErrSchema)
	}
	if len(start) != len(to) {
		return nil, fmt.Errorf("%w: %d start labels for %d to labels", ErrSchema, len(start), len(to))
	}
	cw := &Crosswalk{resolver: r, columns: DefaultColumns}
	for _, opt := range opts {
		opt(cw)
	}

	src := r.NormalizeMany(start)
	dst := r.ResolveMany(to)
	cw.entries = make([]Entry, len(src))
	for i := range src {
		cw.entries[i] = Entry{Source: src[i], Canonical: dst[i]}
	}

	return cw, nil
}

// Columns returns the configured column names.
func (cw *Crosswalk) Columns() Columns { return cw.columns }

// Len returns the number of rows.
func (cw *Crosswalk) Len() int { return len(cw.entries) }

// Entries returns a copy of the rows in order.
func (cw *Crosswalk) Entries() []Entry {
	out := make([]Entry, len(cw.entries))
	copy(out, cw.entries)

	return out
}

// Lookup returns the canonical ids paired with source (matched after
// normalization), in row order.
//
// Complexity: O(R) time over the crosswalk rows.
func (cw *Crosswalk) Lookup(source string) []string {
	src := cw.resolver.NormalizeMany([]string{source})[0]
	var out []string
	for _, e := range cw.entries {
		if e.Source == src {
			out = append(out, e.Canonical)
		}
	}

	return out
}

// Project left-joins ds onto the crosswalk on the join column and returns
// one row per crosswalk row, keyed by the other column.
//
// Complexity:
//   - Time: O(N*D + R), N dataset rows, D districts searched per JoinTo
//     label (O(N) for JoinStart), R crosswalk rows.
//   - Memory: O(N + R).
func (cw *Crosswalk) Project(ds *dataset.Dataset, join JoinKey) (*Projection, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrSchema)
	}

	// Bring incoming labels into the join column's form.
	var keys []string
	switch join {
	case JoinStart:
		keys = cw.resolver.NormalizeMany(ds.Keys())
	case JoinTo:
		keys = cw.resolver.ResolveMany(ds.Keys())
	default:
		return nil, fmt.Errorf("%w: unknown join key %d", ErrSchema, int(join))
	}

	// Index values by join key; two labels landing on one key are ambiguous.
	raw := ds.Keys()
	vals := ds.Values()
	lookup := make(map[string]float64, len(keys))
	origin := make(map[string]string, len(keys))
	for i, k := range keys {
		if prev, dup := origin[k]; dup {
			return nil, fmt.Errorf("%w: %q and %q both map to %q on %s", ErrSchema, prev, raw[i], k, join)
		}
		origin[k] = raw[i]
		lookup[k] = vals[i]
	}

	// Left join: every crosswalk row yields exactly one output row.
	p := &Projection{join: join, rows: make([]Row, len(cw.entries))}
	for i, e := range cw.entries {
		match, key := e.Source, e.Canonical
		if join == JoinTo {
			match, key = e.Canonical, e.Source
		}
		v, ok := lookup[match]
		if !ok {
			v = dataset.Undefined
			p.unmatched++
		}
		p.rows[i] = Row{Key: key, From: match, Value: v}
	}

	return p, nil
}
