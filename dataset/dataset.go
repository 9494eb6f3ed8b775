// Package dataset provides the keyed per-district table exchanged between
// importers and the reconciliation core.
//
// A Dataset maps unique labels to float64 values in a fixed key order.
// NaN marks an undefined value: importers use it for gaps, the crosswalk for
// unmatched rows, and the interpolator for rows it could not fill.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrSchema indicates input that is not a well-formed label -> value mapping.
var ErrSchema = errors.New("dataset: malformed label/value shape")

// Undefined is the value stored for a missing row.
var Undefined = math.NaN()

// IsUndefined reports whether v represents a missing value.
func IsUndefined(v float64) bool { return math.IsNaN(v) }

// Resolver maps a raw label to a canonical identifier.
type Resolver interface {
	Resolve(label string) string
}

// Dataset is an ordered label -> value mapping.
// The zero value is not usable; call New.
type Dataset struct {
	keys   []string
	values map[string]float64
}

// New returns an empty Dataset.
func New() *Dataset {
	return &Dataset{values: make(map[string]float64)}
}

// FromPairs builds a Dataset from parallel label and value slices.
// It fails with ErrSchema on length mismatch, empty labels or duplicates.
func FromPairs(labels []string, values []float64) (*Dataset, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%w: %d labels for %d values", ErrSchema, len(labels), len(values))
	}
	ds := &Dataset{
		keys:   make([]string, 0, len(labels)),
		values: make(map[string]float64, len(labels)),
	}
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: empty label at row %d", ErrSchema, i)
		}
		if _, dup := ds.values[l]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrSchema, l)
		}
		ds.Set(l, values[i])
	}

	return ds, nil
}

// FromMap builds a Dataset from m with keys sorted ascending, so that the
// result is reproducible regardless of map iteration order.
func FromMap(m map[string]float64) *Dataset {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ds := &Dataset{keys: keys, values: make(map[string]float64, len(m))}
	for _, k := range keys {
		ds.values[k] = m[k]
	}

	return ds
}

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position.
func (d *Dataset) Set(key string, v float64) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Value returns the value under key and whether the key exists.
// An existing key may still hold Undefined.
func (d *Dataset) Value(key string) (float64, bool) {
	v, ok := d.values[key]

	return v, ok
}

// Has reports whether key exists.
func (d *Dataset) Has(key string) bool {
	_, ok := d.values[key]

	return ok
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.keys) }

// Keys returns the labels in order.
func (d *Dataset) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)

	return out
}

// Values returns the values aligned with Keys.
func (d *Dataset) Values() []float64 {
	out := make([]float64, len(d.keys))
	for i, k := range d.keys {
		out[i] = d.values[k]
	}

	return out
}

// IsMissing reports whether key is absent or holds Undefined.
func (d *Dataset) IsMissing(key string) bool {
	v, ok := d.values[key]

	return !ok || IsUndefined(v)
}

// Missing returns the keys holding Undefined, in order.
func (d *Dataset) Missing() []string {
	var out []string
	for _, k := range d.keys {
		if IsUndefined(d.values[k]) {
			out = append(out, k)
		}
	}

	return out
}

// Defined returns the number of rows holding a value.
func (d *Dataset) Defined() int {
	n := 0
	for _, k := range d.keys {
		if !IsUndefined(d.values[k]) {
			n++
		}
	}

	return n
}

// Clone returns an independent copy.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		keys:   make([]string, len(d.keys)),
		values: make(map[string]float64, len(d.values)),
	}
	copy(c.keys, d.keys)
	for k, v := range d.values {
		c.values[k] = v
	}

	return c
}

// Canonicalize returns a copy of d keyed by r.Resolve(label), keeping row
// order. Two labels that resolve to the same identifier make the mapping
// ambiguous and fail with ErrSchema.
//
// Complexity: O(N) calls to r.Resolve and O(N) memory for N rows.
func Canonicalize(d *Dataset, r Resolver) (*Dataset, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil dataset", ErrSchema)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil resolver", ErrSchema)
	}
	out := &Dataset{
		keys:   make([]string, 0, len(d.keys)),
		values: make(map[string]float64, len(d.keys)),
	}
	// Rekey row by row, remembering which input label claimed each id.
	from := make(map[string]string, len(d.keys))
	for _, k := range d.keys {
		id := r.Resolve(k)
		if prev, dup := from[id]; dup {
			return nil, fmt.Errorf("%w: %q and %q both resolve to %q", ErrSchema, prev, k, id)
		}
		from[id] = k
		out.Set(id, d.values[k])
	}

	return out, nil
}
