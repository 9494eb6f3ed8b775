package country

import (
	"fmt"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/crosswalk"
	"github.com/malaria-bench/mbench/dataset"
	"github.com/malaria-bench/mbench/interpolate"
)

// Table holds one column per parameter and one row per registered district,
// in Registry order. Rows without data hold dataset.Undefined.
//
// Input rows whose label matched no district are retained per parameter,
// under their original label, so Export can write them back for curation.
type Table struct {
	country  *Country
	rows     []string
	params   []string
	columns  map[string]*dataset.Dataset
	retained map[string]*dataset.Dataset
}

// NewTable returns an empty Table for c.
func NewTable(c *Country) *Table {
	return &Table{
		country: c,
		rows:    c.Districts.IDs(),
		columns:  make(map[string]*dataset.Dataset),
		retained: make(map[string]*dataset.Dataset),
	}
}

// Rows returns the canonical ids indexing the Table.
func (t *Table) Rows() []string {
	out := make([]string, len(t.rows))
	copy(out, t.rows)

	return out
}

// Parameters returns column names in the order they were added.
func (t *Table) Parameters() []string {
	out := make([]string, len(t.params))
	copy(out, t.params)

	return out
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) (*dataset.Dataset, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}

	return col.Clone(), nil
}

// AddParameter canonicalizes ds through the country's Registry and stores
// it as column name. Labels that resolve to no registered district are left
// out of the column, retained (see Retained) and returned normalized; they
// are not an error.
func (t *Table) AddParameter(name string, ds *dataset.Dataset) (unresolved []string, err error) {
	if _, dup := t.columns[name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateParameter, name)
	}
	canon, err := dataset.Canonicalize(ds, t.country.Districts)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", name, err)
	}

	col := dataset.New()
	for _, id := range t.rows {
		v, ok := canon.Value(id)
		if !ok {
			v = dataset.Undefined
		}
		col.Set(id, v)
	}
	for _, k := range canon.Keys() {
		if !t.country.Districts.Contains(k) {
			unresolved = append(unresolved, k)
		}
	}
	kept := dataset.New()
	for _, k := range ds.Keys() {
		if _, ok := t.country.Districts.Lookup(k); !ok {
			v, _ := ds.Value(k)
			kept.Set(k, v)
		}
	}

	t.params = append(t.params, name)
	t.columns[name] = col
	t.retained[name] = kept

	return unresolved, nil
}

// Retained returns a copy of the unresolved input rows of name, keyed by
// their original labels.
func (t *Table) Retained(name string) (*dataset.Dataset, error) {
	kept, ok := t.retained[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}

	return kept.Clone(), nil
}

// Export returns column name followed by its retained unresolved rows: the
// full set of rows to persist so unresolved labels survive a write-back.
// Retained labels never collide with canonical ids, since a label equal to
// a registered id resolves to it.
func (t *Table) Export(name string) (*dataset.Dataset, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	out := col.Clone()
	for _, k := range t.retained[name].Keys() {
		v, _ := t.retained[name].Value(k)
		out.Set(k, v)
	}

	return out, nil
}

// ImportOld reprojects an old-scheme dataset onto current districts through
// the country's OldToNew crosswalk (join on the old column, Mean where
// several old districts feed one new one) and adds it as column name.
// It returns the crosswalk rows that found no input and any unresolved ids.
func (t *Table) ImportOld(name string, ds *dataset.Dataset) (unmatched int, unresolved []string, err error) {
	if t.country.OldToNew == nil {
		return 0, nil, ErrNoCrosswalk
	}
	p, err := t.country.OldToNew.Project(ds, crosswalk.JoinStart)
	if err != nil {
		return 0, nil, fmt.Errorf("parameter %s: %w", name, err)
	}
	unresolved, err = t.AddParameter(name, p.Collapse(crosswalk.Mean))
	if err != nil {
		return 0, nil, err
	}

	return p.Unmatched(), unresolved, nil
}

// Fill interpolates column name over the country's adjacency graph and
// replaces the column with the filled values.
func (t *Table) Fill(name string, opts ...interpolate.Option) (*interpolate.Result, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	g := t.country.Adjacency
	if g == nil {
		g = adjacency.New()
	}
	res, err := interpolate.Fill(col, g, t.country.Districts, opts...)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", name, err)
	}
	t.columns[name] = res.Data

	return res, nil
}
