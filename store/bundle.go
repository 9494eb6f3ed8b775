package store

import (
	"fmt"
	"math"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/country"
	"github.com/malaria-bench/mbench/crosswalk"
	"github.com/malaria-bench/mbench/dataset"
	"github.com/malaria-bench/mbench/district"
)

// DistrictRow is one row of mbench_districts together with its aliases.
type DistrictRow struct {
	ID      string
	Name    string
	Aliases []string
}

// Bundle is the stored form of a country: plain rows in table order.
type Bundle struct {
	Country   string
	Districts []DistrictRow
	Adjacency []adjacency.Pair
	OldToNew  []crosswalk.Entry // Source is the old label, Canonical the new one
}

// Assemble builds a validated country.Country from b. Adjacency labels are
// resolved through the registry; an empty crosswalk yields a nil OldToNew.
func Assemble(b Bundle, opts ...adjacency.Option) (*country.Country, error) {
	if len(b.Districts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, b.Country)
	}
	reg := district.NewRegistry(district.WithScheme(district.SchemeDistricts))
	for _, row := range b.Districts {
		if err := reg.Add(district.New(row.ID, row.Name, row.Aliases...)); err != nil {
			return nil, fmt.Errorf("country %s: %w", b.Country, err)
		}
	}

	var g *adjacency.Graph
	if len(b.Adjacency) > 0 {
		var err error
		if g, err = adjacency.FromPairs(reg, b.Adjacency, opts...); err != nil {
			return nil, fmt.Errorf("country %s: %w", b.Country, err)
		}
	}

	var cw *crosswalk.Crosswalk
	if len(b.OldToNew) > 0 {
		olds := make([]string, len(b.OldToNew))
		news := make([]string, len(b.OldToNew))
		for i, e := range b.OldToNew {
			olds[i], news[i] = e.Source, e.Canonical
		}
		var err error
		if cw, err = crosswalk.New(reg, olds, news, crosswalk.OldToNew()); err != nil {
			return nil, fmt.Errorf("country %s: %w", b.Country, err)
		}
	}

	return country.New(b.Country, reg, g, cw)
}

// Flatten is the inverse of Assemble: it lists c's registry, graph edges
// and crosswalk rows in their stored order. A symmetric graph contributes
// each undirected edge once, in the direction first seen, so a load/save
// round trip does not grow mbench_adjacency.
func Flatten(c *country.Country) Bundle {
	b := Bundle{Country: c.Name}
	for _, id := range c.Districts.IDs() {
		d := c.Districts.Get(id)
		b.Districts = append(b.Districts, DistrictRow{ID: d.ID(), Name: d.Name(), Aliases: d.Aliases()})
	}
	if c.Adjacency != nil {
		symmetric := c.Adjacency.Symmetric()
		emitted := make(map[adjacency.Pair]bool)
		for _, from := range c.Adjacency.IDs() {
			for _, to := range c.Adjacency.NeighboursOf(from) {
				if symmetric && emitted[adjacency.Pair{From: to, To: from}] {
					continue
				}
				p := adjacency.Pair{From: from, To: to}
				emitted[p] = true
				b.Adjacency = append(b.Adjacency, p)
			}
		}
	}
	if c.OldToNew != nil {
		b.OldToNew = c.OldToNew.Entries()
	}

	return b
}

// nullable maps the undefined value to SQL NULL.
func nullable(v float64) any {
	if dataset.IsUndefined(v) || math.IsInf(v, 0) {
		return nil
	}

	return v
}

// fromNull maps SQL NULL back to the undefined value.
func fromNull(v *float64) float64 {
	if v == nil {
		return dataset.Undefined
	}

	return *v
}
