// Package country bundles the per-country reconciliation configuration and
// assembles imported parameters into one table indexed by canonical district
// id.
package country

import (
	"errors"
	"fmt"

	"github.com/malaria-bench/mbench/adjacency"
	"github.com/malaria-bench/mbench/crosswalk"
	"github.com/malaria-bench/mbench/district"
)

// Sentinel errors for country operations.
var (
	// ErrNoDistricts is returned when a Country has no Registry.
	ErrNoDistricts = errors.New("country: district registry is nil")

	// ErrNoCrosswalk is returned when an old-scheme import has no old/new table.
	ErrNoCrosswalk = errors.New("country: no old/new district crosswalk")

	// ErrUnknownParameter is returned for a column the Table does not hold.
	ErrUnknownParameter = errors.New("country: unknown parameter")

	// ErrDuplicateParameter is returned when a column is added twice.
	ErrDuplicateParameter = errors.New("country: parameter already present")
)

// Country is the reconciliation configuration of one country. It is built
// once and passed explicitly to every operation.
type Country struct {
	Name      string
	Districts *district.Registry
	Adjacency *adjacency.Graph     // may be nil when no neighbour table exists
	OldToNew  *crosswalk.Crosswalk // may be nil when boundaries never changed
}

// New validates the bundle: the Registry is required and the adjacency
// graph, if any, must only reference registered districts.
func New(name string, reg *district.Registry, g *adjacency.Graph, oldToNew *crosswalk.Crosswalk) (*Country, error) {
	if reg == nil {
		return nil, ErrNoDistricts
	}
	if g != nil {
		if err := g.Validate(reg); err != nil {
			return nil, fmt.Errorf("country %s: %w", name, err)
		}
	}

	return &Country{Name: name, Districts: reg, Adjacency: g, OldToNew: oldToNew}, nil
}
