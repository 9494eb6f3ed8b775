package adjacency

import "errors"

// Sentinel errors for adjacency operations.
var (
	// ErrEmptyID indicates an edge endpoint with an empty id.
	ErrEmptyID = errors.New("adjacency: empty district id")

	// ErrUnresolvableNeighbour indicates a reference to an id outside the Registry.
	ErrUnresolvableNeighbour = errors.New("adjacency: neighbour does not resolve to a registered district")
)

// Pair is one row of an adjacency table.
type Pair struct {
	From string
	To   string
}

// Index reports whether a canonical id is registered.
// *district.Registry satisfies it.
type Index interface {
	Contains(id string) bool
}

// Resolver resolves a raw label and reports whether it matched a district.
// *district.Registry satisfies it.
type Resolver interface {
	Lookup(query string) (string, bool)
}

// Option configures a Graph.
type Option func(*Graph)

// WithSymmetric mirrors every added edge, so AddEdge(a, b) also records b -> a.
func WithSymmetric() Option {
	return func(g *Graph) { g.symmetric = true }
}
