package adjacency

import (
	"fmt"
	"sync"

	"github.com/malaria-bench/mbench/crosswalk"
)

// Graph is the neighbour relation over canonical ids.
type Graph struct {
	mu        sync.RWMutex
	symmetric bool

	ids   []string                       // first-seen order
	adj   map[string][]string            // id -> neighbours, insertion order
	edges map[string]map[string]struct{} // id -> neighbour set for dedup
}

// New returns an empty Graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		adj:   make(map[string][]string),
		edges: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// FromPairs resolves every label in pairs through r and builds a Graph.
// The first label that matches no district aborts with ErrUnresolvableNeighbour.
func FromPairs(r Resolver, pairs []Pair, opts ...Option) (*Graph, error) {
	g := New(opts...)
	for i, p := range pairs {
		from, ok := r.Lookup(p.From)
		if !ok {
			return nil, fmt.Errorf("%w: row %d from %q", ErrUnresolvableNeighbour, i, p.From)
		}
		to, ok := r.Lookup(p.To)
		if !ok {
			return nil, fmt.Errorf("%w: row %d to %q", ErrUnresolvableNeighbour, i, p.To)
		}
		if err := g.AddEdge(from, to); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// FromCrosswalk builds a Graph from an adjacency crosswalk (see
// crosswalk.Adjacent). Both columns are resolved through r, so aliases are
// accepted on either side; a label matching no district fails with
// ErrUnresolvableNeighbour, as in FromPairs.
func FromCrosswalk(cw *crosswalk.Crosswalk, r Resolver, opts ...Option) (*Graph, error) {
	entries := cw.Entries()
	pairs := make([]Pair, len(entries))
	for i, e := range entries {
		pairs[i] = Pair{From: e.Source, To: e.Canonical}
	}

	return FromPairs(r, pairs, opts...)
}

// Symmetric reports whether edges are mirrored.
func (g *Graph) Symmetric() bool { return g.symmetric }

// AddEdge records to as a neighbour of from (and the reverse when the Graph
// is symmetric). Repeated edges are ignored.
func (g *Graph) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.link(from, to)
	if g.symmetric {
		g.link(to, from)
	}

	return nil
}

// link appends to under from; caller holds mu.
func (g *Graph) link(from, to string) {
	g.touch(from)
	g.touch(to)
	if _, dup := g.edges[from][to]; dup {
		return
	}
	g.edges[from][to] = struct{}{}
	g.adj[from] = append(g.adj[from], to)
}

// touch registers id in first-seen order; caller holds mu.
func (g *Graph) touch(id string) {
	if _, ok := g.edges[id]; ok {
		return
	}
	g.edges[id] = make(map[string]struct{})
	g.ids = append(g.ids, id)
}

// NeighboursOf returns a copy of id's neighbours in insertion order.
// An id with no recorded neighbours yields an empty slice, not an error.
func (g *Graph) NeighboursOf(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, len(g.adj[id]))
	copy(out, g.adj[id])

	return out
}

// IDs returns every referenced id in first-seen order.
func (g *Graph) IDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, len(g.ids))
	copy(out, g.ids)

	return out
}

// Len returns the number of referenced ids.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.ids)
}

// EdgeCount returns the number of directed neighbour entries.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, nb := range g.adj {
		n += len(nb)
	}

	return n
}

// Validate checks that every referenced id is known to idx, in first-seen
// order, and returns ErrUnresolvableNeighbour for the first that is not.
func (g *Graph) Validate(idx Index) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, id := range g.ids {
		if !idx.Contains(id) {
			return fmt.Errorf("%w: %q", ErrUnresolvableNeighbour, id)
		}
	}

	return nil
}
