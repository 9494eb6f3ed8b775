// Package adjacency holds the neighbour relation between canonical district
// identifiers, used by the interpolate package to impute missing values.
//
// What
//
//   - Graph maps a canonical id to an ordered list of neighbour ids.
//   - Edges are directed as given; WithSymmetric mirrors every edge.
//   - Neighbour order is insertion order and duplicates are dropped, so the
//     same input table always yields the same neighbour lists.
//   - FromPairs builds a Graph from (from, to) label pairs, resolving every
//     label through a district Registry.
//
// Invariant
//
//	Every id a Graph references must exist in the Registry it is used with.
//	A dangling reference is a configuration error (ErrUnresolvableNeighbour),
//	reported at build or validation time and never silently dropped.
//
// Diagnostics
//
//	Components returns weakly connected components; Reach returns, for each
//	id, the number of interpolation rounds after which it can first draw on a
//	value from a given set of sources.
//
// Errors:
//
//	ErrEmptyID               - an edge endpoint is the empty string.
//	ErrUnresolvableNeighbour - a label or id is unknown to the Registry.
package adjacency
