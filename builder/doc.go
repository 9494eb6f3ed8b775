// Package builder generates synthetic countries: a district registry, an
// adjacency graph of a chosen shape and parameter columns with a
// controlled share of missing rows.
//
// Shapes are Constructors composed by Build, in order:
//
//	c, err := builder.Build("synthetic", []builder.Option{builder.WithSeed(7)},
//		builder.Grid(30, 30))
//	ds, err := builder.Values(c, builder.WithSeed(7), builder.WithMissing(0.3))
//
// Output is deterministic for a fixed seed. Generated edges are
// undirected: Build mirrors every pair.
package builder
