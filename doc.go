// Package mbench reconciles sub-national district identifiers across data
// sources and fills missing per-district values from their neighbours.
//
// The work is split into small packages, each usable on its own:
//
//	district/     Normalize, District and the Registry that resolves labels to ids
//	dataset/      ordered label→value columns with NaN as "undefined"
//	crosswalk/    old/new and adjacency tables, projections and collapsing
//	adjacency/    the neighbour graph, validation, components and reach
//	interpolate/  iterative neighbour averaging of missing rows
//	country/      per-country bundle and parameter table
//	builder/      synthetic countries for tests and benchmarks
//	store/        PostgreSQL persistence (lib/pq)
//	config/, logger/, metrics/  environment, slog and Prometheus plumbing
//
// A typical pipeline:
//
//	reg := district.NewRegistry()
//	_ = reg.Add(district.New("NORTH", "North", "northern region"))
//	...
//	g, _ := adjacency.FromPairs(reg, pairs, adjacency.WithSymmetric())
//	ds, _ := dataset.Canonicalize(raw, reg)
//	res, _ := interpolate.Fill(ds, g, reg)
//
// cmd/mbench-fill runs the same pipeline for every stored country.
//
// Core packages are synchronous, deterministic and free of I/O; only
// store, cmd/mbench-fill and metrics touch the outside world.
package mbench
