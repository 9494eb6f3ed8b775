// Package crosswalk relates two district naming schemes and reprojects keyed
// data from one scheme onto the other.
//
// A Crosswalk is built from two equal-length label columns. The "start"
// column is normalized only; the "to" column is alias-resolved through a
// district Registry. Each row pairs one start label with one canonical id;
// many start labels may share a canonical id.
//
// Project performs a left join of a Dataset against the stored rows:
//
//	JoinStart  incoming keys are normalized and matched on the start column;
//	           the result is keyed by the "to" column.
//	JoinTo     incoming keys are resolved and matched on the "to" column;
//	           the result is keyed by the start column.
//
// The Projection always has exactly one row per crosswalk row. Rows with no
// matching input carry dataset.Undefined; a boundary change rarely covers
// every district and must not abort a whole import.
//
// Presets
//
// OldToNew and Adjacent configure the same Crosswalk with the column names
// used by old/new boundary tables and adjacency tables.
package crosswalk
