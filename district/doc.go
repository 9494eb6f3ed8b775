// Package district resolves free-text administrative district labels to
// canonical identifiers.
//
// What
//
//   - Normalize turns any label into its canonical form: ASCII upper-case,
//     '-', ' ' and '/' replaced by '_', runs of '_' collapsed to one.
//   - District holds one canonical ID, a display name and a set of aliases.
//   - Registry is an ordered collection of Districts that resolves labels
//     coming from surveys, old boundary schemes and adjacency tables.
//
// Two speeds
//
//	NormalizeMany applies Normalize only. Use it for the side of a join that is
//	already well-formed (e.g. the "new" column of a crosswalk).
//	ResolveMany searches every District's aliases. Use it for free text.
//
// Determinism
//
//	Resolve walks the Registry in insertion order and does not stop at the
//	first hit: when a label matches aliases of several Districts, the last one
//	added wins. A label that matches nothing is returned normalized, so batch
//	imports keep going and unresolved labels can be audited afterwards with
//	Unresolved.
//
// Errors:
//
//	ErrDuplicateDistrict - two Districts normalize to the same ID.
//	ErrEmptyID           - a District was created with an empty ID.
//	ErrNilDistrict       - Add received a nil *District.
package district
