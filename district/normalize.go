package district

import "strings"

// separator is the single character every separator collapses into.
const separator = '_'

// Normalize returns the canonical form of s.
//
// Rules, applied in one left-to-right pass:
//   - ASCII a-z become A-Z; every other rune is kept as is.
//   - '-', ' ' and '/' become '_'.
//   - a run of '_' (original or substituted) is emitted once.
//
// Normalize is pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
// Leading and trailing separators are kept (collapsed), never trimmed.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSep := false
	for _, r := range s {
		switch {
		case r == '-' || r == ' ' || r == '/' || r == separator:
			if prevSep {
				continue
			}
			b.WriteRune(separator)
			prevSep = true
			continue
		case r >= 'a' && r <= 'z':
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
		prevSep = false
	}

	return b.String()
}

// NormalizeAll applies Normalize element-wise, preserving order.
func NormalizeAll(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = Normalize(l)
	}

	return out
}
