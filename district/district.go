package district

// District is one canonical administrative unit.
//
// ID is normalized at construction and never changes. Aliases are stored
// normalized, deduplicated, in the order they were added.
type District struct {
	id      string
	name    string
	aliases []string
	seen    map[string]struct{}
}

// New builds a District. id and aliases are normalized; name is kept as
// given for display.
func New(id, name string, aliases ...string) *District {
	d := &District{
		id:   Normalize(id),
		name: name,
		seen: make(map[string]struct{}, len(aliases)),
	}
	for _, a := range aliases {
		d.AddAlias(a)
	}

	return d
}

// ID returns the canonical identifier.
func (d *District) ID() string { return d.id }

// Name returns the display name.
func (d *District) Name() string { return d.name }

// Aliases returns a copy of the normalized aliases in insertion order.
func (d *District) Aliases() []string {
	out := make([]string, len(d.aliases))
	copy(out, d.aliases)

	return out
}

// AddAlias registers another label for this District. Empty labels and
// labels already known (after normalization) are ignored.
//
// AddAlias takes no lock: call it before the District is added to a shared
// Registry, and use Registry.AddAlias afterwards.
func (d *District) AddAlias(alias string) {
	a := Normalize(alias)
	if a == "" {
		return
	}
	if _, ok := d.seen[a]; ok {
		return
	}
	d.seen[a] = struct{}{}
	d.aliases = append(d.aliases, a)
}

// Format normalizes s; it is the District-level view of Normalize.
func (d *District) Format(s string) string { return Normalize(s) }

// Matches reports whether query names this District, either by its ID or by
// one of its aliases.
func (d *District) Matches(query string) bool {
	return d.matchNormalized(Normalize(query))
}

// Search returns (ID, true) when query matches, ("", false) otherwise.
// Absence is the common case and is never an error.
func (d *District) Search(query string) (string, bool) {
	if d.Matches(query) {
		return d.id, true
	}

	return "", false
}

// matchNormalized compares an already-normalized query.
func (d *District) matchNormalized(q string) bool {
	if q == d.id {
		return true
	}
	_, ok := d.seen[q]

	return ok
}
