package district

import (
	"fmt"
	"sync"
)

// Registry is an ordered collection of Districts with unique IDs.
//
// A Registry is built once per country configuration and read many times;
// reads take a shared lock so one Registry may back concurrent imports.
// Once shared, aliases must be added through Registry.AddAlias, which
// takes the write lock.
type Registry struct {
	mu        sync.RWMutex
	scheme    string
	districts []*District
	index     map[string]int // ID -> position in districts
}

// NewRegistry creates an empty Registry. The default scheme is
// SchemeDistricts.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		scheme: SchemeDistricts,
		index:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// NewRegistryFrom creates a Registry and adds every District in order,
// stopping at the first error.
func NewRegistryFrom(districts []*District, opts ...Option) (*Registry, error) {
	r := NewRegistry(opts...)
	for _, d := range districts {
		if err := r.Add(d); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Scheme returns the naming scheme this Registry represents.
func (r *Registry) Scheme() string { return r.scheme }

// Add appends d. It fails with ErrDuplicateDistrict when d's ID is already
// registered.
func (r *Registry) Add(d *District) error {
	if d == nil {
		return ErrNilDistrict
	}
	if d.id == "" {
		return ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[d.id]; exists {
		return fmt.Errorf("%w: %q in %s", ErrDuplicateDistrict, d.id, r.scheme)
	}
	r.index[d.id] = len(r.districts)
	r.districts = append(r.districts, d)

	return nil
}

// AddAlias adds alias to the District registered under id while holding
// the write lock, so it is safe alongside concurrent lookups.
func (r *Registry) AddAlias(id, alias string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[Normalize(id)]
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownDistrict, id, r.scheme)
	}
	r.districts[i].AddAlias(alias)

	return nil
}

// Len returns the number of Districts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.districts)
}

// IDs returns canonical IDs in insertion order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.districts))
	for i, d := range r.districts {
		out[i] = d.id
	}

	return out
}

// Contains reports whether id (compared after normalization) is registered.
func (r *Registry) Contains(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[Normalize(id)]

	return ok
}

// Get returns the District registered under id, or nil.
func (r *Registry) Get(id string) *District {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i, ok := r.index[Normalize(id)]; ok {
		return r.districts[i]
	}

	return nil
}

// Lookup resolves query and reports whether any District matched.
// On a miss it returns Normalize(query) and false.
//
// Complexity: O(D*A) time, D districts with up to A aliases each; no
// allocation beyond the normalized query.
func (r *Registry) Lookup(query string) (string, bool) {
	q := Normalize(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	result, found := q, false
	// No early exit: the last matching District wins.
	for _, d := range r.districts {
		if d.matchNormalized(q) {
			result, found = d.id, true
		}
	}

	return result, found
}

// Resolve returns the canonical ID for query. Unknown labels come back
// normalized but unresolved; that is not an error.
func (r *Registry) Resolve(query string) string {
	id, _ := r.Lookup(query)

	return id
}

// ResolveMany applies Resolve element-wise, preserving order.
func (r *Registry) ResolveMany(queries []string) []string {
	out := make([]string, len(queries))
	for i, q := range queries {
		out[i] = r.Resolve(q)
	}

	return out
}

// NormalizeMany applies Normalize only, without any alias search.
func (r *Registry) NormalizeMany(labels []string) []string {
	return NormalizeAll(labels)
}

// Unresolved returns the distinct normalized labels that match no District,
// in first-seen order. Use it to surface labels for manual curation.
func (r *Registry) Unresolved(queries []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, q := range queries {
		id, ok := r.Lookup(q)
		if ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
