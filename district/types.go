package district

import "errors"

// Sentinel errors for district operations.
var (
	// ErrDuplicateDistrict indicates a District whose ID is already registered.
	ErrDuplicateDistrict = errors.New("district: duplicate canonical id")

	// ErrEmptyID indicates a District with an empty canonical ID.
	ErrEmptyID = errors.New("district: canonical id is empty")

	// ErrNilDistrict indicates a nil *District was passed to the Registry.
	ErrNilDistrict = errors.New("district: district is nil")

	// ErrUnknownDistrict indicates an id that is not registered.
	ErrUnknownDistrict = errors.New("district: unknown canonical id")
)

// Named scheme presets. They replace the old Districts/OldDistricts split:
// both are the same Registry, configured with a different scheme name.
const (
	SchemeDistricts    = "districts"
	SchemeOldDistricts = "old districts"
)

// Option configures a Registry at construction time.
type Option func(r *Registry)

// WithScheme names the naming scheme the Registry represents.
// An empty name keeps the default (SchemeDistricts).
func WithScheme(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.scheme = name
		}
	}
}
