package crosswalk

import (
	"github.com/malaria-bench/mbench/dataset"
)

// ErrSchema is dataset.ErrSchema; both packages report malformed shapes with
// the same sentinel.
var ErrSchema = dataset.ErrSchema

// Resolver is the part of district.Registry a Crosswalk needs.
type Resolver interface {
	ResolveMany(queries []string) []string
	NormalizeMany(labels []string) []string
}

// JoinKey selects the column incoming data is matched on.
type JoinKey int

const (
	// JoinStart matches incoming keys against the start column.
	JoinStart JoinKey = iota
	// JoinTo matches incoming keys against the canonical "to" column.
	JoinTo
)

// String returns "start" or "to".
func (k JoinKey) String() string {
	switch k {
	case JoinStart:
		return "start"
	case JoinTo:
		return "to"
	default:
		return "unknown"
	}
}

// Entry pairs one start-scheme label with a canonical id.
type Entry struct {
	Source    string
	Canonical string
}

// Columns names the two sides of a Crosswalk.
type Columns struct {
	Start string
	To    string
}

// Column presets.
var (
	DefaultColumns  = Columns{Start: "start", To: "to"}
	OldToNewColumns = Columns{Start: "old", To: "new"}
	AdjacentColumns = Columns{Start: "from", To: "to"}
)

// Option configures a Crosswalk.
type Option func(*Crosswalk)

// WithColumns sets the column names. Empty names keep the current value.
func WithColumns(c Columns) Option {
	return func(cw *Crosswalk) {
		if c.Start != "" {
			cw.columns.Start = c.Start
		}
		if c.To != "" {
			cw.columns.To = c.To
		}
	}
}

// OldToNew configures an old-district -> new-district table.
func OldToNew() Option { return WithColumns(OldToNewColumns) }

// Adjacent configures a from -> to adjacency table.
func Adjacent() Option { return WithColumns(AdjacentColumns) }
