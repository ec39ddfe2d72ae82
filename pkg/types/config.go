package types

import "errors"

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Dataset is the source playground dataset, supplied once by the
	// hosting application at startup. Used to seed an empty store and to
	// re-import after a content-drift reset.
	Dataset []SourcePlayground `json:"-" yaml:"-"`

	// CascadeFavorites controls whether deleting a playground also removes
	// its favorites. The observed source behavior is no cascade, so the
	// zero value preserves it.
	CascadeFavorites bool `json:"cascade_favorites" yaml:"cascade_favorites"`

	// SprinklerExpect, when non-nil, enables the content-drift detector:
	// the count of playgrounds with a populated true sprinkler flag must
	// fall inside the range, otherwise the playground collection is cleared
	// and re-imported from Dataset. The range is recorded at dataset
	// release time.
	SprinklerExpect *CountRange `json:"sprinkler_expect,omitempty" yaml:"sprinkler_expect,omitempty"`
}

// CountRange is an inclusive expected-cardinality range for a verification
// field, declared alongside the dataset it describes.
type CountRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether n falls inside the inclusive range.
func (r CountRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrExpectRangeInvalid = errors.New("expected sprinkler range must satisfy 0 <= min <= max")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if r := c.SprinklerExpect; r != nil {
		if r.Min < 0 || r.Max < r.Min {
			return ErrExpectRangeInvalid
		}
	}
	return nil
}
