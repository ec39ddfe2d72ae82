package types

import "errors"

// Store defines backend-agnostic access to the playground store. Callers
// attach to a backend (open, migrate, ready), operate on collections and
// typed queries, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config,
	// creating the data directory if needed and running the migration
	// engine. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrStoreDetached.
	Detach() error

	// GetTable returns the Table for the given collection name.
	// Returns ErrTableNotFound if the name is not a standard collection.
	GetTable(name string) (Table, error)

	// GetPlaygroundByPropID looks up a playground by business key.
	// Returns ErrNotFound if no playground carries the prop ID.
	GetPlaygroundByPropID(propID string) (*Playground, error)

	// Validate checks a candidate playground and returns an ordered list
	// of human-readable violations. An empty list signals acceptance;
	// validation failures are values, never errors.
	Validate(candidate *Playground) ([]string, error)

	// FilterPlaygrounds returns the playgrounds matching all present
	// criteria.
	FilterPlaygrounds(criteria FilterCriteria) ([]*Playground, error)

	// SearchPlaygrounds performs a case-insensitive substring search over
	// name and location. Empty or non-matching terms yield an empty result.
	SearchPlaygrounds(term string) ([]*Playground, error)

	// SearchByExtendedInfo filters playgrounds by generation-2 attributes.
	SearchByExtendedInfo(criteria ExtendedCriteria) ([]*Playground, error)

	// SearchReviews performs a case-insensitive substring search over
	// review title, content, and author.
	SearchReviews(term string) ([]*Review, error)

	// FavoritesList resolves all favorites to their playground records.
	// Favorites pointing at a since-deleted playground are silently
	// dropped.
	FavoritesList() ([]*Playground, error)

	// GetSetting returns the setting stored under key, or ErrNotFound.
	GetSetting(key string) (*Setting, error)

	// PutSetting upserts a setting under its key.
	PutSetting(setting *Setting) error

	// FavoritesForPlayground returns the favorite entries referencing a
	// playground business key, oldest first. Unknown prop IDs yield an
	// empty result.
	FavoritesForPlayground(propID string) ([]*Favorite, error)

	// ReviewsForPlayground returns the reviews for a playground business
	// key, newest first. Unknown prop IDs yield an empty result.
	ReviewsForPlayground(propID string) ([]*Review, error)

	// Stats summarizes the playground collection.
	Stats() (Stats, error)

	// ReviewStats summarizes the review collection.
	ReviewStats() (ReviewStats, error)

	// PlaygroundStats extends Stats with the has-reviews derivation.
	PlaygroundStats() (PlaygroundStats, error)

	// ExportAll produces a pretty-printed JSON snapshot of the full
	// playground collection, ordered by prop ID.
	ExportAll() ([]byte, error)

	// ImportAll clears all four collections and re-runs the initialization
	// path with the snapshot as the source dataset.
	ImportAll(snapshot []byte) error

	// ResetAll clears playgrounds, favorites, and settings. Reviews
	// survive a reset; the asymmetry is inherited from the source design
	// and preserved deliberately.
	ResetAll() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
