package types

import "errors"

// Standard collection names.
const (
	PlaygroundsTable = "playgrounds"
	FavoritesTable   = "favorites"
	ReviewsTable     = "reviews"
	SettingsTable    = "settings"
)

// Filter is a generic fetch filter: column-oriented equality criteria keyed by
// well-known names ("prop_id", "playground_ref", ...). Typed queries on Store
// cover everything beyond simple lookups.
type Filter map[string]any

// Table provides uniform CRUD operations for a single collection.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated and creation defaults are applied. Returns the actual ID
	// used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the collection.
	Fetch(filter Filter) ([]any, error)

	// Clear removes every entity in the collection.
	Clear() error
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)
