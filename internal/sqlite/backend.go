// This file implements the Store lifecycle: attach (open, structural upgrade,
// migrate, ready), detach, and collection routing. A structural-open failure
// is recovered once by deleting and recreating the database file; the data
// loss is accepted because a corrupted store has no other source of truth.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// DatabaseFileName is the SQLite file created inside DataDir.
const DatabaseFileName = "swingset.db"

// Backend implements the Store interface on a single-file SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
	}
}

// structuralError marks a failure to open the store against its declared
// definition. Attach recovers from it once by recreating the database file.
type structuralError struct {
	err error
}

func (e *structuralError) Error() string { return e.err.Error() }
func (e *structuralError) Unwrap() error { return e.err }

// Attach opens the database, applies structural upgrades, and runs the
// migration engine. Returns ErrAlreadyAttached if called while attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, DatabaseFileName)

	db, err := b.open(dbPath)
	if err != nil {
		var serr *structuralError
		if !errors.As(err, &serr) {
			return err
		}
		// One-shot recovery: delete the corrupted store and retry.
		if rmErr := os.Remove(dbPath); rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("removing corrupted store: %w", rmErr)
		}
		db, err = b.open(dbPath)
		if err != nil {
			return err
		}
	}

	b.db = db
	b.config = config

	if err := migrate(db, config); err != nil {
		db.Close()
		b.db = nil
		return fmt.Errorf("migrating store: %w", err)
	}

	b.attached = true
	b.tables = map[string]types.Table{
		types.PlaygroundsTable: &playgroundsTable{backend: b},
		types.FavoritesTable:   &favoritesTable{backend: b},
		types.ReviewsTable:     &reviewsTable{backend: b},
		types.SettingsTable:    &settingsTable{backend: b},
	}

	return nil
}

// open opens the SQLite file and applies structural DDL. Failures in either
// step are wrapped as structural errors so Attach can recover them.
func (b *Backend) open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &structuralError{fmt.Errorf("opening %s: %w", dbPath, err)}
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, &structuralError{fmt.Errorf("configuring %s: %w", dbPath, err)}
	}
	if err := applyStructural(db); err != nil {
		db.Close()
		return nil, &structuralError{fmt.Errorf("upgrading %s: %w", dbPath, err)}
	}
	return db, nil
}

// Detach releases backend resources. Idempotent: multiple calls succeed.
// After Detach, operations return ErrStoreDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)

	return nil
}

// GetTable returns the Table for the given collection name.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// ready returns the open database handle, or ErrStoreDetached.
func (b *Backend) ready() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached || b.db == nil {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}

// generateID generates a new UUID v7 for entity IDs, falling back to v4 if
// v7 generation fails.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
