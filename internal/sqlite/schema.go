// Package sqlite implements the SQLite backend for the Swingset playground
// store. This file declares the schema registry: per-generation DDL and the
// installed-generation bookkeeping.
package sqlite

import (
	"database/sql"
	"fmt"
	"strconv"
)

// latestGeneration is the current structural schema generation. Upgrading an
// older store applies only the DDL steps between the installed generation and
// this one; data is never rewritten for a structural upgrade.
const latestGeneration = 2

// metaKeyGeneration is the store_meta key holding the installed generation.
const metaKeyGeneration = "schema_generation"

// Generation 1: base collections and their indexes.
const (
	createMeta = `CREATE TABLE IF NOT EXISTS store_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createPlaygrounds = `CREATE TABLE playgrounds (
    id TEXT PRIMARY KEY,
    prop_id TEXT NOT NULL,
    playground_id TEXT,
    name TEXT NOT NULL,
    location TEXT,
    accessible TEXT,
    sensory_friendly TEXT,
    lat REAL,
    lon REAL,
    slug TEXT,
    added_date TEXT,
    added_by TEXT,
    modified_date TEXT,
    modified_by TEXT
);`

	createFavorites = `CREATE TABLE favorites (
    favorite_id TEXT PRIMARY KEY,
    playground_ref TEXT NOT NULL,
    added_date TEXT NOT NULL
);`

	createReviews = `CREATE TABLE reviews (
    review_id TEXT PRIMARY KEY,
    playground_prop_id TEXT NOT NULL,
    title TEXT,
    content TEXT,
    rating REAL NOT NULL DEFAULT 0,
    author TEXT NOT NULL,
    date TEXT NOT NULL,
    featured INTEGER NOT NULL DEFAULT 0,
    approved INTEGER NOT NULL DEFAULT 1,
    photos TEXT
);`

	createSettings = `CREATE TABLE settings (
    key TEXT PRIMARY KEY,
    value TEXT
);`

	idxPlaygroundsPropID = `CREATE UNIQUE INDEX idx_playgrounds_prop_id ON playgrounds(prop_id);`
	idxFavoritesRef      = `CREATE INDEX idx_favorites_ref ON favorites(playground_ref);`
	idxReviewsPropID     = `CREATE INDEX idx_reviews_prop_id ON reviews(playground_prop_id);`
)

// Generation 2: the extended-attribute block and record generation tag, plus
// the indexes added for the slug lookups. Column additions are pure ALTERs so
// existing rows survive untouched; the record-level defaulting pass is the
// migration engine's job, not the registry's.
const (
	addSchemaVersion = `ALTER TABLE playgrounds ADD COLUMN schema_version INTEGER;`
	addExtended      = `ALTER TABLE playgrounds ADD COLUMN extended TEXT;`

	idxPlaygroundsSlug = `CREATE INDEX idx_playgrounds_slug ON playgrounds(slug);`
	idxPlaygroundsName = `CREATE INDEX idx_playgrounds_name ON playgrounds(name);`
)

// generationSteps lists the DDL applied when upgrading to each generation,
// indexed by generation number.
var generationSteps = map[int][]string{
	1: {
		createPlaygrounds,
		createFavorites,
		createReviews,
		createSettings,
		idxPlaygroundsPropID,
		idxFavoritesRef,
		idxReviewsPropID,
	},
	2: {
		addSchemaVersion,
		addExtended,
		idxPlaygroundsSlug,
		idxPlaygroundsName,
	},
}

// installedGeneration reads the structural generation recorded in store_meta.
// A fresh database reports generation 0.
func installedGeneration(db *sql.DB) (int, error) {
	if _, err := db.Exec(createMeta); err != nil {
		return 0, fmt.Errorf("ensuring store_meta: %w", err)
	}

	var value string
	err := db.QueryRow(
		"SELECT value FROM store_meta WHERE key = ?", metaKeyGeneration,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading schema generation: %w", err)
	}

	gen, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing schema generation %q: %w", value, err)
	}
	return gen, nil
}

// applyStructural upgrades the database definition from the installed
// generation to latestGeneration, one generation at a time, and records the
// new generation in store_meta. Each generation upgrades inside its own
// transaction.
func applyStructural(db *sql.DB) error {
	installed, err := installedGeneration(db)
	if err != nil {
		return err
	}

	for gen := installed + 1; gen <= latestGeneration; gen++ {
		steps, ok := generationSteps[gen]
		if !ok {
			return fmt.Errorf("no structural steps declared for generation %d", gen)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("beginning generation %d upgrade: %w", gen, err)
		}
		for _, ddl := range steps {
			if _, err := tx.Exec(ddl); err != nil {
				tx.Rollback()
				return fmt.Errorf("applying generation %d step: %w", gen, err)
			}
		}
		if _, err := tx.Exec(
			"INSERT INTO store_meta (key, value) VALUES (?, ?) "+
				"ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			metaKeyGeneration, strconv.Itoa(gen),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording generation %d: %w", gen, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing generation %d upgrade: %w", gen, err)
		}
	}

	return nil
}
