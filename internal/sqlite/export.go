// This file implements the import/export escape hatches around the store:
// JSON snapshot export, snapshot import, and the partial reset.
package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// ExportAll produces a pretty-printed JSON array of the full playground
// collection, ordered by prop ID so the snapshot is byte-for-byte
// reproducible from the same store state.
func (b *Backend) ExportAll() ([]byte, error) {
	db, err := b.ready()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + playgroundColumns + " FROM playgrounds ORDER BY prop_id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying playgrounds for export: %w", err)
	}
	defer rows.Close()

	records := []*types.Playground{}
	for rows.Next() {
		p, err := scanPlayground(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating playground for export: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating playgrounds for export: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling export snapshot: %w", err)
	}
	return data, nil
}

// ImportAll clears all four collections and re-runs the initialization path
// with the snapshot records as the source dataset. Surrogate ids are
// reassigned; business keys and field values round-trip.
func (b *Backend) ImportAll(snapshot []byte) error {
	var records []*types.Playground
	if err := json.Unmarshal(snapshot, &records); err != nil {
		return fmt.Errorf("parsing import snapshot: %w", err)
	}

	db, err := b.ready()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"playgrounds", "favorites", "reviews", "settings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s for import: %w", table, err)
		}
	}

	for _, p := range records {
		if p.PropID == "" {
			continue
		}
		p.ID = generateID()
		if p.PlaygroundID == "" {
			p.PlaygroundID = p.PropID
		}
		p.FillDefaults()
		p.SchemaVersion = types.LatestSchemaVersion
		if err := insertPlayground(tx, p); err != nil {
			return fmt.Errorf("importing playground %s: %w", p.PropID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// ResetAll clears playgrounds, favorites, and settings. Reviews survive the
// reset; the asymmetry is inherited from the source design and preserved
// deliberately.
func (b *Backend) ResetAll() error {
	db, err := b.ready()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning reset transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"playgrounds", "favorites", "settings"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s for reset: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}
	return nil
}

// Compile-time check that Backend satisfies the full Store surface.
var _ types.Store = (*Backend)(nil)
