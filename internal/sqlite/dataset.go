// This file converts source-dataset records into stored playground records
// and bulk-inserts them on first open and after a drift reload.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// datasetImporter is the provenance stamp for records created from the
// source dataset.
const datasetImporter = "dataset-import"

// playgroundFromSource builds a full playground record from one dataset
// record: the complete default template merged with the supplied fields, so
// the record satisfies the all-fields-present invariant from creation.
func playgroundFromSource(src types.SourcePlayground, now time.Time) *types.Playground {
	p := &types.Playground{
		ID:              generateID(),
		PropID:          src.PropID,
		PlaygroundID:    src.PlaygroundID,
		Name:            src.Name,
		Location:        src.Location,
		Accessible:      src.Accessible,
		SensoryFriendly: src.SensoryFriendly,
		Lat:             src.Lat,
		Lon:             src.Lon,
		Extended:        types.NewExtended(),
		AddedDate:       now.UTC().Format(time.RFC3339),
		AddedBy:         datasetImporter,
		SchemaVersion:   types.LatestSchemaVersion,
	}
	if p.PlaygroundID == "" {
		p.PlaygroundID = p.PropID
	}

	// Sprinkler enrichment carries over when the merge pipeline has run.
	p.HasSprinkler = src.HasSprinkler
	p.SprinklerStatus = src.SprinklerStatus
	p.SprinklerSystem = src.SprinklerSystem
	p.SprinklerDistrict = src.SprinklerDistrict

	return p
}

// bulkInsertDataset inserts every dataset record inside one transaction.
// Records without a prop ID are skipped; a duplicate prop ID fails the whole
// load and propagates to the caller.
func bulkInsertDataset(db *sql.DB, dataset []types.SourcePlayground) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning bulk insert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, src := range dataset {
		if src.PropID == "" {
			continue
		}
		p := playgroundFromSource(src, now)
		if err := insertPlayground(tx, p); err != nil {
			return fmt.Errorf("inserting playground %s: %w", p.PropID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing bulk insert: %w", err)
	}
	return nil
}
