// Tests for export, import, and the partial reset.
package sqlite

import (
	"encoding/json"
	"testing"

	"github.com/fieldday-labs/swingset/pkg/types"
)

func TestExportAll(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	snapshot, err := b.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	var records []types.Playground
	if err := json.Unmarshal(snapshot, &records); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 exported records, got %d", len(records))
	}
	// Ordered by prop ID for reproducible snapshots.
	if records[0].PropID != "B001" || records[1].PropID != "M042" || records[2].PropID != "Q310" {
		t.Errorf("expected prop ID order, got %s, %s, %s",
			records[0].PropID, records[1].PropID, records[2].PropID)
	}
	// Extended attributes appear flat in the snapshot.
	var raw []map[string]any
	if err := json.Unmarshal(snapshot, &raw); err != nil {
		t.Fatalf("unmarshaling raw export: %v", err)
	}
	if _, ok := raw[0]["bathroom"]; !ok {
		t.Error("expected flat extended attributes in export")
	}
}

func TestImportRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	b := attachTest(t, tmpDir)
	defer b.Detach()

	// Enrich a record so the round trip covers extended fields.
	table, _ := b.GetTable(types.PlaygroundsTable)
	p, _ := b.GetPlaygroundByPropID("B001")
	p.Shade = "partial"
	p.Star = floatPtr(4.0)
	if _, err := table.Set(p.ID, p); err != nil {
		t.Fatalf("updating playground: %v", err)
	}

	snapshot, err := b.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}

	if err := b.ImportAll(snapshot); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	got, err := b.GetPlaygroundByPropID("B001")
	if err != nil {
		t.Fatalf("GetPlaygroundByPropID after import failed: %v", err)
	}
	if got.Shade != "partial" {
		t.Errorf("expected extended field to round-trip, got shade=%q", got.Shade)
	}
	if got.Star == nil || *got.Star != 4.0 {
		t.Errorf("expected star rating to round-trip, got %v", got.Star)
	}
	// Surrogate ids are reassigned on import.
	if got.ID == p.ID {
		t.Error("expected import to reassign surrogate ids")
	}

	stats, err := b.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected 3 records after round trip, got %d", stats.Total)
	}
}

func TestImportAll_ClearsAllCollections(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	favorites, _ := b.GetTable(types.FavoritesTable)
	reviews, _ := b.GetTable(types.ReviewsTable)
	settings, _ := b.GetTable(types.SettingsTable)

	p, _ := b.GetPlaygroundByPropID("B001")
	favID, _ := favorites.Set("", &types.Favorite{PlaygroundRef: p.ID})
	reviewID, _ := reviews.Set("", &types.Review{PlaygroundPropID: "B001", Rating: 5})
	settings.Set("", &types.Setting{Key: "theme", Value: "dark"})

	snapshot, err := b.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll failed: %v", err)
	}
	if err := b.ImportAll(snapshot); err != nil {
		t.Fatalf("ImportAll failed: %v", err)
	}

	if _, err := favorites.Get(favID); err != types.ErrNotFound {
		t.Errorf("expected favorites cleared on import, got %v", err)
	}
	if _, err := reviews.Get(reviewID); err != types.ErrNotFound {
		t.Errorf("expected reviews cleared on import, got %v", err)
	}
	if _, err := settings.Get("theme"); err != types.ErrNotFound {
		t.Errorf("expected settings cleared on import, got %v", err)
	}
}

func TestImportAll_RejectsMalformedSnapshot(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	if err := b.ImportAll([]byte("{not json")); err == nil {
		t.Error("expected error for malformed snapshot")
	}

	// The failed import must not have destroyed the store.
	stats, err := b.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("expected store to survive failed import, got %d records", stats.Total)
	}
}

func TestResetAll_KeepsReviews(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	favorites, _ := b.GetTable(types.FavoritesTable)
	reviews, _ := b.GetTable(types.ReviewsTable)
	settings, _ := b.GetTable(types.SettingsTable)

	p, _ := b.GetPlaygroundByPropID("B001")
	favID, _ := favorites.Set("", &types.Favorite{PlaygroundRef: p.ID})
	reviewID, _ := reviews.Set("", &types.Review{PlaygroundPropID: "B001", Rating: 5})
	settings.Set("", &types.Setting{Key: "theme", Value: "dark"})

	if err := b.ResetAll(); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}

	stats, err := b.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("expected playgrounds cleared, got %d", stats.Total)
	}
	if _, err := favorites.Get(favID); err != types.ErrNotFound {
		t.Errorf("expected favorites cleared, got %v", err)
	}
	if _, err := settings.Get("theme"); err != types.ErrNotFound {
		t.Errorf("expected settings cleared, got %v", err)
	}
	// Reviews survive the reset.
	if _, err := reviews.Get(reviewID); err != nil {
		t.Errorf("expected reviews to survive reset, got %v", err)
	}
}
