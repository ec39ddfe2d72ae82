// Package integration tests the SQLite backend through the public Store and
// Table interfaces: the full Attach → query → mutate → Detach lifecycle,
// persistence across reopens, and the import/export/reset escape hatches.
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldday-labs/swingset/pkg/sqlite"
	"github.com/fieldday-labs/swingset/pkg/types"
)

// testDataset is the shared seed dataset for the lifecycle tests.
func testDataset() []types.SourcePlayground {
	return []types.SourcePlayground{
		{
			PropID:          "B111",
			Name:            "McCarren Play Area",
			Location:        "Bedford Ave",
			Accessible:      "Yes",
			SensoryFriendly: "N",
			Lat:             types.Coord(40.720),
			Lon:             types.Coord(-73.952),
		},
		{
			PropID:          "M222",
			Name:            "Bleecker Playground",
			Location:        "Bleecker St & Hudson St",
			Accessible:      "Not Accessible",
			SensoryFriendly: "Y",
			Lat:             types.Coord(40.737),
			Lon:             types.Coord(-74.006),
		},
	}
}

// newTestStore attaches a store over dir seeded with the test dataset.
func newTestStore(t *testing.T, dir string) types.Store {
	t.Helper()
	store := sqlite.NewBackend()
	err := store.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dir,
		Dataset: testDataset(),
	})
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return store
}

func TestStoreLifecycle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new-data")
	store := newTestStore(t, dir)
	defer store.Detach()

	// Attach created the data directory and the database file.
	if _, err := os.Stat(filepath.Join(dir, "swingset.db")); err != nil {
		t.Errorf("missing database file: %v", err)
	}

	// The empty store was seeded from the dataset.
	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("expected 2 seeded playgrounds, got %d", stats.Total)
	}

	// Lookup, filter, and search all see the seeded records.
	p, err := store.GetPlaygroundByPropID("B111")
	if err != nil {
		t.Fatalf("GetPlaygroundByPropID: %v", err)
	}
	if p.Borough() != "Brooklyn" {
		t.Errorf("expected Brooklyn, got %s", p.Borough())
	}

	brooklyn, err := store.FilterPlaygrounds(types.FilterCriteria{Borough: "Brooklyn"})
	if err != nil {
		t.Fatalf("FilterPlaygrounds: %v", err)
	}
	if len(brooklyn) != 1 || brooklyn[0].PropID != "B111" {
		t.Errorf("expected B111 in Brooklyn, got %v", brooklyn)
	}

	found, err := store.SearchPlaygrounds("bleecker")
	if err != nil {
		t.Fatalf("SearchPlaygrounds: %v", err)
	}
	if len(found) != 1 || found[0].PropID != "M222" {
		t.Errorf("expected M222 by search, got %v", found)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store := newTestStore(t, dir)
	if err := store.PutSetting(&types.Setting{Key: "map_style", Value: "satellite"}); err != nil {
		t.Fatalf("PutSetting: %v", err)
	}
	if err := store.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	reopened := newTestStore(t, dir)
	defer reopened.Detach()

	got, err := reopened.GetSetting("map_style")
	if err != nil {
		t.Fatalf("GetSetting after reopen: %v", err)
	}
	if got.Value != "satellite" {
		t.Errorf("expected persisted setting, got %q", got.Value)
	}
}

func TestFavoriteAndReviewFlow(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer store.Detach()

	p, err := store.GetPlaygroundByPropID("B111")
	if err != nil {
		t.Fatalf("GetPlaygroundByPropID: %v", err)
	}

	favorites, err := store.GetTable(types.FavoritesTable)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	if _, err := favorites.Set("", &types.Favorite{PlaygroundRef: p.ID}); err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	list, err := store.FavoritesList()
	if err != nil {
		t.Fatalf("FavoritesList: %v", err)
	}
	if len(list) != 1 || list[0].PropID != "B111" {
		t.Errorf("expected favorite to resolve to B111, got %v", list)
	}

	reviews, err := store.GetTable(types.ReviewsTable)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	if _, err := reviews.Set("", &types.Review{
		PlaygroundPropID: "B111",
		Title:            "Weekend visit",
		Content:          "Clean equipment and good shade",
		Rating:           4,
	}); err != nil {
		t.Fatalf("adding review: %v", err)
	}

	got, err := store.ReviewsForPlayground("B111")
	if err != nil {
		t.Fatalf("ReviewsForPlayground: %v", err)
	}
	if len(got) != 1 || got[0].Author != types.ReviewAuthorAnonymous {
		t.Errorf("expected one anonymous review, got %v", got)
	}
	if got[0].Approved == nil || !*got[0].Approved {
		t.Error("expected new review to default to approved")
	}

	rstats, err := store.ReviewStats()
	if err != nil {
		t.Fatalf("ReviewStats: %v", err)
	}
	if rstats.Total != 1 || rstats.Approved != 1 || rstats.AverageRating != 4 {
		t.Errorf("unexpected review stats: %+v", rstats)
	}
}

func TestExportImportReset(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer store.Detach()

	snapshot, err := store.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(snapshot, &records); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 exported records, got %d", len(records))
	}

	if err := store.ImportAll(snapshot); err != nil {
		t.Fatalf("ImportAll: %v", err)
	}
	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("expected 2 records after import, got %d", stats.Total)
	}

	// Reviews survive a reset; everything else clears.
	reviews, err := store.GetTable(types.ReviewsTable)
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	reviewID, err := reviews.Set("", &types.Review{PlaygroundPropID: "B111", Rating: 5})
	if err != nil {
		t.Fatalf("adding review: %v", err)
	}

	if err := store.ResetAll(); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats after reset: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("expected empty playground collection after reset, got %d", stats.Total)
	}
	if _, err := reviews.Get(reviewID); err != nil {
		t.Errorf("expected review to survive reset, got %v", err)
	}
}

func TestValidateThroughPublicAPI(t *testing.T) {
	store := newTestStore(t, t.TempDir())
	defer store.Detach()

	violations, err := store.Validate(&types.Playground{
		Name: "Missing Prop",
		Lat:  types.Coord(51.5), // London: outside the service area
		Lon:  types.Coord(-0.12),
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(violations) != 2 {
		t.Errorf("expected prop ID and service-area violations, got %v", violations)
	}
}
