// Tests for the collection accessors: CRUD, creation defaults, and the
// cascade rules on playground delete.
package sqlite

import (
	"testing"

	"github.com/fieldday-labs/swingset/pkg/types"
)

func TestPlaygroundsTable_CRUD(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	table, err := b.GetTable(types.PlaygroundsTable)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}

	// Create
	p := &types.Playground{
		PropID:     "X500",
		Name:       "Crotona Play Area",
		Accessible: "Yes",
		Lat:        types.Coord(40.84),
		Lon:        types.Coord(-73.89),
	}
	id, err := table.Set("", p)
	if err != nil {
		t.Fatalf("Set (create) failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	// Creation merges the default template.
	if p.AddedDate == "" {
		t.Error("expected AddedDate to be stamped")
	}
	if p.PlaygroundID != "X500" {
		t.Errorf("expected PlaygroundID to default to prop ID, got %q", p.PlaygroundID)
	}
	if p.SchemaVersion != types.LatestSchemaVersion {
		t.Errorf("expected schema version %d, got %d", types.LatestSchemaVersion, p.SchemaVersion)
	}
	if p.Shade != "unknown" {
		t.Errorf("expected default shade, got %q", p.Shade)
	}

	// Read
	got, err := table.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	read := got.(*types.Playground)
	if read.Name != "Crotona Play Area" {
		t.Errorf("expected name to round-trip, got %q", read.Name)
	}

	// Update stamps ModifiedDate.
	read.Name = "Crotona Playground"
	if _, err := table.Set(id, read); err != nil {
		t.Fatalf("Set (update) failed: %v", err)
	}
	if read.ModifiedDate == "" {
		t.Error("expected ModifiedDate to be stamped on update")
	}

	got, err = table.Get(id)
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if got.(*types.Playground).Name != "Crotona Playground" {
		t.Errorf("expected updated name, got %q", got.(*types.Playground).Name)
	}

	// Delete
	if err := table.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := table.Get(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPlaygroundsTable_SetRejectsBadData(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	table, _ := b.GetTable(types.PlaygroundsTable)

	if _, err := table.Set("", "not a playground"); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for wrong type, got %v", err)
	}
	if _, err := table.Set("", &types.Playground{Name: "No Prop"}); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for missing prop ID, got %v", err)
	}
	if _, err := table.Set("", &types.Playground{PropID: "B9"}); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for missing name, got %v", err)
	}
	if _, err := table.Set("missing-id", &types.Playground{PropID: "B9", Name: "X"}); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown update id, got %v", err)
	}
}

func TestPlaygroundsTable_DeleteCascadesReviews(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	playgrounds, _ := b.GetTable(types.PlaygroundsTable)
	reviews, _ := b.GetTable(types.ReviewsTable)

	p, err := b.GetPlaygroundByPropID("B001")
	if err != nil {
		t.Fatalf("GetPlaygroundByPropID failed: %v", err)
	}

	reviewID, err := reviews.Set("", &types.Review{
		PlaygroundPropID: "B001",
		Title:            "Shady and clean",
		Rating:           4,
	})
	if err != nil {
		t.Fatalf("adding review: %v", err)
	}

	if err := playgrounds.Delete(p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := reviews.Get(reviewID); err != types.ErrNotFound {
		t.Errorf("expected review to cascade with playground, got %v", err)
	}
}

func TestPlaygroundsTable_DeleteLeavesFavoritesByDefault(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	playgrounds, _ := b.GetTable(types.PlaygroundsTable)
	favorites, _ := b.GetTable(types.FavoritesTable)

	p, _ := b.GetPlaygroundByPropID("M042")
	favID, err := favorites.Set("", &types.Favorite{PlaygroundRef: p.ID})
	if err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	if err := playgrounds.Delete(p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Default behavior: the favorite is left dangling.
	if _, err := favorites.Get(favID); err != nil {
		t.Errorf("expected favorite to survive playground delete, got %v", err)
	}

	// The dangling reference is dropped by the resolving reader.
	resolved, err := b.FavoritesList()
	if err != nil {
		t.Fatalf("FavoritesList failed: %v", err)
	}
	for _, fp := range resolved {
		if fp.PropID == "M042" {
			t.Error("expected dangling favorite to be dropped from the list")
		}
	}
}

func TestPlaygroundsTable_DeleteCascadesFavoritesWhenConfigured(t *testing.T) {
	b := NewBackend()
	config := types.Config{
		Backend:          types.BackendSQLite,
		DataDir:          t.TempDir(),
		Dataset:          sampleDataset(),
		CascadeFavorites: true,
	}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	playgrounds, _ := b.GetTable(types.PlaygroundsTable)
	favorites, _ := b.GetTable(types.FavoritesTable)

	p, _ := b.GetPlaygroundByPropID("M042")
	favID, err := favorites.Set("", &types.Favorite{PlaygroundRef: p.ID})
	if err != nil {
		t.Fatalf("adding favorite: %v", err)
	}

	if err := playgrounds.Delete(p.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := favorites.Get(favID); err != types.ErrNotFound {
		t.Errorf("expected favorite to cascade, got %v", err)
	}
}

func TestReviewsTable_CreationDefaults(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	reviews, _ := b.GetTable(types.ReviewsTable)

	r := &types.Review{PlaygroundPropID: "B001", Title: "Fun", Rating: 5}
	id, err := reviews.Set("", r)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := reviews.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	read := got.(*types.Review)
	if read.Author != types.ReviewAuthorAnonymous {
		t.Errorf("expected anonymous author default, got %q", read.Author)
	}
	if read.Date == "" {
		t.Error("expected date to be stamped")
	}
	if read.Photos == nil {
		t.Error("expected photos to be an empty list, not nil")
	}
	if read.Approved == nil || !*read.Approved {
		t.Error("expected new review to default to approved")
	}
}

func TestReviewsTable_ExplicitPendingSurvivesCreation(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	reviews, _ := b.GetTable(types.ReviewsTable)

	id, err := reviews.Set("", &types.Review{
		PlaygroundPropID: "B001",
		Title:            "Awaiting moderation",
		Rating:           2,
		Approved:         boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := reviews.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got.(*types.Review).Approved {
		t.Error("expected explicit false to override the approved default")
	}
}

func TestReviewsTable_FetchFilters(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	reviews, _ := b.GetTable(types.ReviewsTable)

	seed := []*types.Review{
		{PlaygroundPropID: "B001", Title: "A", Rating: 5},
		{PlaygroundPropID: "B001", Title: "B", Rating: 3, Approved: boolPtr(false)},
		{PlaygroundPropID: "M042", Title: "C", Rating: 4, Featured: true},
	}
	for _, r := range seed {
		if _, err := reviews.Set("", r); err != nil {
			t.Fatalf("seeding review: %v", err)
		}
	}

	got, err := reviews.Fetch(types.Filter{"playground_prop_id": "B001"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 reviews for B001, got %d", len(got))
	}

	got, err = reviews.Fetch(types.Filter{"approved": true})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 approved reviews, got %d", len(got))
	}

	got, err = reviews.Fetch(types.Filter{"featured": true})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 featured review, got %d", len(got))
	}

	if _, err := reviews.Fetch(types.Filter{"approved": "yes"}); err != types.ErrInvalidFilter {
		t.Errorf("expected ErrInvalidFilter for wrong value type, got %v", err)
	}
}

func TestSettingsTable_Upsert(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	settings, _ := b.GetTable(types.SettingsTable)

	if _, err := settings.Set("", &types.Setting{Key: "theme", Value: "dark"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Same key overwrites.
	if _, err := settings.Set("theme", &types.Setting{Key: "theme", Value: "light"}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := settings.Get("theme")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.(*types.Setting).Value != "light" {
		t.Errorf("expected upserted value, got %q", got.(*types.Setting).Value)
	}

	// Id and key must agree.
	if _, err := settings.Set("theme", &types.Setting{Key: "other"}); err != types.ErrInvalidID {
		t.Errorf("expected ErrInvalidID on key mismatch, got %v", err)
	}

	if err := settings.Delete("theme"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := settings.Get("theme"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSettingsTypedAccessors(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	if err := b.PutSetting(&types.Setting{Key: "map_style", Value: "satellite"}); err != nil {
		t.Fatalf("PutSetting failed: %v", err)
	}

	got, err := b.GetSetting("map_style")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if got.Value != "satellite" {
		t.Errorf("expected satellite, got %q", got.Value)
	}

	// Same key overwrites.
	if err := b.PutSetting(&types.Setting{Key: "map_style", Value: "terrain"}); err != nil {
		t.Fatalf("PutSetting upsert failed: %v", err)
	}
	got, err = b.GetSetting("map_style")
	if err != nil {
		t.Fatalf("GetSetting after upsert failed: %v", err)
	}
	if got.Value != "terrain" {
		t.Errorf("expected upserted value, got %q", got.Value)
	}

	if _, err := b.GetSetting("no-such-key"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown key, got %v", err)
	}
	if err := b.PutSetting(nil); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for nil setting, got %v", err)
	}
	if err := b.PutSetting(&types.Setting{Value: "orphan"}); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for empty key, got %v", err)
	}
}

func TestFavoritesTable_DuplicatesAllowed(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	favorites, _ := b.GetTable(types.FavoritesTable)
	p, _ := b.GetPlaygroundByPropID("Q310")

	for i := 0; i < 2; i++ {
		if _, err := favorites.Set("", &types.Favorite{PlaygroundRef: p.ID}); err != nil {
			t.Fatalf("adding favorite: %v", err)
		}
	}

	got, err := favorites.Fetch(types.Filter{"playground_ref": p.ID})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected duplicate favorites to be stored, got %d", len(got))
	}
}
