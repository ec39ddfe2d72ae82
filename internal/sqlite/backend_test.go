// Tests for the backend lifecycle: attach, detach, table routing, and the
// one-shot structural recovery.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// sampleDataset returns a small source dataset covering three boroughs.
func sampleDataset() []types.SourcePlayground {
	return []types.SourcePlayground{
		{
			PropID:          "B001",
			Name:            "Domino Park Playground",
			Location:        "River St & S 2nd St",
			Accessible:      "Yes",
			SensoryFriendly: "N",
			Lat:             types.Coord(40.714),
			Lon:             types.Coord(-73.967),
		},
		{
			PropID:          "M042",
			Name:            "Heckscher Playground",
			Location:        "Central Park",
			Accessible:      "Not Accessible",
			SensoryFriendly: "Y",
			Lat:             types.Coord(40.769),
			Lon:             types.Coord(-73.977),
		},
		{
			PropID:          "Q310",
			Name:            "Astoria Heights Playground",
			Location:        "30th Rd & 45th St",
			Accessible:      "Limited",
			SensoryFriendly: "N",
			Lat:             types.Coord(40.765),
			Lon:             types.Coord(-73.906),
		},
	}
}

// attachTest attaches a fresh backend over tmpDir with the sample dataset.
func attachTest(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dir,
		Dataset: sampleDataset(),
	}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Verify database file created
	dbPath := filepath.Join(tmpDir, DatabaseFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", DatabaseFileName)
	}

	// Verify double attach fails
	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachValidatesConfig(t *testing.T) {
	b := NewBackend()

	err := b.Attach(types.Config{DataDir: t.TempDir()})
	if err != types.ErrBackendEmpty {
		t.Errorf("expected ErrBackendEmpty, got %v", err)
	}

	err = b.Attach(types.Config{Backend: "leveldb", DataDir: t.TempDir()})
	if err != types.ErrBackendUnknown {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	b := attachTest(t, t.TempDir())

	err := b.Detach()
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Verify idempotent
	err = b.Detach()
	if err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	// Verify operations fail after detach
	_, err = b.GetTable(types.PlaygroundsTable)
	if err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
	_, err = b.GetPlaygroundByPropID("B001")
	if err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
}

func TestBackend_GetTable(t *testing.T) {
	b := attachTest(t, t.TempDir())
	defer b.Detach()

	tables := []string{
		types.PlaygroundsTable,
		types.FavoritesTable,
		types.ReviewsTable,
		types.SettingsTable,
	}

	for _, name := range tables {
		tbl, err := b.GetTable(name)
		if err != nil {
			t.Errorf("GetTable(%q) failed: %v", name, err)
		}
		if tbl == nil {
			t.Errorf("GetTable(%q) returned nil", name)
		}
	}

	// Unknown table
	_, err := b.GetTable("unknown")
	if err != types.ErrTableNotFound {
		t.Errorf("expected ErrTableNotFound for unknown table, got %v", err)
	}
}

func TestBackend_StructuralRecovery(t *testing.T) {
	tmpDir := t.TempDir()

	// A file that is not a SQLite database makes the structural open fail.
	dbPath := filepath.Join(tmpDir, DatabaseFileName)
	if err := os.WriteFile(dbPath, []byte("this is not a database"), 0o644); err != nil {
		t.Fatalf("writing garbage db: %v", err)
	}

	b := attachTest(t, tmpDir)
	defer b.Detach()

	// Recovery recreated the store and seeded it from the dataset.
	stats, err := b.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != len(sampleDataset()) {
		t.Errorf("expected %d playgrounds after recovery, got %d", len(sampleDataset()), stats.Total)
	}
}

func TestBackend_ReattachPersists(t *testing.T) {
	tmpDir := t.TempDir()

	b := attachTest(t, tmpDir)
	p, err := b.GetPlaygroundByPropID("B001")
	if err != nil {
		t.Fatalf("GetPlaygroundByPropID failed: %v", err)
	}
	firstID := p.ID
	b.Detach()

	// A second attach over the same directory must see the same records.
	b2 := attachTest(t, tmpDir)
	defer b2.Detach()

	p2, err := b2.GetPlaygroundByPropID("B001")
	if err != nil {
		t.Fatalf("GetPlaygroundByPropID after reattach failed: %v", err)
	}
	if p2.ID != firstID {
		t.Errorf("expected surrogate id %s to persist, got %s", firstID, p2.ID)
	}
}
