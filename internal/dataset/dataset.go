// Package dataset loads and enriches the external source dataset consumed by
// the store: reading the city open-data playground file, reading the
// sprinkler file, and writing merged output atomically.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// ReadPlaygrounds parses a source dataset file: a JSON array of playground
// objects in the city open-data shape.
func ReadPlaygrounds(path string) ([]types.SourcePlayground, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	var records []types.SourcePlayground
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return records, nil
}

// SprinklerRecord is one row of the sprinkler source file.
type SprinklerRecord struct {
	SubPropertyName string `json:"subpropertyname"`
	Status          string `json:"status"`
	System          string `json:"system"`
	District        string `json:"district"`
	FeatureType     string `json:"featuretype"`
}

// ReadSprinklers parses a sprinkler source file: a JSON array of sprinkler
// records.
func ReadSprinklers(path string) ([]SprinklerRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sprinklers %s: %w", path, err)
	}

	var records []SprinklerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing sprinklers %s: %w", path, err)
	}
	return records, nil
}

// WritePlaygrounds writes a dataset as pretty-printed JSON using the
// temp-file, fsync, rename pattern so a crash never leaves a partial file.
func WritePlaygrounds(path string, records []types.SourcePlayground) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}
	return WriteFileAtomic(path, append(data, '\n'))
}

// WriteFileAtomic writes data to path via a temp file in the same directory,
// fsync, and rename.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming snapshot: %w", err)
	}
	return nil
}
