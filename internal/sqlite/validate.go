// This file implements candidate validation. Violations are values, not
// errors: the caller gets an ordered list of human-readable messages and
// decides whether to proceed.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// The serviced metropolitan bounding box. Candidates outside it are flagged
// even when their coordinates are globally valid.
const (
	serviceAreaLatMin = 40.4
	serviceAreaLatMax = 41.0
	serviceAreaLonMin = -74.3
	serviceAreaLonMax = -73.6
)

const violationOutsideServiceArea = "coordinates are outside the serviced metropolitan area"

// Validate checks a candidate playground and returns an ordered list of
// violations. An empty list signals acceptance. The returned error covers
// store access failures only, never a bad candidate.
func (b *Backend) Validate(candidate *types.Playground) ([]string, error) {
	if candidate == nil {
		return nil, types.ErrInvalidData
	}
	db, err := b.ready()
	if err != nil {
		return nil, err
	}

	violations := []string{}

	if candidate.PropID == "" {
		violations = append(violations, "prop ID is required")
	}
	if candidate.Name == "" {
		violations = append(violations, "name is required")
	}

	switch {
	case !candidate.Lat.Valid():
		violations = append(violations, "latitude must be a number")
	case candidate.Lat < -90 || candidate.Lat > 90:
		violations = append(violations, "latitude must be between -90 and 90")
	}
	switch {
	case !candidate.Lon.Valid():
		violations = append(violations, "longitude must be a number")
	case candidate.Lon < -180 || candidate.Lon > 180:
		violations = append(violations, "longitude must be between -180 and 180")
	}

	if candidate.Lat.Valid() && candidate.Lon.Valid() &&
		candidate.Lat >= -90 && candidate.Lat <= 90 &&
		candidate.Lon >= -180 && candidate.Lon <= 180 {
		if float64(candidate.Lat) < serviceAreaLatMin || float64(candidate.Lat) > serviceAreaLatMax ||
			float64(candidate.Lon) < serviceAreaLonMin || float64(candidate.Lon) > serviceAreaLonMax {
			violations = append(violations, violationOutsideServiceArea)
		}
	}

	if candidate.PropID != "" {
		var existingID string
		err := db.QueryRow(
			"SELECT id FROM playgrounds WHERE prop_id = ?", candidate.PropID,
		).Scan(&existingID)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("checking prop ID uniqueness: %w", err)
		}
		// Updating a record against its own prop ID is not a collision.
		if err == nil && existingID != candidate.ID {
			violations = append(violations,
				fmt.Sprintf("prop ID %s is already in use", candidate.PropID))
		}
	}

	return violations, nil
}
