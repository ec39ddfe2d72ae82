// This file implements the typed query and aggregation layer on top of the
// collection accessors: filtered lists, substring search, the favorites join,
// and the statistics views.
package sqlite

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// GetPlaygroundByPropID looks up a playground by business key.
func (b *Backend) GetPlaygroundByPropID(propID string) (*types.Playground, error) {
	if propID == "" {
		return nil, types.ErrInvalidID
	}
	db, err := b.ready()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT "+playgroundColumns+" FROM playgrounds WHERE prop_id = ?", propID,
	)
	p, err := scanPlayground(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting playground by prop ID %s: %w", propID, err)
	}
	return p, nil
}

// allPlaygrounds loads the full collection ordered by name. The criteria
// predicates run in Go so the accessibility normalization and borough
// derivation live in exactly one place.
func (b *Backend) allPlaygrounds() ([]*types.Playground, error) {
	db, err := b.ready()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT " + playgroundColumns + " FROM playgrounds ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("querying playgrounds: %w", err)
	}
	defer rows.Close()

	results := []*types.Playground{}
	for rows.Next() {
		p, err := scanPlayground(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating playground: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating playgrounds: %w", err)
	}
	return results, nil
}

// FilterPlaygrounds returns the playgrounds matching all present criteria.
// Zero-valued criteria fields and the "All" sentinel are no-ops.
func (b *Backend) FilterPlaygrounds(criteria types.FilterCriteria) ([]*types.Playground, error) {
	all, err := b.allPlaygrounds()
	if err != nil {
		return nil, err
	}

	results := []*types.Playground{}
	for _, p := range all {
		if !matchesCriteria(p, criteria) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

// matchesCriteria applies the AND of all present filter criteria.
func matchesCriteria(p *types.Playground, c types.FilterCriteria) bool {
	if c.Borough != "" && c.Borough != types.FilterAll && p.Borough() != c.Borough {
		return false
	}
	if c.Accessible != "" && c.Accessible != types.FilterAll &&
		p.NormalizedAccessible() != c.Accessible {
		return false
	}
	if c.Sensory != nil && p.IsSensoryFriendly() != *c.Sensory {
		return false
	}
	if c.HasBathroom != nil && p.HasBathroom() != *c.HasBathroom {
		return false
	}
	if c.HasAccessibleBathroom != nil && p.HasAccessibleBathroom() != *c.HasAccessibleBathroom {
		return false
	}
	if c.HasSprinkler != nil {
		has := p.HasSprinkler != nil && *p.HasSprinkler
		if has != *c.HasSprinkler {
			return false
		}
	}
	return true
}

// SearchPlaygrounds performs a case-insensitive substring search over name
// and location. An empty term yields an empty result, never an error.
func (b *Backend) SearchPlaygrounds(term string) ([]*types.Playground, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []*types.Playground{}, nil
	}

	all, err := b.allPlaygrounds()
	if err != nil {
		return nil, err
	}

	results := []*types.Playground{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Location), term) {
			results = append(results, p)
		}
	}
	return results, nil
}

// SearchByExtendedInfo filters playgrounds by generation-2 attributes.
// String criteria match the attribute value case-insensitively; a nil age
// bound on either the criteria or the record is unconstrained.
func (b *Backend) SearchByExtendedInfo(criteria types.ExtendedCriteria) ([]*types.Playground, error) {
	all, err := b.allPlaygrounds()
	if err != nil {
		return nil, err
	}

	results := []*types.Playground{}
	for _, p := range all {
		if !matchesExtended(p, criteria) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

func matchesExtended(p *types.Playground, c types.ExtendedCriteria) bool {
	if c.Shade != "" && !strings.EqualFold(p.Shade, c.Shade) {
		return false
	}
	if c.Fenced != "" && !strings.EqualFold(p.Fenced, c.Fenced) {
		return false
	}
	if c.WaterPlay != "" && !strings.EqualFold(p.WaterPlay, c.WaterPlay) {
		return false
	}
	if c.MinStars != nil {
		if p.Star == nil || *p.Star < *c.MinStars {
			return false
		}
	}
	// Age-range overlap: [c.AgeMin, c.AgeMax] must intersect the record's
	// range, with nil bounds unconstrained on either side.
	if c.AgeMin != nil && p.AgeRange.Max != nil && *p.AgeRange.Max < *c.AgeMin {
		return false
	}
	if c.AgeMax != nil && p.AgeRange.Min != nil && *p.AgeRange.Min > *c.AgeMax {
		return false
	}
	return true
}

// SearchReviews performs a case-insensitive substring search over review
// title, content, and author.
func (b *Backend) SearchReviews(term string) ([]*types.Review, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []*types.Review{}, nil
	}

	table, err := b.GetTable(types.ReviewsTable)
	if err != nil {
		return nil, err
	}
	entities, err := table.Fetch(types.Filter{})
	if err != nil {
		return nil, err
	}

	results := []*types.Review{}
	for _, e := range entities {
		r := e.(*types.Review)
		if strings.Contains(strings.ToLower(r.Title), term) ||
			strings.Contains(strings.ToLower(r.Content), term) ||
			strings.Contains(strings.ToLower(r.Author), term) {
			results = append(results, r)
		}
	}
	return results, nil
}

// FavoritesList resolves all favorites to their playground records.
// Favorites referencing a since-deleted playground are silently dropped.
func (b *Backend) FavoritesList() ([]*types.Playground, error) {
	db, err := b.ready()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT " + prefixColumns("p", playgroundColumns) + " FROM favorites f " +
			"INNER JOIN playgrounds p ON p.id = f.playground_ref " +
			"ORDER BY f.added_date ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying favorites join: %w", err)
	}
	defer rows.Close()

	results := []*types.Playground{}
	for rows.Next() {
		p, err := scanPlayground(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating favorite playground: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorites join: %w", err)
	}
	return results, nil
}

// FavoritesForPlayground returns the favorite entries referencing a
// playground business key, oldest first.
func (b *Backend) FavoritesForPlayground(propID string) ([]*types.Favorite, error) {
	db, err := b.ready()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT f.favorite_id, f.playground_ref, f.added_date FROM favorites f "+
			"INNER JOIN playgrounds p ON p.id = f.playground_ref "+
			"WHERE p.prop_id = ? ORDER BY f.added_date ASC",
		propID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying favorites for %s: %w", propID, err)
	}
	defer rows.Close()

	results := []*types.Favorite{}
	for rows.Next() {
		var f types.Favorite
		if err := rows.Scan(&f.FavoriteID, &f.PlaygroundRef, &f.AddedDate); err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		results = append(results, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorites for %s: %w", propID, err)
	}
	return results, nil
}

// prefixColumns qualifies each column in a comma-separated list with a table
// alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, c := range parts {
		parts[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}

// ReviewsForPlayground returns the reviews for a playground business key,
// newest first. Unknown prop IDs yield an empty result.
func (b *Backend) ReviewsForPlayground(propID string) ([]*types.Review, error) {
	table, err := b.GetTable(types.ReviewsTable)
	if err != nil {
		return nil, err
	}
	entities, err := table.Fetch(types.Filter{"playground_prop_id": propID})
	if err != nil {
		return nil, err
	}

	results := make([]*types.Review, len(entities))
	for i, e := range entities {
		results[i] = e.(*types.Review)
	}
	return results, nil
}

// Stats summarizes the playground collection.
func (b *Backend) Stats() (types.Stats, error) {
	all, err := b.allPlaygrounds()
	if err != nil {
		return types.Stats{}, err
	}

	s := types.Stats{Total: len(all)}
	for _, p := range all {
		if p.NormalizedAccessible() == types.AccessibleYes {
			s.Accessible++
		}
		if p.IsSensoryFriendly() {
			s.SensoryFriendly++
		}
	}
	s.AccessiblePercent = percent(s.Accessible, s.Total)
	s.SensoryPercent = percent(s.SensoryFriendly, s.Total)
	return s, nil
}

// ReviewStats summarizes the review collection. The average rating covers
// approved reviews only, rounded to one decimal place.
func (b *Backend) ReviewStats() (types.ReviewStats, error) {
	db, err := b.ready()
	if err != nil {
		return types.ReviewStats{}, err
	}

	var s types.ReviewStats
	err = db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(approved), 0), COALESCE(SUM(featured), 0) FROM reviews",
	).Scan(&s.Total, &s.Approved, &s.Featured)
	if err != nil {
		return types.ReviewStats{}, fmt.Errorf("counting reviews: %w", err)
	}
	s.Pending = s.Total - s.Approved

	var avg sql.NullFloat64
	err = db.QueryRow("SELECT AVG(rating) FROM reviews WHERE approved = 1").Scan(&avg)
	if err != nil {
		return types.ReviewStats{}, fmt.Errorf("averaging ratings: %w", err)
	}
	if avg.Valid {
		s.AverageRating = math.Round(avg.Float64*10) / 10
	}
	return s, nil
}

// PlaygroundStats extends Stats with the count of playgrounds that have at
// least one review.
func (b *Backend) PlaygroundStats() (types.PlaygroundStats, error) {
	base, err := b.Stats()
	if err != nil {
		return types.PlaygroundStats{}, err
	}

	db, err := b.ready()
	if err != nil {
		return types.PlaygroundStats{}, err
	}

	s := types.PlaygroundStats{Stats: base}
	err = db.QueryRow(
		"SELECT COUNT(*) FROM playgrounds p WHERE EXISTS " +
			"(SELECT 1 FROM reviews r WHERE r.playground_prop_id = p.prop_id)",
	).Scan(&s.WithReviews)
	if err != nil {
		return types.PlaygroundStats{}, fmt.Errorf("counting reviewed playgrounds: %w", err)
	}
	s.WithReviewsPercent = percent(s.WithReviews, s.Total)
	return s, nil
}

// percent computes a percentage rounded to the nearest integer, 0 when the
// total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
