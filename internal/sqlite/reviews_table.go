// This file implements the reviews collection accessor. Creation fills the
// review defaults (anonymous author, current date, approved); deletion is
// individual here, with the owning-playground cascade handled by the
// playgrounds accessor.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var _ types.Table = (*reviewsTable)(nil)

type reviewsTable struct {
	backend *Backend
}

const reviewColumns = "review_id, playground_prop_id, title, content, rating, " +
	"author, date, featured, approved, photos"

func (rt *reviewsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := rt.backend.ready()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT "+reviewColumns+" FROM reviews WHERE review_id = ?", id)
	r, err := scanReview(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting review %s: %w", id, err)
	}
	return r, nil
}

// Set persists a review. Creation applies the review defaults: author
// "Anonymous", date now, approved true, empty photo list. A nil Approved
// takes the approved default; pass an explicit false to store a pending
// review.
func (rt *reviewsTable) Set(id string, data any) (string, error) {
	r, ok := data.(*types.Review)
	if !ok {
		return "", types.ErrInvalidData
	}
	if r.PlaygroundPropID == "" {
		return "", types.ErrInvalidData
	}
	if r.Approved == nil {
		approved := true
		r.Approved = &approved
	}
	db, err := rt.backend.ready()
	if err != nil {
		return "", err
	}

	if id == "" {
		r.ReviewID = generateID()
		if r.Author == "" {
			r.Author = types.ReviewAuthorAnonymous
		}
		if r.Date == "" {
			r.Date = time.Now().UTC().Format(time.RFC3339)
		}
		if r.Photos == nil {
			r.Photos = []string{}
		}

		photos, err := json.Marshal(r.Photos)
		if err != nil {
			return "", fmt.Errorf("marshaling photos: %w", err)
		}
		_, err = db.Exec(
			"INSERT INTO reviews ("+reviewColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			r.ReviewID, r.PlaygroundPropID, r.Title, r.Content, r.Rating,
			r.Author, r.Date, boolInt(r.Featured), boolInt(*r.Approved), string(photos),
		)
		if err != nil {
			return "", fmt.Errorf("inserting review: %w", err)
		}
		return r.ReviewID, nil
	}

	photos, err := json.Marshal(r.Photos)
	if err != nil {
		return "", fmt.Errorf("marshaling photos: %w", err)
	}
	res, err := db.Exec(
		"UPDATE reviews SET playground_prop_id = ?, title = ?, content = ?, "+
			"rating = ?, author = ?, date = ?, featured = ?, approved = ?, photos = ? "+
			"WHERE review_id = ?",
		r.PlaygroundPropID, r.Title, r.Content, r.Rating, r.Author, r.Date,
		boolInt(r.Featured), boolInt(*r.Approved), string(photos), id,
	)
	if err != nil {
		return "", fmt.Errorf("updating review %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("updating review %s: %w", id, err)
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	r.ReviewID = id
	return id, nil
}

func (rt *reviewsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := rt.backend.ready()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM reviews WHERE review_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting review %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting review %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns reviews, newest first. Supported filter keys:
// "playground_prop_id", "approved", "featured".
func (rt *reviewsTable) Fetch(filter types.Filter) ([]any, error) {
	db, err := rt.backend.ready()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + reviewColumns + " FROM reviews"
	var conditions []string
	var args []any

	if v, ok := filter["playground_prop_id"]; ok {
		propID, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "playground_prop_id = ?")
		args = append(args, propID)
	}
	for _, key := range []string{"approved", "featured"} {
		if v, ok := filter[key]; ok {
			flag, ok := v.(bool)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, key+" = ?")
			args = append(args, boolInt(flag))
		}
	}

	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY date DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching reviews: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating review: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reviews: %w", err)
	}
	return results, nil
}

func (rt *reviewsTable) Clear() error {
	db, err := rt.backend.ready()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM reviews"); err != nil {
		return fmt.Errorf("clearing reviews: %w", err)
	}
	return nil
}

// scanReview hydrates one row into a *types.Review.
func scanReview(row rowScanner) (*types.Review, error) {
	var r types.Review
	var title, content, photos sql.NullString
	var featured, approved int

	err := row.Scan(
		&r.ReviewID, &r.PlaygroundPropID, &title, &content, &r.Rating,
		&r.Author, &r.Date, &featured, &approved, &photos,
	)
	if err != nil {
		return nil, err
	}

	r.Title = title.String
	r.Content = content.String
	r.Featured = featured != 0
	approvedVal := approved != 0
	r.Approved = &approvedVal
	r.Photos = []string{}
	if photos.Valid && photos.String != "" {
		if err := json.Unmarshal([]byte(photos.String), &r.Photos); err != nil {
			return nil, fmt.Errorf("parsing photos for %s: %w", r.ReviewID, err)
		}
	}
	return &r, nil
}

// boolInt converts a bool to its SQLite INTEGER representation.
func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
