// This file implements the favorites collection accessor. Favorites hold a
// weak reference to a playground surrogate id; nothing enforces uniqueness,
// so duplicate favorites for the same playground are stored as-is.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var _ types.Table = (*favoritesTable)(nil)

type favoritesTable struct {
	backend *Backend
}

func (ft *favoritesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := ft.backend.ready()
	if err != nil {
		return nil, err
	}

	var f types.Favorite
	err = db.QueryRow(
		"SELECT favorite_id, playground_ref, added_date FROM favorites WHERE favorite_id = ?",
		id,
	).Scan(&f.FavoriteID, &f.PlaygroundRef, &f.AddedDate)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting favorite %s: %w", id, err)
	}
	return &f, nil
}

func (ft *favoritesTable) Set(id string, data any) (string, error) {
	f, ok := data.(*types.Favorite)
	if !ok {
		return "", types.ErrInvalidData
	}
	if f.PlaygroundRef == "" {
		return "", types.ErrInvalidData
	}
	db, err := ft.backend.ready()
	if err != nil {
		return "", err
	}

	if id == "" {
		f.FavoriteID = generateID()
		if f.AddedDate == "" {
			f.AddedDate = time.Now().UTC().Format(time.RFC3339)
		}
		_, err := db.Exec(
			"INSERT INTO favorites (favorite_id, playground_ref, added_date) VALUES (?, ?, ?)",
			f.FavoriteID, f.PlaygroundRef, f.AddedDate,
		)
		if err != nil {
			return "", fmt.Errorf("inserting favorite: %w", err)
		}
		return f.FavoriteID, nil
	}

	res, err := db.Exec(
		"UPDATE favorites SET playground_ref = ?, added_date = ? WHERE favorite_id = ?",
		f.PlaygroundRef, f.AddedDate, id,
	)
	if err != nil {
		return "", fmt.Errorf("updating favorite %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("updating favorite %s: %w", id, err)
	}
	if n == 0 {
		return "", types.ErrNotFound
	}
	f.FavoriteID = id
	return id, nil
}

func (ft *favoritesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := ft.backend.ready()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM favorites WHERE favorite_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting favorite %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting favorite %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns favorites, oldest first. Supported filter key:
// "playground_ref".
func (ft *favoritesTable) Fetch(filter types.Filter) ([]any, error) {
	db, err := ft.backend.ready()
	if err != nil {
		return nil, err
	}

	query := "SELECT favorite_id, playground_ref, added_date FROM favorites"
	var args []any
	if v, ok := filter["playground_ref"]; ok {
		ref, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		query += " WHERE playground_ref = ?"
		args = append(args, ref)
	}
	query += " ORDER BY added_date ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching favorites: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var f types.Favorite
		if err := rows.Scan(&f.FavoriteID, &f.PlaygroundRef, &f.AddedDate); err != nil {
			return nil, fmt.Errorf("hydrating favorite: %w", err)
		}
		results = append(results, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating favorites: %w", err)
	}
	return results, nil
}

func (ft *favoritesTable) Clear() error {
	db, err := ft.backend.ready()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM favorites"); err != nil {
		return fmt.Errorf("clearing favorites: %w", err)
	}
	return nil
}
