// This file implements the playgrounds collection accessor: hydration between
// SQLite rows and *types.Playground, the default-template merge on creation,
// and the review cascade on delete.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/fieldday-labs/swingset/pkg/types"
)

// Compile-time interface check: playgroundsTable must implement Table.
var _ types.Table = (*playgroundsTable)(nil)

type playgroundsTable struct {
	backend *Backend
}

// playgroundColumns is the canonical column list for playground queries.
const playgroundColumns = "id, prop_id, playground_id, name, location, accessible, " +
	"sensory_friendly, lat, lon, slug, added_date, added_by, modified_date, " +
	"modified_by, schema_version, extended"

// execer abstracts *sql.DB and *sql.Tx for the shared insert/update helpers.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// rowScanner abstracts *sql.Row and *sql.Rows for hydration.
type rowScanner interface {
	Scan(dest ...any) error
}

// Get retrieves a playground by surrogate id.
func (pt *playgroundsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := pt.backend.ready()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		"SELECT "+playgroundColumns+" FROM playgrounds WHERE id = ?", id,
	)
	p, err := scanPlayground(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting playground %s: %w", id, err)
	}
	return p, nil
}

// Set persists a playground. With an empty id the record is created: a new
// UUID v7 is assigned and the full default template is merged in, so every
// extended field is present from creation. With an existing id the record is
// updated and ModifiedDate is stamped; ModifiedBy is whatever the
// administrative caller set on the record.
func (pt *playgroundsTable) Set(id string, data any) (string, error) {
	p, ok := data.(*types.Playground)
	if !ok {
		return "", types.ErrInvalidData
	}
	if p.PropID == "" || p.Name == "" {
		return "", types.ErrInvalidData
	}
	db, err := pt.backend.ready()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if id == "" {
		p.ID = generateID()
		if p.PlaygroundID == "" {
			p.PlaygroundID = p.PropID
		}
		if p.AddedDate == "" {
			p.AddedDate = now
		}
		p.FillDefaults()
		p.SchemaVersion = types.LatestSchemaVersion

		if err := insertPlayground(db, p); err != nil {
			return "", fmt.Errorf("inserting playground: %w", err)
		}
		return p.ID, nil
	}

	var exists int
	err = db.QueryRow("SELECT 1 FROM playgrounds WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("checking playground existence: %w", err)
	}

	p.ID = id
	p.ModifiedDate = now
	p.FillDefaults()
	p.SchemaVersion = types.LatestSchemaVersion

	if err := updatePlayground(db, p); err != nil {
		return "", fmt.Errorf("updating playground %s: %w", id, err)
	}
	return id, nil
}

// Delete removes a playground and cascades to its reviews. Favorites are
// cascaded only when the store was attached with CascadeFavorites; the
// default preserves the source behavior of leaving them behind.
func (pt *playgroundsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := pt.backend.ready()
	if err != nil {
		return err
	}

	var propID string
	err = db.QueryRow("SELECT prop_id FROM playgrounds WHERE id = ?", id).Scan(&propID)
	if err == sql.ErrNoRows {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking playground existence: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM reviews WHERE playground_prop_id = ?", propID); err != nil {
		return fmt.Errorf("cascading reviews for %s: %w", propID, err)
	}
	if pt.backend.config.CascadeFavorites {
		if _, err := tx.Exec("DELETE FROM favorites WHERE playground_ref = ?", id); err != nil {
			return fmt.Errorf("cascading favorites for %s: %w", id, err)
		}
	}
	if _, err := tx.Exec("DELETE FROM playgrounds WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting playground %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// Fetch returns playgrounds matching the filter, ordered by name. Supported
// filter keys: "prop_id", "slug".
func (pt *playgroundsTable) Fetch(filter types.Filter) ([]any, error) {
	db, err := pt.backend.ready()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + playgroundColumns + " FROM playgrounds"
	var conditions []string
	var args []any

	for _, key := range []string{"prop_id", "slug"} {
		if v, ok := filter[key]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, key+" = ?")
			args = append(args, s)
		}
	}

	for i, c := range conditions {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY name ASC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching playgrounds: %w", err)
	}
	defer rows.Close()

	results := []any{}
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

// Clear removes every playground.
func (pt *playgroundsTable) Clear() error {
	db, err := pt.backend.ready()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM playgrounds"); err != nil {
		return fmt.Errorf("clearing playgrounds: %w", err)
	}
	return nil
}

// scanPlayground hydrates one row into a *types.Playground.
func scanPlayground(row rowScanner) (*types.Playground, error) {
	var p types.Playground
	var playgroundID, location, accessible, sensory, slug sql.NullString
	var addedDate, addedBy, modifiedDate, modifiedBy, extended sql.NullString
	var lat, lon sql.NullFloat64
	var schemaVersion sql.NullInt64

	err := row.Scan(
		&p.ID, &p.PropID, &playgroundID, &p.Name, &location, &accessible,
		&sensory, &lat, &lon, &slug, &addedDate, &addedBy, &modifiedDate,
		&modifiedBy, &schemaVersion, &extended,
	)
	if err != nil {
		return nil, err
	}

	p.PlaygroundID = playgroundID.String
	p.Location = location.String
	p.Accessible = accessible.String
	p.SensoryFriendly = sensory.String
	p.Slug = slug.String
	p.AddedDate = addedDate.String
	p.AddedBy = addedBy.String
	p.ModifiedDate = modifiedDate.String
	p.ModifiedBy = modifiedBy.String
	p.SchemaVersion = int(schemaVersion.Int64)
	p.Lat = nullCoord(lat)
	p.Lon = nullCoord(lon)

	if extended.Valid && extended.String != "" {
		if err := json.Unmarshal([]byte(extended.String), &p.Extended); err != nil {
			return nil, fmt.Errorf("parsing extended block for %s: %w", p.ID, err)
		}
	} else {
		p.Extended = types.NewExtended()
	}

	return &p, nil
}

// nullCoord converts a nullable REAL column to a Coord, mapping NULL to NaN.
func nullCoord(v sql.NullFloat64) types.Coord {
	if !v.Valid {
		return types.Coord(math.NaN())
	}
	return types.Coord(v.Float64)
}

// coordArg converts a Coord to an insertable value, mapping NaN to NULL.
func coordArg(c types.Coord) any {
	if !c.Valid() {
		return nil
	}
	return float64(c)
}

// insertPlayground writes a new playground row.
func insertPlayground(e execer, p *types.Playground) error {
	ext, err := json.Marshal(p.Extended)
	if err != nil {
		return fmt.Errorf("marshaling extended block: %w", err)
	}
	_, err = e.Exec(
		"INSERT INTO playgrounds ("+playgroundColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.PropID, p.PlaygroundID, p.Name, p.Location, p.Accessible,
		p.SensoryFriendly, coordArg(p.Lat), coordArg(p.Lon), p.Slug,
		p.AddedDate, p.AddedBy, nullIfEmpty(p.ModifiedDate),
		nullIfEmpty(p.ModifiedBy), p.SchemaVersion, string(ext),
	)
	return err
}

// updatePlayground rewrites an existing playground row.
func updatePlayground(e execer, p *types.Playground) error {
	ext, err := json.Marshal(p.Extended)
	if err != nil {
		return fmt.Errorf("marshaling extended block: %w", err)
	}
	_, err = e.Exec(
		"UPDATE playgrounds SET prop_id = ?, playground_id = ?, name = ?, "+
			"location = ?, accessible = ?, sensory_friendly = ?, lat = ?, lon = ?, "+
			"slug = ?, added_date = ?, added_by = ?, modified_date = ?, "+
			"modified_by = ?, schema_version = ?, extended = ? WHERE id = ?",
		p.PropID, p.PlaygroundID, p.Name, p.Location, p.Accessible,
		p.SensoryFriendly, coordArg(p.Lat), coordArg(p.Lon), p.Slug,
		p.AddedDate, p.AddedBy, nullIfEmpty(p.ModifiedDate),
		nullIfEmpty(p.ModifiedBy), p.SchemaVersion, string(ext), p.ID,
	)
	return err
}

// nullIfEmpty maps "" to NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
