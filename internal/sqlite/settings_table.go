// This file implements the settings collection: a plain key-value store
// addressed by caller-defined keys. The key doubles as the entity id.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/fieldday-labs/swingset/pkg/types"
)

var _ types.Table = (*settingsTable)(nil)

type settingsTable struct {
	backend *Backend
}

func (st *settingsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := st.backend.ready()
	if err != nil {
		return nil, err
	}

	var s types.Setting
	err = db.QueryRow("SELECT key, value FROM settings WHERE key = ?", id).
		Scan(&s.Key, &s.Value)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting setting %s: %w", id, err)
	}
	return &s, nil
}

// Set upserts a setting. The id, when given, must match the setting key;
// with an empty id the key from the record is used.
func (st *settingsTable) Set(id string, data any) (string, error) {
	s, ok := data.(*types.Setting)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id != "" && id != s.Key {
		return "", types.ErrInvalidID
	}
	if s.Key == "" {
		return "", types.ErrInvalidData
	}
	db, err := st.backend.ready()
	if err != nil {
		return "", err
	}

	_, err = db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		s.Key, s.Value,
	)
	if err != nil {
		return "", fmt.Errorf("upserting setting %s: %w", s.Key, err)
	}
	return s.Key, nil
}

func (st *settingsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := st.backend.ready()
	if err != nil {
		return err
	}

	res, err := db.Exec("DELETE FROM settings WHERE key = ?", id)
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns all settings ordered by key. Filters are not supported for
// settings; any filter key is rejected.
func (st *settingsTable) Fetch(filter types.Filter) ([]any, error) {
	if len(filter) > 0 {
		return nil, types.ErrInvalidFilter
	}
	db, err := st.backend.ready()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT key, value FROM settings ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var s types.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("hydrating setting: %w", err)
		}
		results = append(results, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return results, nil
}

func (st *settingsTable) Clear() error {
	db, err := st.backend.ready()
	if err != nil {
		return err
	}
	if _, err := db.Exec("DELETE FROM settings"); err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}
	return nil
}

// GetSetting returns the setting stored under key.
func (b *Backend) GetSetting(key string) (*types.Setting, error) {
	table, err := b.GetTable(types.SettingsTable)
	if err != nil {
		return nil, err
	}
	entry, err := table.Get(key)
	if err != nil {
		return nil, err
	}
	return entry.(*types.Setting), nil
}

// PutSetting upserts a setting under its key.
func (b *Backend) PutSetting(setting *types.Setting) error {
	if setting == nil {
		return types.ErrInvalidData
	}
	table, err := b.GetTable(types.SettingsTable)
	if err != nil {
		return err
	}
	_, err = table.Set(setting.Key, setting)
	return err
}
