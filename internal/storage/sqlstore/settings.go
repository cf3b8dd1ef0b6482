package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

func (s *Store) GetSettings() (models.Settings, error) {
	if s.db == nil {
		return models.Settings{}, storage.ErrNotInitialized
	}
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if len(values) == 0 {
		return models.Settings{}, fmt.Errorf("settings: %w", storage.ErrNotFound)
	}

	return models.MapToSettings(values)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return s.withTx(func(tx *sql.Tx) error {
		for key, value := range models.SettingsToMap(settings) {
			_, err := tx.Exec(s.bind(`
				INSERT INTO settings (key, value) VALUES (?, ?)
				ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
				key, value)
			if err != nil {
				return fmt.Errorf("saving setting %s: %w", key, err)
			}
		}
		return nil
	})
}
