package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/models"
)

var kindTables = map[models.Kind]string{
	models.KindCategory: "categories",
	models.KindGoal:     "goals",
	models.KindTask:     "tasks",
	models.KindTime:     "task_times",
}

// NextID issues max(existing ids, highest issued) + 1 and records it as the
// new high-water mark, so a deleted id is never handed out again.
func (s *Store) NextID(kind models.Kind) (int64, error) {
	table, ok := kindTables[kind]
	if !ok {
		return 0, fmt.Errorf("unknown entity kind %q", kind)
	}

	var next int64
	err := s.withTx(func(tx *sql.Tx) error {
		var maxID int64
		if err := tx.QueryRow("SELECT COALESCE(MAX(id), 0) FROM " + table).Scan(&maxID); err != nil {
			return err
		}

		var lastID int64
		err := tx.QueryRow(s.bind("SELECT last_id FROM id_sequences WHERE kind = ?"), string(kind)).Scan(&lastID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		next = max(maxID, lastID) + 1
		_, err = tx.Exec(s.bind(`
			INSERT INTO id_sequences (kind, last_id) VALUES (?, ?)
			ON CONFLICT (kind) DO UPDATE SET last_id = excluded.last_id`),
			string(kind), next)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", kind, err)
	}
	return next, nil
}
