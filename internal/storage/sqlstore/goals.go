package sqlstore

import (
	"database/sql"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

const goalColumns = "id, category_id, previous_id, name, details, create_task_from_each_line, display_as_markdown"

func (s *Store) AddGoal(g models.Goal) error {
	return s.execOne(`
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.CategoryID, g.PreviousID, g.Name, g.Details, g.CreateTaskFromEachLine, g.DisplayAsMarkdown)
}

func (s *Store) UpdateGoal(g models.Goal) error {
	return s.execOne(`
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			category_id = excluded.category_id,
			previous_id = excluded.previous_id,
			name = excluded.name,
			details = excluded.details,
			create_task_from_each_line = excluded.create_task_from_each_line,
			display_as_markdown = excluded.display_as_markdown`,
		g.ID, g.CategoryID, g.PreviousID, g.Name, g.Details, g.CreateTaskFromEachLine, g.DisplayAsMarkdown)
}

func (s *Store) DeleteGoal(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := s.deleteGoal(tx, id)
		if err != nil {
			return err
		}
		return expectRow(res)
	})
}

func (s *Store) deleteGoal(tx *sql.Tx, id int64) (sql.Result, error) {
	taskIDs, err := s.ids(tx, "SELECT id FROM tasks WHERE goal_id = ?", id)
	if err != nil {
		return nil, err
	}
	for _, tid := range taskIDs {
		if _, err := s.deleteTask(tx, tid); err != nil {
			return nil, err
		}
	}
	return tx.Exec(s.bind("DELETE FROM goals WHERE id = ?"), id)
}

func (s *Store) allGoals() ([]models.Goal, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	rows, err := s.db.Query("SELECT " + goalColumns + " FROM goals")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		err := rows.Scan(&g.ID, &g.CategoryID, &g.PreviousID, &g.Name, &g.Details,
			&g.CreateTaskFromEachLine, &g.DisplayAsMarkdown)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}
