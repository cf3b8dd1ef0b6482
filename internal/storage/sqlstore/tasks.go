package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

func (s *Store) AddTask(t models.Task) error {
	return s.execOne(`
		INSERT INTO tasks (id, goal_id, previous_id, name, details_text)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.GoalID, t.PreviousID, t.Name, t.DetailsText)
}

func (s *Store) UpdateTask(t models.Task) error {
	return s.execOne(`
		INSERT INTO tasks (id, goal_id, previous_id, name, details_text)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			goal_id = excluded.goal_id,
			previous_id = excluded.previous_id,
			name = excluded.name,
			details_text = excluded.details_text`,
		t.ID, t.GoalID, t.PreviousID, t.Name, t.DetailsText)
}

func (s *Store) DeleteTask(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := s.deleteTask(tx, id)
		if err != nil {
			return err
		}
		return expectRow(res)
	})
}

func (s *Store) deleteTask(tx *sql.Tx, id int64) (sql.Result, error) {
	if _, err := tx.Exec(s.bind("DELETE FROM task_times WHERE task_id = ?"), id); err != nil {
		return nil, err
	}
	return tx.Exec(s.bind("DELETE FROM tasks WHERE id = ?"), id)
}

func (s *Store) AddTime(tt models.TaskTime) error {
	return s.execOne(`
		INSERT INTO task_times (id, task_id, done_at)
		VALUES (?, ?, ?)`,
		tt.ID, tt.TaskID, tt.Time.UTC().Format(constants.TimestampFormat))
}

func (s *Store) DeleteTime(id int64) error {
	return s.execOne("DELETE FROM task_times WHERE id = ?", id)
}

func (s *Store) allTasks() ([]models.Task, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	rows, err := s.db.Query("SELECT id, goal_id, previous_id, name, details_text FROM tasks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.GoalID, &t.PreviousID, &t.Name, &t.DetailsText); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) allTimes() ([]models.TaskTime, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	rows, err := s.db.Query("SELECT id, task_id, done_at FROM task_times")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var times []models.TaskTime
	for rows.Next() {
		var tt models.TaskTime
		var doneAt string
		if err := rows.Scan(&tt.ID, &tt.TaskID, &doneAt); err != nil {
			return nil, err
		}
		if tt.Time, err = time.Parse(constants.TimestampFormat, doneAt); err != nil {
			return nil, fmt.Errorf("parsing time %d: %w", tt.ID, err)
		}
		times = append(times, tt)
	}
	return times, rows.Err()
}
