package sqlstore

import (
	"database/sql"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

func (s *Store) AddCategory(c models.Category) error {
	return s.execOne(`
		INSERT INTO categories (id, parent_id, previous_id, name)
		VALUES (?, ?, ?, ?)`,
		c.ID, c.ParentID, c.PreviousID, c.Name)
}

func (s *Store) UpdateCategory(c models.Category) error {
	return s.execOne(`
		INSERT INTO categories (id, parent_id, previous_id, name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			parent_id = excluded.parent_id,
			previous_id = excluded.previous_id,
			name = excluded.name`,
		c.ID, c.ParentID, c.PreviousID, c.Name)
}

func (s *Store) DeleteCategory(id int64) error {
	return s.withTx(func(tx *sql.Tx) error {
		subtree, err := s.categorySubtree(tx, id)
		if err != nil {
			return err
		}
		for _, cid := range subtree {
			goalIDs, err := s.ids(tx, "SELECT id FROM goals WHERE category_id = ?", cid)
			if err != nil {
				return err
			}
			for _, gid := range goalIDs {
				if _, err := s.deleteGoal(tx, gid); err != nil {
					return err
				}
			}
		}
		// children before parents
		for i := len(subtree) - 1; i > 0; i-- {
			if _, err := tx.Exec(s.bind("DELETE FROM categories WHERE id = ?"), subtree[i]); err != nil {
				return err
			}
		}
		res, err := tx.Exec(s.bind("DELETE FROM categories WHERE id = ?"), id)
		if err != nil {
			return err
		}
		return expectRow(res)
	})
}

// categorySubtree lists id followed by every descendant, breadth first
func (s *Store) categorySubtree(tx *sql.Tx, id int64) ([]int64, error) {
	subtree := []int64{id}
	for i := 0; i < len(subtree); i++ {
		children, err := s.ids(tx, "SELECT id FROM categories WHERE parent_id = ?", subtree[i])
		if err != nil {
			return nil, err
		}
		subtree = append(subtree, children...)
	}
	return subtree, nil
}

func (s *Store) allCategories() ([]models.Category, error) {
	if s.db == nil {
		return nil, storage.ErrNotInitialized
	}
	rows, err := s.db.Query("SELECT id, parent_id, previous_id, name FROM categories")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.ParentID, &c.PreviousID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
