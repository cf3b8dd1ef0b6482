package tracker

import (
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/models"
)

// AddCategory appends a category under parentID. A parentID of 0 means the
// root category; on an empty tree it creates the root itself.
func (t *Tracker) AddCategory(parentID int64, name string) (*models.Category, error) {
	if t.data == nil {
		return nil, ErrNotLoaded
	}
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	id, err := t.store.NextID(models.KindCategory)
	if err != nil {
		return nil, err
	}

	var category *models.Category
	if parentID == 0 && len(t.data.Categories) == 0 {
		category, err = t.data.CreateCategory(id, name)
	} else {
		var parent *models.Category
		if parent, err = t.category(parentID); err != nil {
			return nil, err
		}
		category, err = parent.CreateCategory(id, name)
	}
	if err != nil {
		return nil, err
	}

	if err := t.store.AddCategory(*category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}

func (t *Tracker) RenameCategory(id int64, name string) error {
	category, err := t.category(id)
	if err != nil {
		return err
	}
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	category.Name = clean
	return t.store.UpdateCategory(*category)
}

// DeleteCategory removes the category and everything below it
func (t *Tracker) DeleteCategory(id int64) error {
	category, err := t.category(id)
	if err != nil {
		return err
	}
	if category.ParentID == 0 {
		return ErrRootCategory
	}

	successor, err := t.data.RemoveCategory(category)
	if err != nil {
		return err
	}
	if successor != nil {
		if err := t.store.UpdateCategory(*successor); err != nil {
			return fmt.Errorf("failed to relink category %d: %w", successor.ID, err)
		}
	}
	return t.store.DeleteCategory(category.ID)
}
