package sqlstore

import (
	"errors"
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

func (s *Store) LoadData() (*models.Data, error) {
	categories, err := s.allCategories()
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	goals, err := s.allGoals()
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	tasks, err := s.allTasks()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	times, err := s.allTimes()
	if err != nil {
		return nil, fmt.Errorf("loading times: %w", err)
	}

	settings, err := s.GetSettings()
	if errors.Is(err, storage.ErrNotFound) {
		settings, err = models.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return models.Assemble(categories, goals, tasks, times, settings)
}
