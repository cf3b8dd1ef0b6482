package jsonstore

import (
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

func (s *Store) NextID(kind models.Kind) (int64, error) {
	if err := s.loaded(); err != nil {
		return 0, err
	}

	var highest int64
	switch kind {
	case models.KindCategory:
		highest = maxKey(s.doc.Categories)
	case models.KindGoal:
		highest = maxKey(s.doc.Goals)
	case models.KindTask:
		highest = maxKey(s.doc.Tasks)
	case models.KindTime:
		highest = maxKey(s.doc.Times)
	default:
		return 0, fmt.Errorf("unknown entity kind %q", kind)
	}

	next := max(highest, s.doc.Sequences[kind]) + 1
	s.doc.Sequences[kind] = next
	if err := s.save(); err != nil {
		return 0, err
	}
	return next, nil
}

func maxKey[V any](m map[int64]V) int64 {
	var highest int64
	for id := range m {
		highest = max(highest, id)
	}
	return highest
}

// put stores v under id; adds refuse an existing id
func put[V any](s *Store, m map[int64]V, id int64, v V, mustBeNew bool) error {
	if _, exists := m[id]; exists && mustBeNew {
		return fmt.Errorf("id %d already exists", id)
	}
	m[id] = v
	return s.save()
}

func (s *Store) AddCategory(c models.Category) error {
	if err := s.loaded(); err != nil {
		return err
	}
	c.Categories, c.Goals = nil, nil
	return put(s, s.doc.Categories, c.ID, c, true)
}

func (s *Store) UpdateCategory(c models.Category) error {
	if err := s.loaded(); err != nil {
		return err
	}
	c.Categories, c.Goals = nil, nil
	return put(s, s.doc.Categories, c.ID, c, false)
}

func (s *Store) AddGoal(g models.Goal) error {
	if err := s.loaded(); err != nil {
		return err
	}
	g.Tasks = nil
	return put(s, s.doc.Goals, g.ID, g, true)
}

func (s *Store) UpdateGoal(g models.Goal) error {
	if err := s.loaded(); err != nil {
		return err
	}
	g.Tasks = nil
	return put(s, s.doc.Goals, g.ID, g, false)
}

func (s *Store) AddTask(t models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}
	t.Times = nil
	return put(s, s.doc.Tasks, t.ID, t, true)
}

func (s *Store) UpdateTask(t models.Task) error {
	if err := s.loaded(); err != nil {
		return err
	}
	t.Times = nil
	return put(s, s.doc.Tasks, t.ID, t, false)
}

func (s *Store) AddTime(tt models.TaskTime) error {
	if err := s.loaded(); err != nil {
		return err
	}
	return put(s, s.doc.Times, tt.ID, tt, true)
}

func (s *Store) DeleteTime(id int64) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Times[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.doc.Times, id)
	return s.save()
}

func (s *Store) DeleteTask(id int64) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Tasks[id]; !ok {
		return storage.ErrNotFound
	}
	s.dropTask(id)
	return s.save()
}

func (s *Store) DeleteGoal(id int64) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Goals[id]; !ok {
		return storage.ErrNotFound
	}
	s.dropGoal(id)
	return s.save()
}

func (s *Store) DeleteCategory(id int64) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Categories[id]; !ok {
		return storage.ErrNotFound
	}
	s.dropCategory(id)
	return s.save()
}

func (s *Store) dropCategory(id int64) {
	for cid, c := range s.doc.Categories {
		if c.ParentID == id {
			s.dropCategory(cid)
		}
	}
	for gid, g := range s.doc.Goals {
		if g.CategoryID == id {
			s.dropGoal(gid)
		}
	}
	delete(s.doc.Categories, id)
}

func (s *Store) dropGoal(id int64) {
	for tid, t := range s.doc.Tasks {
		if t.GoalID == id {
			s.dropTask(tid)
		}
	}
	delete(s.doc.Goals, id)
}

func (s *Store) dropTask(id int64) {
	for ttid, tt := range s.doc.Times {
		if tt.TaskID == id {
			delete(s.doc.Times, ttid)
		}
	}
	delete(s.doc.Tasks, id)
}

func (s *Store) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return models.MapToSettings(s.doc.Settings)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = models.SettingsToMap(settings)
	return s.save()
}

func (s *Store) LoadData() (*models.Data, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(s.doc.Categories))
	for _, c := range s.doc.Categories {
		categories = append(categories, c)
	}
	goals := make([]models.Goal, 0, len(s.doc.Goals))
	for _, g := range s.doc.Goals {
		goals = append(goals, g)
	}
	tasks := make([]models.Task, 0, len(s.doc.Tasks))
	for _, t := range s.doc.Tasks {
		tasks = append(tasks, t)
	}
	times := make([]models.TaskTime, 0, len(s.doc.Times))
	for _, tt := range s.doc.Times {
		times = append(times, tt)
	}

	settings, err := models.MapToSettings(s.doc.Settings)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return models.Assemble(categories, goals, tasks, times, settings)
}
