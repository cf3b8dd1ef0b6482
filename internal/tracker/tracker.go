// Package tracker is the application layer over the category/goal/task tree.
// Every mutation is applied to the in-memory tree first and then persisted in
// the same order, relinked successors before the entity they follow.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/logger"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

var (
	ErrNotLoaded     = errors.New("tracker data not loaded")
	ErrEmptyName     = errors.New("name must not be empty")
	ErrNothingToUndo = errors.New("task has no completion to undo")
	ErrRootCategory  = errors.New("the root category cannot be deleted")
)

type Tracker struct {
	store      storage.Provider
	reconciler *reconcile.Reconciler
	data       *models.Data
	session    time.Time
	now        func() time.Time
}

// New creates a tracker persisting through store. opts control how goal
// Details are split into tasks.
func New(store storage.Provider, opts reconcile.LineOptions) *Tracker {
	return &Tracker{
		store:      store,
		reconciler: reconcile.New(store, opts),
		now:        time.Now,
	}
}

// Load reads the tree from the store, creating the root category when the
// store holds none, and starts a new done-session.
func (t *Tracker) Load() error {
	data, err := t.store.LoadData()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	t.data = data
	t.session = t.now()

	if len(data.Categories) == 0 {
		if _, err := t.AddCategory(0, constants.RootCategoryName); err != nil {
			return fmt.Errorf("failed to create root category: %w", err)
		}
		logger.Info("Created root category", "name", constants.RootCategoryName)
	}
	return nil
}

// Data returns the loaded tree
func (t *Tracker) Data() *models.Data {
	return t.data
}

// Store returns the provider the tracker persists through
func (t *Tracker) Store() storage.Provider {
	return t.store
}

// Root returns the first root category
func (t *Tracker) Root() (*models.Category, error) {
	if t.data == nil {
		return nil, ErrNotLoaded
	}
	if len(t.data.Categories) == 0 {
		return nil, fmt.Errorf("%w: no root category", models.ErrIdentifierNotFound)
	}
	return t.data.Categories[0], nil
}

// SessionStart is the moment the current done-session began
func (t *Tracker) SessionStart() time.Time {
	return t.session
}

// IsDone reports whether task was completed during the current session
func (t *Tracker) IsDone(task *models.Task) bool {
	return task.DoneSince(t.session)
}

// Options returns the line options used for reconciliation
func (t *Tracker) Options() reconcile.LineOptions {
	return t.reconciler.Options()
}

func (t *Tracker) Settings() models.Settings {
	if t.data == nil {
		return models.DefaultSettings()
	}
	return t.data.Settings
}

func (t *Tracker) SaveSettings(settings models.Settings) error {
	if t.data == nil {
		return ErrNotLoaded
	}
	if err := t.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	t.data.Settings = settings
	return nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// category looks up a category; id 0 is the root
func (t *Tracker) category(id int64) (*models.Category, error) {
	if t.data == nil {
		return nil, ErrNotLoaded
	}
	if id == 0 {
		return t.Root()
	}
	c, ok := t.data.Category(id)
	if !ok {
		return nil, fmt.Errorf("%w: category %d", models.ErrIdentifierNotFound, id)
	}
	return c, nil
}

func (t *Tracker) goal(id int64) (*models.Goal, error) {
	if t.data == nil {
		return nil, ErrNotLoaded
	}
	g, ok := t.data.Goal(id)
	if !ok {
		return nil, fmt.Errorf("%w: goal %d", models.ErrIdentifierNotFound, id)
	}
	return g, nil
}

// task returns the task with its owning goal
func (t *Tracker) task(id int64) (*models.Task, *models.Goal, error) {
	if t.data == nil {
		return nil, nil, ErrNotLoaded
	}
	task, ok := t.data.Task(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: task %d", models.ErrIdentifierNotFound, id)
	}
	goal, err := t.goal(task.GoalID)
	if err != nil {
		return nil, nil, err
	}
	return task, goal, nil
}
