package storage

import (
	"errors"

	"github.com/DEVBOX10/Ididit/internal/models"
)

var (
	// ErrNotInitialized is returned by Load when the store has never been initialized
	ErrNotInitialized = errors.New("storage not initialized, run 'ididit init' first")
	// ErrNotFound is returned when an update or delete targets an unknown id
	ErrNotFound = errors.New("record not found")
)

// Repository is the persistence surface the tracker drives. Calls are issued
// in the order the in-memory tree was mutated.
type Repository interface {
	// NextID returns a fresh identifier for kind. Identifiers are never reused.
	NextID(kind models.Kind) (int64, error)

	// Categories
	AddCategory(models.Category) error
	UpdateCategory(models.Category) error
	// DeleteCategory removes the category with its sub-categories, goals, tasks and times
	DeleteCategory(id int64) error

	// Goals
	AddGoal(models.Goal) error
	UpdateGoal(models.Goal) error
	// DeleteGoal removes the goal with its tasks and times
	DeleteGoal(id int64) error

	// Tasks
	AddTask(models.Task) error
	UpdateTask(models.Task) error
	// DeleteTask removes the task with its times
	DeleteTask(id int64) error

	// Times
	AddTime(models.TaskTime) error
	DeleteTime(id int64) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	Repository

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// LoadData reads every entity and assembles the ordered tree
	LoadData() (*models.Data, error)

	// Utils
	GetConfigPath() string
}
