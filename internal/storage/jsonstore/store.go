// Package jsonstore keeps the whole tracker in one JSON document. Every
// mutation rewrites the file atomically.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
)

const documentVersion = 1

var errNotLoaded = errors.New("storage not loaded")

// Compile-time interface check
var _ storage.Provider = (*Store)(nil)

type document struct {
	Version    int                       `json:"version"`
	Settings   map[string]string         `json:"settings"`
	Sequences  map[models.Kind]int64     `json:"sequences"`
	Categories map[int64]models.Category `json:"categories"`
	Goals      map[int64]models.Goal     `json:"goals"`
	Tasks      map[int64]models.Task     `json:"tasks"`
	Times      map[int64]models.TaskTime `json:"times"`
}

func newDocument() *document {
	return &document{
		Version:    documentVersion,
		Settings:   models.SettingsToMap(models.DefaultSettings()),
		Sequences:  make(map[models.Kind]int64),
		Categories: make(map[int64]models.Category),
		Goals:      make(map[int64]models.Goal),
		Tasks:      make(map[int64]models.Task),
		Times:      make(map[int64]models.TaskTime),
	}
}

type Store struct {
	path string
	doc  *document
}

func New(path string) *Store {
	return &Store{path: path}
}

// Init creates the document, or loads it when it already exists
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = newDocument()
	return s.save()
}

func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return storage.ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > documentVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade ididit", doc.Version, documentVersion)
	}

	fresh := newDocument()
	if doc.Settings == nil {
		doc.Settings = fresh.Settings
	}
	if doc.Sequences == nil {
		doc.Sequences = fresh.Sequences
	}
	if doc.Categories == nil {
		doc.Categories = fresh.Categories
	}
	if doc.Goals == nil {
		doc.Goals = fresh.Goals
	}
	if doc.Tasks == nil {
		doc.Tasks = fresh.Tasks
	}
	if doc.Times == nil {
		doc.Times = fresh.Times
	}

	s.doc = doc
	return nil
}

func (s *Store) Close() error {
	s.doc = nil
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// save writes to a temp file in the same directory, syncs it and renames it
// over the document.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ididit-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (s *Store) loaded() error {
	if s.doc == nil {
		return errNotLoaded
	}
	return nil
}
