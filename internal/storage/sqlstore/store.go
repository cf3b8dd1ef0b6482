// Package sqlstore persists the tracker tree in SQLite or PostgreSQL through
// database/sql. Both engines share one implementation; the Dialect decides the
// driver, placeholder style and migration set.
package sqlstore

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/migration"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/storage"
	"github.com/DEVBOX10/Ididit/migrations"
)

// Compile-time interface check
var _ storage.Provider = (*Store)(nil)

type Store struct {
	dialect Dialect
	dsn     string
	db      *sql.DB
}

// NewSQLite returns a store backed by the SQLite file at path
func NewSQLite(path string) *Store {
	return &Store{dialect: SQLite, dsn: path}
}

// NewPostgres returns a store for connStr. The application schema is added
// to the search path unless the connection string names one.
func NewPostgres(connStr string) *Store {
	return &Store{dialect: Postgres, dsn: withSearchPath(connStr)}
}

// Dialect reports which engine the store talks to
func (s *Store) Dialect() Dialect {
	return s.dialect
}

func (s *Store) Init() error {
	if s.dialect == SQLite {
		dir := filepath.Dir(s.dsn)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if s.dialect == SQLite {
		if _, err := os.Stat(s.dsn); os.IsNotExist(err) {
			return storage.ErrNotInitialized
		}
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.validateSchemaVersion()
}

func (s *Store) open() error {
	db, err := sql.Open(s.dialect.Driver, s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if s.dialect == Postgres {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.Ping(); err != nil {
			db.Close()
			return connectError(s.dsn, err)
		}
		if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
			db.Close()
			return fmt.Errorf("failed to create schema: %w", err)
		}
	} else {
		// A single connection keeps SQLite writes serialized
		db.SetMaxOpenConns(1)
	}

	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, s.dialect.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s migrations: %w", s.dialect.Name, err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) runMigrations() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

// Migrate applies pending migrations to an already loaded store and reports
// how many ran.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		if err := s.open(); err != nil {
			return 0, err
		}
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

// SchemaVersion returns the current and latest known schema versions
func (s *Store) SchemaVersion() (current, latest int, err error) {
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) GetConfigPath() string {
	return s.dsn
}

// GetDB returns the underlying database connection.
// Returns nil if the database has not been initialized or loaded.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func (s *Store) bind(query string) string {
	return s.dialect.Rebind(query)
}

func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// execOne runs a single statement and fails with ErrNotFound when it touched no row
func (s *Store) execOne(query string, args ...any) error {
	if s.db == nil {
		return storage.ErrNotInitialized
	}
	res, err := s.db.Exec(s.bind(query), args...)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ids reads a single id column to completion before the caller issues more
// statements on the same transaction.
func (s *Store) ids(tx *sql.Tx, query string, args ...any) ([]int64, error) {
	rows, err := tx.Query(s.bind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
