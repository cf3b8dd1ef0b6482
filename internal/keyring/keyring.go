// Package keyring keeps PostgreSQL connection strings in the OS keyring so
// they never have to be written to the settings file.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/DEVBOX10/Ididit/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored for the entry
	ErrNotFound = errors.New("no connection string in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be reached
	ErrUnavailable = errors.New("OS keyring is not available")
	// ErrEmpty is returned when an empty connection string is stored
	ErrEmpty = errors.New("connection string cannot be empty")
)

const probeUser = "availability-probe"

// Entry addresses one secret in the OS keyring
type Entry struct {
	Service string
	User    string
}

// DefaultEntry is where ididit keeps its database connection string
func DefaultEntry() Entry {
	return Entry{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

// Named returns the entry for a profile; an empty name is the default entry
func Named(name string) Entry {
	e := DefaultEntry()
	if name = strings.TrimSpace(name); name != "" {
		e.User = constants.DefaultKeyringUser + ":" + name
	}
	return e
}

// ConnectionString reads the stored connection string
func (e Entry) ConnectionString() (string, error) {
	secret, err := gokeyring.Get(e.Service, e.User)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return secret, nil
}

// SetConnectionString stores connStr, replacing any previous value
func (e Entry) SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return ErrEmpty
	}
	if err := gokeyring.Set(e.Service, e.User, connStr); err != nil {
		return fmt.Errorf("storing connection string in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string
func (e Entry) DeleteConnectionString() error {
	if err := gokeyring.Delete(e.Service, e.User); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting connection string from keyring: %w", err)
	}
	return nil
}

// Available reports whether the OS keyring answers requests. A missing probe
// entry still counts as available.
func Available() bool {
	_, err := gokeyring.Get(constants.AppName, probeUser)
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}
