// Package transfer exports the tracker tree to JSON or YAML documents and
// imports such documents back into a tracker.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/DEVBOX10/Ididit/internal/constants"
	"github.com/DEVBOX10/Ididit/internal/models"
)

const documentVersion = 1

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported document formats
var Formats = []Format{FormatJSON, FormatYAML}

// ParseFormat accepts a format name or an empty string, which means JSON
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format %q (want one of %v)", name, Formats)
}

// FormatForPath picks the format from a file extension, JSON by default
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Document is the exported form of a tracker
type Document struct {
	ExportID   string             `json:"export_id" yaml:"export_id"`
	App        string             `json:"app" yaml:"app"`
	Version    int                `json:"version" yaml:"version"`
	ExportedAt time.Time          `json:"exported_at" yaml:"exported_at"`
	Settings   models.Settings    `json:"settings" yaml:"settings"`
	Categories []*models.Category `json:"categories" yaml:"categories"`
}

// NewDocument snapshots data into a document with a fresh export id
func NewDocument(data *models.Data, now time.Time) Document {
	return Document{
		ExportID:   uuid.NewString(),
		App:        constants.AppName,
		Version:    documentVersion,
		ExportedAt: now.UTC(),
		Settings:   data.Settings,
		Categories: data.Categories,
	}
}

// Export writes data to w in the given format
func Export(data *models.Data, w io.Writer, format Format) (Document, error) {
	doc := NewDocument(data, time.Now())
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return doc, fmt.Errorf("failed to encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return doc, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return doc, err
		}
	default:
		return doc, fmt.Errorf("unsupported format %q", format)
	}
	return doc, nil
}

// Decode reads a document in the given format
func Decode(r io.Reader, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return doc, fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return doc, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return doc, fmt.Errorf("unsupported format %q", format)
	}

	if doc.Version > documentVersion {
		return doc, fmt.Errorf("document version (%d) is newer than supported version (%d)", doc.Version, documentVersion)
	}
	if doc.ExportID != "" {
		if _, err := uuid.Parse(doc.ExportID); err != nil {
			return doc, fmt.Errorf("invalid export id %q: %w", doc.ExportID, err)
		}
	}
	return doc, nil
}
