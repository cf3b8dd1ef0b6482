// Package keep imports Google Keep notes from a Takeout archive. Every note
// becomes a goal whose Details are the note text, with one task per line.
package keep

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/DEVBOX10/Ididit/internal/logger"
)

// ListItem is one checklist entry of a list note
type ListItem struct {
	Text      string `json:"text"`
	IsChecked bool   `json:"isChecked"`
}

// Note is the part of a Keep note export the importer reads
type Note struct {
	Title       string     `json:"title"`
	TextContent string     `json:"textContent"`
	ListContent []ListItem `json:"listContent"`
	IsTrashed   bool       `json:"isTrashed"`
	IsArchived  bool       `json:"isArchived"`

	// Source is the archive entry the note was read from
	Source string `json:"-"`
}

// Text returns the note body. List notes yield one line per item.
func (n Note) Text() string {
	if n.TextContent != "" || len(n.ListContent) == 0 {
		return n.TextContent
	}
	items := make([]string, 0, len(n.ListContent))
	for _, item := range n.ListContent {
		items = append(items, item.Text)
	}
	return strings.Join(items, "\n")
}

// GoalName is the title, or the entry name when the note has none
func (n Note) GoalName() string {
	if strings.TrimSpace(n.Title) != "" {
		return n.Title
	}
	return strings.TrimSuffix(path.Base(n.Source), path.Ext(n.Source))
}

// ReadOptions filter which notes are read
type ReadOptions struct {
	IncludeTrashed  bool
	IncludeArchived bool
}

// ReadArchive decodes every .json entry of a Takeout zip in archive order.
// Entries that do not decode as a note are logged and skipped.
func ReadArchive(r io.ReaderAt, size int64, opts ReadOptions) ([]Note, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return readEntries(archive.File, opts), nil
}

// ReadFile opens a Takeout zip from disk
func ReadFile(name string, opts ReadOptions) ([]Note, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer rc.Close()
	return readEntries(rc.File, opts), nil
}

func readEntries(entries []*zip.File, opts ReadOptions) []Note {
	var notes []Note
	for _, entry := range entries {
		if entry.FileInfo().IsDir() || !strings.EqualFold(path.Ext(entry.Name), ".json") {
			continue
		}

		note, err := readNote(entry)
		if err != nil {
			logger.For("import").Warn("Skipping Keep entry", "entry", entry.Name, "error", err)
			continue
		}
		if (note.IsTrashed && !opts.IncludeTrashed) || (note.IsArchived && !opts.IncludeArchived) {
			continue
		}
		notes = append(notes, note)
	}
	return notes
}

func readNote(entry *zip.File) (Note, error) {
	rc, err := entry.Open()
	if err != nil {
		return Note{}, err
	}
	defer rc.Close()

	var note Note
	if err := json.NewDecoder(rc).Decode(&note); err != nil {
		return Note{}, err
	}
	note.Source = entry.Name
	note.TextContent = strings.ReplaceAll(note.TextContent, "\r\n", "\n")
	return note, nil
}

// Preview renders notes as text: a "# Title" heading per titled note
// followed by its body, notes separated by a blank line.
func Preview(notes []Note) string {
	var b strings.Builder
	for _, note := range notes {
		if note.Title != "" {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString("# ")
			b.WriteString(note.Title)
		} else if b.Len() > 0 {
			b.WriteString("\n")
		}

		if text := note.Text(); text != "" {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	return b.String()
}
