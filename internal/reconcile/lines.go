package reconcile

import (
	"strings"

	"github.com/DEVBOX10/Ididit/internal/constants"
)

// LineOptions controls how Details text is split into task lines
type LineOptions struct {
	// SkipBlank drops empty and whitespace-only lines
	SkipBlank bool
	// GroupDetails folds "- " lines into the details of the line above
	GroupDetails bool
}

// DefaultLineOptions skips blank lines and groups detail lines
func DefaultLineOptions() LineOptions {
	return LineOptions{SkipBlank: true, GroupDetails: true}
}

// Line is one task line of a Details text
type Line struct {
	Name    string
	Details []string
}

// DetailsText joins the detail lines the way Task.DetailsText stores them
func (l Line) DetailsText() string {
	return strings.Join(l.Details, "\n")
}

// SplitLines turns Details text into task lines
func SplitLines(details string, opts LineOptions) []Line {
	if details == "" {
		return nil
	}

	var lines []Line
	for _, raw := range strings.Split(details, "\n") {
		raw = strings.TrimSuffix(raw, "\r")
		if opts.SkipBlank && strings.TrimSpace(raw) == "" {
			continue
		}
		if opts.GroupDetails && len(lines) > 0 && strings.HasPrefix(raw, constants.DetailLinePrefix) {
			last := &lines[len(lines)-1]
			last.Details = append(last.Details, raw)
			continue
		}
		lines = append(lines, Line{Name: raw})
	}
	return lines
}

// Names returns the task names of lines
func Names(lines []Line) []string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	return names
}
