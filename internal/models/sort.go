package models

import (
	"sort"
	"strings"
	"time"

	"github.com/DEVBOX10/Ididit/internal/constants"
)

// LastDone returns the most recent completion of any of the goal's tasks
func (g *Goal) LastDone() (time.Time, bool) {
	var last time.Time
	found := false
	for _, task := range g.Tasks {
		if tt, ok := task.LastTime(); ok && (!found || tt.Time.After(last)) {
			last = tt.Time
			found = true
		}
	}
	return last, found
}

// SortGoals returns a copy of goals ordered for display. SortNone keeps the
// stored order. The elapsed sorts put goals that were never done first, then
// the longest-idle ones; goals have no desired interval, so the ratio sort
// orders by elapsed time too.
func SortGoals(goals []*Goal, mode constants.SortMode, now time.Time) []*Goal {
	sorted := make([]*Goal, len(goals))
	copy(sorted, goals)

	switch mode {
	case constants.SortName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	case constants.SortElapsedTime, constants.SortElapsedToDesiredRatio:
		elapsed := make(map[int64]time.Duration, len(sorted))
		never := make(map[int64]bool, len(sorted))
		for _, g := range sorted {
			if last, ok := g.LastDone(); ok {
				elapsed[g.ID] = now.Sub(last)
			} else {
				never[g.ID] = true
			}
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sorted[i].ID, sorted[j].ID
			if never[a] != never[b] {
				return never[a]
			}
			return elapsed[a] > elapsed[b]
		})
	}
	return sorted
}
