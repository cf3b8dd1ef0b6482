package keep

import (
	"fmt"

	"github.com/DEVBOX10/Ididit/internal/logger"
	"github.com/DEVBOX10/Ididit/internal/reconcile"
	"github.com/DEVBOX10/Ididit/internal/tracker"
)

// Result summarizes an import
type Result struct {
	Goals int
	Tasks int
}

type Importer struct {
	tracker *tracker.Tracker
}

func NewImporter(tr *tracker.Tracker) *Importer {
	return &Importer{tracker: tr}
}

// Import creates one goal per note in the category. Each goal creates tasks
// from its lines, so "- " lines land in the details of the task above.
func (i *Importer) Import(categoryID int64, notes []Note) (Result, error) {
	var result Result
	for _, note := range notes {
		goal, err := i.tracker.AddGoal(categoryID, note.GoalName())
		if err != nil {
			return result, fmt.Errorf("importing %s: %w", note.Source, err)
		}
		result.Goals++

		if _, _, err := i.tracker.ToggleCreateTaskFromEachLine(goal.ID); err != nil {
			return result, fmt.Errorf("importing %s: %w", note.Source, err)
		}
		ops, err := i.tracker.SetGoalDetails(goal.ID, note.Text())
		if err != nil {
			return result, fmt.Errorf("importing %s: %w", note.Source, err)
		}
		result.Tasks += reconcile.Counts(ops)[reconcile.OpInsert]
	}

	logger.For("import").Info("Imported Google Keep notes", "goals", result.Goals, "tasks", result.Tasks)
	return result, nil
}
