package transfer

import (
	"fmt"
	"io"

	"github.com/DEVBOX10/Ididit/internal/logger"
	"github.com/DEVBOX10/Ididit/internal/models"
	"github.com/DEVBOX10/Ididit/internal/tracker"
)

// ImportOptions control how a document is merged into a tracker
type ImportOptions struct {
	// Settings replaces the tracker settings with the document's
	Settings bool
}

// Summary counts what an import created
type Summary struct {
	ExportID   string
	Categories int
	Goals      int
	Tasks      int
	Times      int
}

// Import decodes a document from r and merges it into the tracker. Every
// entity gets a fresh id. The goals and sub-categories of each document root
// category are appended under the tracker's root category.
func Import(tr *tracker.Tracker, r io.Reader, format Format, opts ImportOptions) (Summary, error) {
	doc, err := Decode(r, format)
	if err != nil {
		return Summary{}, err
	}
	return Apply(tr, doc, opts)
}

// Apply merges an already decoded document
func Apply(tr *tracker.Tracker, doc Document, opts ImportOptions) (Summary, error) {
	summary := Summary{ExportID: doc.ExportID}

	root, err := tr.Root()
	if err != nil {
		return summary, err
	}

	for _, category := range doc.Categories {
		if err := importContents(tr, root.ID, category, &summary); err != nil {
			return summary, err
		}
	}

	if opts.Settings {
		if err := tr.SaveSettings(doc.Settings); err != nil {
			return summary, err
		}
	}

	logger.For("import").Info("Imported document",
		"export_id", summary.ExportID,
		"categories", summary.Categories,
		"goals", summary.Goals,
		"tasks", summary.Tasks,
	)
	return summary, nil
}

func importContents(tr *tracker.Tracker, targetID int64, source *models.Category, summary *Summary) error {
	for _, goal := range source.Goals {
		if err := importGoal(tr, targetID, goal, summary); err != nil {
			return err
		}
	}
	for _, child := range source.Categories {
		created, err := tr.AddCategory(targetID, child.Name)
		if err != nil {
			return fmt.Errorf("category %q: %w", child.Name, err)
		}
		summary.Categories++
		if err := importContents(tr, created.ID, child, summary); err != nil {
			return err
		}
	}
	return nil
}

// importGoal recreates tasks explicitly and only then turns on line tasks, so
// the reconcile pass finds them already aligned.
func importGoal(tr *tracker.Tracker, categoryID int64, source *models.Goal, summary *Summary) error {
	goal, err := tr.AddGoal(categoryID, source.Name)
	if err != nil {
		return fmt.Errorf("goal %q: %w", source.Name, err)
	}
	summary.Goals++

	if source.Details != "" {
		if _, err := tr.SetGoalDetails(goal.ID, source.Details); err != nil {
			return err
		}
	}

	for _, sourceTask := range source.Tasks {
		task, err := tr.AddTask(goal.ID, sourceTask.Name)
		if err != nil {
			return fmt.Errorf("task %q: %w", sourceTask.Name, err)
		}
		summary.Tasks++
		if sourceTask.DetailsText != "" {
			if err := tr.SetTaskDetails(task.ID, sourceTask.DetailsText); err != nil {
				return err
			}
		}
		for _, tt := range sourceTask.Times {
			if _, err := tr.MarkTaskDone(task.ID, tt.Time); err != nil {
				return err
			}
			summary.Times++
		}
	}

	if source.CreateTaskFromEachLine {
		if _, _, err := tr.ToggleCreateTaskFromEachLine(goal.ID); err != nil {
			return err
		}
	}
	if source.DisplayAsMarkdown {
		if _, err := tr.ToggleDisplayAsMarkdown(goal.ID); err != nil {
			return err
		}
	}
	return nil
}
