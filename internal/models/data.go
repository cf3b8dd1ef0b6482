package models

import (
	"fmt"
	"sort"
)

// Kind names an entity kind for identifier assignment
type Kind string

const (
	KindCategory Kind = "category"
	KindGoal     Kind = "goal"
	KindTask     Kind = "task"
	KindTime     Kind = "time"
)

// Kinds lists every entity kind
var Kinds = []Kind{KindCategory, KindGoal, KindTask, KindTime}

// Data is the loaded object graph: ordered root categories plus settings
type Data struct {
	Categories []*Category `json:"categories" yaml:"categories"`
	Settings   Settings    `json:"settings" yaml:"settings"`
}

func (d *Data) walk(fn func(*Category) bool) {
	for _, c := range d.Categories {
		if !c.Walk(fn) {
			return
		}
	}
}

// Category finds a category anywhere in the tree
func (d *Data) Category(id int64) (*Category, bool) {
	var found *Category
	d.walk(func(c *Category) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// ParentOf returns the category holding child, or nil for a root category
func (d *Data) ParentOf(child *Category) *Category {
	if child.ParentID == 0 {
		return nil
	}
	parent, _ := d.Category(child.ParentID)
	return parent
}

// Goal finds a goal anywhere in the tree
func (d *Data) Goal(id int64) (*Goal, bool) {
	var found *Goal
	d.walk(func(c *Category) bool {
		for _, g := range c.Goals {
			if g.ID == id {
				found = g
				return false
			}
		}
		return true
	})
	return found, found != nil
}

// Task finds a task anywhere in the tree
func (d *Data) Task(id int64) (*Task, bool) {
	var found *Task
	d.walk(func(c *Category) bool {
		for _, g := range c.Goals {
			if t, ok := g.Task(id); ok {
				found = t
				return false
			}
		}
		return true
	})
	return found, found != nil
}

// Goals returns every goal in tree order
func (d *Data) Goals() []*Goal {
	var goals []*Goal
	d.walk(func(c *Category) bool {
		goals = append(goals, c.Goals...)
		return true
	})
	return goals
}

// CreateCategory appends a root category
func (d *Data) CreateCategory(id int64, name string) (*Category, error) {
	category := &Category{ID: id, Name: name}
	categories, err := appendLinked(d.Categories, category)
	if err != nil {
		return nil, err
	}
	d.Categories = categories
	return category, nil
}

// RemoveCategory detaches a category from its parent (or the root list) and
// returns the relinked successor, or nil.
func (d *Data) RemoveCategory(category *Category) (*Category, error) {
	if parent := d.ParentOf(category); parent != nil {
		return parent.RemoveCategory(category)
	}
	categories, successor, err := removeLinked(d.Categories, category)
	if err != nil {
		return nil, err
	}
	d.Categories = categories
	return successor, nil
}

// Assemble builds the object graph from flat rows as they come out of a
// store. Siblings are ordered by their previous-pointers.
func Assemble(categories []Category, goals []Goal, tasks []Task, times []TaskTime, settings Settings) (*Data, error) {
	categoryByID := make(map[int64]*Category, len(categories))
	for i := range categories {
		c := categories[i]
		c.Categories, c.Goals = nil, nil
		categoryByID[c.ID] = &c
	}
	goalByID := make(map[int64]*Goal, len(goals))
	for i := range goals {
		g := goals[i]
		g.Tasks = nil
		goalByID[g.ID] = &g
	}
	taskByID := make(map[int64]*Task, len(tasks))
	for i := range tasks {
		t := tasks[i]
		t.Times = nil
		taskByID[t.ID] = &t
	}

	for _, tt := range times {
		t, ok := taskByID[tt.TaskID]
		if !ok {
			return nil, fmt.Errorf("%w: time %d references task %d", ErrIdentifierNotFound, tt.ID, tt.TaskID)
		}
		t.Times = append(t.Times, tt)
	}
	for _, t := range taskByID {
		sort.Slice(t.Times, func(i, j int) bool { return t.Times[i].Time.Before(t.Times[j].Time) })
	}

	for _, t := range sortedByID(taskByID) {
		g, ok := goalByID[t.GoalID]
		if !ok {
			return nil, fmt.Errorf("%w: task %d references goal %d", ErrIdentifierNotFound, t.ID, t.GoalID)
		}
		g.Tasks = append(g.Tasks, t)
	}
	for _, g := range sortedByID(goalByID) {
		c, ok := categoryByID[g.CategoryID]
		if !ok {
			return nil, fmt.Errorf("%w: goal %d references category %d", ErrIdentifierNotFound, g.ID, g.CategoryID)
		}
		c.Goals = append(c.Goals, g)
	}

	data := &Data{Settings: settings}
	for _, c := range sortedByID(categoryByID) {
		if c.ParentID == 0 {
			data.Categories = append(data.Categories, c)
			continue
		}
		parent, ok := categoryByID[c.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: category %d references parent %d", ErrIdentifierNotFound, c.ID, c.ParentID)
		}
		parent.Categories = append(parent.Categories, c)
	}

	var err error
	if data.Categories, err = OrderByPrevious(data.Categories); err != nil {
		return nil, fmt.Errorf("root categories: %w", err)
	}
	for _, c := range categoryByID {
		if c.Categories, err = OrderByPrevious(c.Categories); err != nil {
			return nil, fmt.Errorf("category %d sub-categories: %w", c.ID, err)
		}
		if c.Goals, err = OrderByPrevious(c.Goals); err != nil {
			return nil, fmt.Errorf("category %d goals: %w", c.ID, err)
		}
	}
	for _, g := range goalByID {
		if g.Tasks, err = OrderByPrevious(g.Tasks); err != nil {
			return nil, fmt.Errorf("goal %d tasks: %w", g.ID, err)
		}
	}

	return data, nil
}

// Flatten is the inverse of Assemble: it lists every entity of the tree in
// tree order with child slices cleared.
func (d *Data) Flatten() ([]Category, []Goal, []Task, []TaskTime) {
	var (
		categories []Category
		goals      []Goal
		tasks      []Task
		times      []TaskTime
	)
	d.walk(func(c *Category) bool {
		row := *c
		row.Categories, row.Goals = nil, nil
		categories = append(categories, row)
		for _, g := range c.Goals {
			goalRow := *g
			goalRow.Tasks = nil
			goals = append(goals, goalRow)
			for _, t := range g.Tasks {
				taskRow := *t
				taskRow.Times = nil
				tasks = append(tasks, taskRow)
				times = append(times, t.Times...)
			}
		}
		return true
	})
	return categories, goals, tasks, times
}

func sortedByID[T Linked](byID map[int64]T) []T {
	items := make([]T, 0, len(byID))
	for _, item := range byID {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].GetID() < items[j].GetID() })
	return items
}
