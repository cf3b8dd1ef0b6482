package models

// Category groups Goals and sub-Categories. Root categories have ParentID 0.
type Category struct {
	ID         int64       `json:"id" yaml:"id"`
	ParentID   int64       `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	PreviousID int64       `json:"previous_id,omitempty" yaml:"previous_id,omitempty"`
	Name       string      `json:"name" yaml:"name"`
	Categories []*Category `json:"categories,omitempty" yaml:"categories,omitempty"`
	Goals      []*Goal     `json:"goals,omitempty" yaml:"goals,omitempty"`
}

func (c *Category) GetID() int64           { return c.ID }
func (c *Category) GetPreviousID() int64   { return c.PreviousID }
func (c *Category) SetPreviousID(id int64) { c.PreviousID = id }

// CreateCategory appends a sub-category
func (c *Category) CreateCategory(id int64, name string) (*Category, error) {
	child := &Category{ID: id, ParentID: c.ID, Name: name}
	categories, err := appendLinked(c.Categories, child)
	if err != nil {
		return nil, err
	}
	c.Categories = categories
	return child, nil
}

// RemoveCategory detaches a sub-category and returns the relinked successor, or nil.
func (c *Category) RemoveCategory(child *Category) (*Category, error) {
	categories, successor, err := removeLinked(c.Categories, child)
	if err != nil {
		return nil, err
	}
	c.Categories = categories
	return successor, nil
}

// CreateGoal appends a goal
func (c *Category) CreateGoal(id int64, name string) (*Goal, error) {
	goal := &Goal{ID: id, CategoryID: c.ID, Name: name}
	goals, err := appendLinked(c.Goals, goal)
	if err != nil {
		return nil, err
	}
	c.Goals = goals
	return goal, nil
}

// CreateGoalAt inserts a goal at index and returns the relinked successor, or nil.
func (c *Category) CreateGoalAt(id int64, index int, name string) (*Goal, *Goal, error) {
	goal := &Goal{ID: id, CategoryID: c.ID, Name: name}
	goals, successor, err := insertAt(c.Goals, index, goal)
	if err != nil {
		return nil, nil, err
	}
	c.Goals = goals
	return goal, successor, nil
}

// RemoveGoal detaches a goal and returns the relinked successor, or nil.
func (c *Category) RemoveGoal(goal *Goal) (*Goal, error) {
	goals, successor, err := removeLinked(c.Goals, goal)
	if err != nil {
		return nil, err
	}
	c.Goals = goals
	return successor, nil
}

// Walk visits c and every descendant category depth first
func (c *Category) Walk(fn func(*Category) bool) bool {
	if !fn(c) {
		return false
	}
	for _, child := range c.Categories {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
