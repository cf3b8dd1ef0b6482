package models

// Goal is a named objective owning an ordered list of Tasks and a free-text
// Details block. When CreateTaskFromEachLine is set, Details and Tasks are
// kept reconciled line by line.
type Goal struct {
	ID                     int64   `json:"id" yaml:"id"`
	CategoryID             int64   `json:"category_id" yaml:"category_id"`
	PreviousID             int64   `json:"previous_id,omitempty" yaml:"previous_id,omitempty"`
	Name                   string  `json:"name" yaml:"name"`
	Details                string  `json:"details,omitempty" yaml:"details,omitempty"`
	CreateTaskFromEachLine bool    `json:"create_task_from_each_line" yaml:"create_task_from_each_line"`
	DisplayAsMarkdown      bool    `json:"display_as_markdown" yaml:"display_as_markdown"`
	Tasks                  []*Task `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

func (g *Goal) GetID() int64           { return g.ID }
func (g *Goal) GetPreviousID() int64   { return g.PreviousID }
func (g *Goal) SetPreviousID(id int64) { g.PreviousID = id }

// CreateTask appends a new task
func (g *Goal) CreateTask(id int64, name string) (*Task, error) {
	task := &Task{ID: id, GoalID: g.ID, Name: name}
	tasks, err := appendLinked(g.Tasks, task)
	if err != nil {
		return nil, err
	}
	g.Tasks = tasks
	return task, nil
}

// CreateTaskAt inserts a new task at index. The second return value is the
// task that used to sit at index, now relinked behind the new one, or nil.
func (g *Goal) CreateTaskAt(id int64, index int, name string) (*Task, *Task, error) {
	task := &Task{ID: id, GoalID: g.ID, Name: name}
	tasks, successor, err := insertAt(g.Tasks, index, task)
	if err != nil {
		return nil, nil, err
	}
	g.Tasks = tasks
	return task, successor, nil
}

// RemoveTask takes task out of the goal and returns the relinked successor, or nil.
func (g *Goal) RemoveTask(task *Task) (*Task, error) {
	tasks, successor, err := removeLinked(g.Tasks, task)
	if err != nil {
		return nil, err
	}
	g.Tasks = tasks
	return successor, nil
}

// Task looks up a task by id
func (g *Goal) Task(id int64) (*Task, bool) {
	for _, t := range g.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// TaskNames returns task names in order
func (g *Goal) TaskNames() []string {
	names := make([]string, len(g.Tasks))
	for i, t := range g.Tasks {
		names[i] = t.Name
	}
	return names
}
