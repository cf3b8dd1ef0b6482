package tasks

type TaskCmd struct {
	Add     TaskAddCmd     `cmd:"" help:"Add a task to a goal."`
	Rename  TaskRenameCmd  `cmd:"" help:"Rename a task."`
	Details TaskDetailsCmd `cmd:"" help:"Replace a task's detail text."`
	Delete  TaskDeleteCmd  `cmd:"" help:"Delete a task."`
	Done    TaskDoneCmd    `cmd:"" help:"Record a completion."`
	Undo    TaskUndoCmd    `cmd:"" help:"Remove the most recent completion."`
	List    TaskListCmd    `cmd:"" help:"List the tasks of a goal."`
}
