package reconcile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVBOX10/Ididit/internal/models"
)

// recordingRepo keeps a flat copy of persisted tasks and a log of calls
type recordingRepo struct {
	nextID int64
	tasks  map[int64]models.Task
	calls  []string
	failOn string
}

// Compile-time interface check
var _ Repository = (*recordingRepo)(nil)

func newRecordingRepo(goal *models.Goal) *recordingRepo {
	r := &recordingRepo{tasks: make(map[int64]models.Task)}
	for _, t := range goal.Tasks {
		r.tasks[t.ID] = *t
		r.nextID = max(r.nextID, t.ID)
	}
	return r
}

func (r *recordingRepo) record(call string) error {
	r.calls = append(r.calls, call)
	if r.failOn != "" && call == r.failOn {
		return errors.New("disk full")
	}
	return nil
}

func (r *recordingRepo) NextID(kind models.Kind) (int64, error) {
	r.nextID++
	return r.nextID, nil
}

func (r *recordingRepo) AddTask(task models.Task) error {
	if err := r.record(fmt.Sprintf("add %d", task.ID)); err != nil {
		return err
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *recordingRepo) UpdateTask(task models.Task) error {
	if err := r.record(fmt.Sprintf("update %d", task.ID)); err != nil {
		return err
	}
	r.tasks[task.ID] = task
	return nil
}

func (r *recordingRepo) DeleteTask(id int64) error {
	if err := r.record(fmt.Sprintf("delete %d", id)); err != nil {
		return err
	}
	delete(r.tasks, id)
	return nil
}

// persistedOrder rebuilds the order from the stored previous-pointers
func (r *recordingRepo) persistedOrder(t *testing.T) []string {
	t.Helper()
	var tasks []*models.Task
	for _, task := range r.tasks {
		task := task
		tasks = append(tasks, &task)
	}
	ordered, err := models.OrderByPrevious(tasks)
	require.NoError(t, err)
	names := make([]string, len(ordered))
	for i, task := range ordered {
		names[i] = task.Name
	}
	return names
}

func newGoal(t *testing.T, names ...string) *models.Goal {
	t.Helper()
	goal := &models.Goal{ID: 1, CategoryID: 1, CreateTaskFromEachLine: true}
	for i, name := range names {
		_, err := goal.CreateTask(int64(i+1), name)
		require.NoError(t, err)
	}
	return goal
}

func reconcile(t *testing.T, goal *models.Goal, details string) (*recordingRepo, []Op) {
	t.Helper()
	repo := newRecordingRepo(goal)
	goal.Details = details
	ops, err := New(repo, DefaultLineOptions()).Reconcile(goal)
	require.NoError(t, err)
	require.NoError(t, models.VerifyOrder(goal.Tasks))
	return repo, ops
}

func TestReconcileAppend(t *testing.T) {
	goal := newGoal(t, "buy milk", "walk dog")

	repo, ops := reconcile(t, goal, "buy milk\nwalk dog\ncall mom")

	assert.Equal(t, []OpKind{OpKeep, OpKeep, OpInsert}, kinds(ops))
	assert.Equal(t, []string{"buy milk", "walk dog", "call mom"}, goal.TaskNames())
	assert.Equal(t, goal.Tasks[1].ID, goal.Tasks[2].PreviousID)
	assert.Equal(t, []string{"add 3"}, repo.calls)
	assert.Equal(t, goal.TaskNames(), repo.persistedOrder(t))
}

func TestReconcileDeleteMiddle(t *testing.T) {
	goal := newGoal(t, "a", "b", "c")
	a, c := goal.Tasks[0], goal.Tasks[2]

	repo, ops := reconcile(t, goal, "a\nc")

	assert.Equal(t, []OpKind{OpKeep, OpDelete, OpKeep}, kinds(ops))
	assert.Equal(t, []string{"a", "c"}, goal.TaskNames())
	assert.Equal(t, a.ID, c.PreviousID)
	assert.Equal(t, []string{"update 3", "delete 2"}, repo.calls)
	assert.Equal(t, []string{"a", "c"}, repo.persistedOrder(t))
}

func TestReconcileRenameInPlace(t *testing.T) {
	goal := newGoal(t, "a", "b")
	b := goal.Tasks[1]
	id, previous := b.ID, b.PreviousID

	repo, ops := reconcile(t, goal, "a\nx")

	assert.Equal(t, []OpKind{OpKeep, OpUpdate}, kinds(ops))
	assert.Equal(t, "x", b.Name)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, previous, b.PreviousID)
	assert.Equal(t, []string{"update 2"}, repo.calls)
}

func TestReconcileIdenticalIsNoop(t *testing.T) {
	goal := newGoal(t, "a", "b")

	repo, ops := reconcile(t, goal, "a\nb")

	assert.False(t, Changed(ops))
	assert.Empty(t, repo.calls)
}

func TestReconcileFromEmpty(t *testing.T) {
	goal := newGoal(t)

	repo, ops := reconcile(t, goal, "one\ntwo\nthree")

	assert.Equal(t, []OpKind{OpInsert, OpInsert, OpInsert}, kinds(ops))
	assert.Equal(t, []string{"one", "two", "three"}, goal.TaskNames())
	assert.Equal(t, []string{"one", "two", "three"}, repo.persistedOrder(t))
}

func TestReconcileToEmpty(t *testing.T) {
	goal := newGoal(t, "a", "b", "c")

	repo, ops := reconcile(t, goal, "")

	assert.Equal(t, []OpKind{OpDelete, OpDelete, OpDelete}, kinds(ops))
	assert.Empty(t, goal.Tasks)
	assert.Empty(t, repo.tasks)
}

func TestReconcileIsIdempotent(t *testing.T) {
	goal := newGoal(t, "a", "b", "c")
	details := "x\na\n- note\nc\nd\ne"

	_, first := reconcile(t, goal, details)
	assert.True(t, Changed(first))

	repo, second := reconcile(t, goal, details)
	assert.False(t, Changed(second))
	assert.Empty(t, repo.calls)
}

func TestReconcileInsertFrontRelinksSuccessor(t *testing.T) {
	goal := newGoal(t, "b", "c")

	repo, _ := reconcile(t, goal, "a\nb\nc")

	assert.Equal(t, []string{"a", "b", "c"}, goal.TaskNames())
	// successor is persisted before the new task
	assert.Equal(t, []string{"update 1", "add 3"}, repo.calls)
	assert.Equal(t, []string{"a", "b", "c"}, repo.persistedOrder(t))
}

func TestReconcileGroupsDetailLines(t *testing.T) {
	goal := newGoal(t, "a")

	repo, ops := reconcile(t, goal, "a\n- first\n- second\nb\n- third")

	assert.Equal(t, []OpKind{OpKeep, OpInsert}, kinds(ops))
	assert.Equal(t, "- first\n- second", goal.Tasks[0].DetailsText)
	assert.Equal(t, "- third", goal.Tasks[1].DetailsText)
	assert.Equal(t, []string{"update 1", "add 2"}, repo.calls)
}

func TestReconcileRandomEditsKeepOrder(t *testing.T) {
	goal := newGoal(t)
	edits := []string{
		"a\nb\nc\nd",
		"a\nc\nd",
		"z\na\nc\nd\ne",
		"e\nd\nc",
		"c\nx\ny\nz\nd\nw",
		"",
		"solo",
	}
	for _, details := range edits {
		repo, _ := reconcile(t, goal, details)
		want := Names(SplitLines(details, DefaultLineOptions()))
		if want == nil {
			want = []string{}
		}
		assert.Equal(t, want, goal.TaskNames(), details)
		assert.Equal(t, goal.TaskNames(), repo.persistedOrder(t), details)
	}
}

func TestReconcileStopsOnPersistError(t *testing.T) {
	goal := newGoal(t, "a")
	repo := newRecordingRepo(goal)
	repo.failOn = "add 3"
	goal.Details = "a\nb\nc"

	_, err := New(repo, DefaultLineOptions()).Reconcile(goal)

	require.Error(t, err)
	// the first insert stays applied, the failed one is in memory but not persisted
	assert.Equal(t, []string{"a", "b", "c"}, goal.TaskNames())
	assert.Equal(t, []string{"add 2", "add 3"}, repo.calls)
	assert.NotContains(t, repo.tasks, int64(3))
}

func TestReconcileDetectsDrift(t *testing.T) {
	goal := newGoal(t, "a", "b")
	goal.Details = "a"
	repo := newRecordingRepo(goal)

	ops := Diff(goal.TaskNames(), []string{"a"})
	goal.Tasks[1].Name = "changed behind our back"

	r := New(repo, DefaultLineOptions())
	err := r.apply(goal, ops[1], Line{})
	assert.ErrorIs(t, err, models.ErrIdentifierNotFound)
}
