package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
)

// fakeStore is an in-memory TaskStore. Setting fail makes every call return
// errBoom without touching its state.
type fakeStore struct {
	tasks  []*domain.Task
	nextID int64
	fail   bool
}

var errBoom = errors.New("store unavailable")

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1}
}

func (s *fakeStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	if s.fail {
		return nil, errBoom
	}
	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, copyTask(t))
	}
	return out, nil
}

func (s *fakeStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if s.fail {
		return nil, errBoom
	}
	for _, t := range s.tasks {
		if t.ID == id {
			return copyTask(t), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) Insert(ctx context.Context, task *domain.Task) error {
	if s.fail {
		return errBoom
	}
	task.ID = s.nextID
	s.nextID++
	s.tasks = append(s.tasks, copyTask(task))
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) error {
	if s.fail {
		return errBoom
	}
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeStore) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	if s.fail {
		return errBoom
	}
	for _, t := range s.tasks {
		if t.ID == id {
			t.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeStore) UpdatePriority(ctx context.Context, id int64, priority domain.Priority) error {
	if s.fail {
		return errBoom
	}
	for _, t := range s.tasks {
		if t.ID == id {
			t.Priority = priority
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *fakeStore) AppendSubtask(ctx context.Context, taskID int64, text string) (int64, error) {
	if s.fail {
		return 0, errBoom
	}
	for _, t := range s.tasks {
		if t.ID == taskID {
			id := s.nextID
			s.nextID++
			t.Subtasks = append(t.Subtasks, domain.Subtask{
				ID:     id,
				TaskID: taskID,
				Text:   text,
				Status: domain.StatusPending,
			})
			return id, nil
		}
	}
	return 0, repository.ErrNotFound
}

func (s *fakeStore) SetSubtaskStatus(ctx context.Context, taskID, subtaskID int64, status domain.Status) error {
	if s.fail {
		return errBoom
	}
	for _, t := range s.tasks {
		if t.ID != taskID {
			continue
		}
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subtaskID {
				t.Subtasks[i].Status = status
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (s *fakeStore) DeleteSubtask(ctx context.Context, subtaskID int64) error {
	if s.fail {
		return errBoom
	}
	for _, t := range s.tasks {
		for i := range t.Subtasks {
			if t.Subtasks[i].ID == subtaskID {
				t.Subtasks = append(t.Subtasks[:i], t.Subtasks[i+1:]...)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (s *fakeStore) ClearAll(ctx context.Context) error {
	if s.fail {
		return errBoom
	}
	s.tasks = nil
	return nil
}

func (s *fakeStore) ReplaceAll(ctx context.Context, tasks []*domain.Task) error {
	if s.fail {
		return errBoom
	}
	s.tasks = nil
	for _, t := range tasks {
		if err := s.Insert(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeStore) SetCredential(ctx context.Context, apiKey string) error {
	if s.fail {
		return errBoom
	}
	return nil
}

func (s *fakeStore) GetCredential(ctx context.Context) (string, error) {
	if s.fail {
		return "", errBoom
	}
	return "", repository.ErrNotFound
}

func copyTask(t *domain.Task) *domain.Task {
	dup := *t
	dup.Subtasks = append([]domain.Subtask(nil), t.Subtasks...)
	return &dup
}

var _ repository.TaskStore = (*fakeStore)(nil)

func seed(t *testing.T, titles ...string) (*Controller, *fakeStore) {
	t.Helper()

	ctx := context.Background()
	store := newFakeStore()
	for _, title := range titles {
		task := domain.NewTask(title)
		require.NoError(t, store.Insert(ctx, task))
	}

	c := New(store)
	require.NoError(t, c.Load(ctx))
	return c, store
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestLoadSelectsFirst(t *testing.T) {
	c, _ := seed(t, "alpha", "beta", "gamma")

	idx, ok := c.Selection()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "Alpha", c.Selected().Title)
}

func TestEmptyListHasNoSelection(t *testing.T) {
	c, _ := seed(t)

	_, ok := c.Selection()
	assert.False(t, ok)
	assert.Nil(t, c.Selected())

	// navigation on an empty list stays empty
	c.Next()
	c.Previous()
	_, ok = c.Selection()
	assert.False(t, ok)
}

func TestNavigationWraps(t *testing.T) {
	c, _ := seed(t, "alpha", "beta", "gamma")

	c.Previous()
	assert.Equal(t, "Gamma", c.Selected().Title)

	c.Next()
	assert.Equal(t, "Alpha", c.Selected().Title)

	c.Next()
	c.Next()
	c.Next()
	assert.Equal(t, "Alpha", c.Selected().Title)
}

func TestQueryFiltersAndClampsCursor(t *testing.T) {
	c, _ := seed(t, "write report", "call plumber", "plan trip")

	c.Next()
	c.Next()
	assert.Equal(t, "Plan trip", c.Selected().Title)

	c.StartSearch()
	c.SetQuery("pl")
	assert.Equal(t, []string{"Call plumber", "Plan trip"}, titles(c.Filtered()))
	// cursor was past the end of the narrower list
	assert.Equal(t, "Plan trip", c.Selected().Title)

	c.SetQuery("plumber")
	assert.Equal(t, []string{"Call plumber"}, titles(c.Filtered()))

	c.SetQuery("zzz")
	assert.Empty(t, c.Filtered())
	_, ok := c.Selection()
	assert.False(t, ok)

	c.CancelSearch()
	assert.Equal(t, "", c.Query())
	assert.Len(t, c.Filtered(), 3)
	_, ok = c.Selection()
	assert.True(t, ok)
}

func TestCommitSearchKeepsFilter(t *testing.T) {
	c, _ := seed(t, "write report", "call plumber")

	c.StartSearch()
	c.SetQuery("report")
	c.CommitSearch()

	assert.Equal(t, ModeBrowsing, c.Mode())
	assert.Equal(t, "report", c.Query())
	assert.Equal(t, []string{"Write report"}, titles(c.Filtered()))
}

func TestDeleteClampsCursor(t *testing.T) {
	ctx := context.Background()

	t.Run("middle", func(t *testing.T) {
		c, _ := seed(t, "alpha", "beta", "gamma")
		c.Next() // beta

		require.NoError(t, c.Delete(ctx, c.Selected().ID))

		// cursor now points at the task that shifted into the slot
		assert.Equal(t, "Gamma", c.Selected().Title)
	})

	t.Run("last", func(t *testing.T) {
		c, _ := seed(t, "alpha", "beta")
		c.Next() // beta, the last entry

		require.NoError(t, c.Delete(ctx, c.Selected().ID))

		assert.Equal(t, "Alpha", c.Selected().Title)
	})

	t.Run("only", func(t *testing.T) {
		c, _ := seed(t, "alpha")

		require.NoError(t, c.Delete(ctx, c.Selected().ID))

		_, ok := c.Selection()
		assert.False(t, ok)
		assert.Nil(t, c.Selected())
	})
}

func TestDeleteConfirmFlow(t *testing.T) {
	ctx := context.Background()
	c, store := seed(t, "alpha", "beta")

	c.OpenDeleteConfirm()
	assert.Equal(t, ModeDeleteConfirm, c.Mode())

	require.NoError(t, c.ConfirmDelete(ctx))
	assert.Equal(t, ModeBrowsing, c.Mode())
	assert.Len(t, store.tasks, 1)
	assert.Equal(t, "Beta", c.Selected().Title)
}

func TestCloseOverlayReappliesFilter(t *testing.T) {
	c, _ := seed(t, "write report", "call plumber")

	c.StartSearch()
	c.SetQuery("report")
	c.CommitSearch()
	c.OpenDetail()
	require.Equal(t, ModeDetail, c.Mode())

	c.CloseOverlay()

	assert.Equal(t, ModeBrowsing, c.Mode())
	assert.Equal(t, []string{"Write report"}, titles(c.Filtered()))
	assert.Nil(t, c.DetailTask())
}

func TestOpenDetailRequiresSelection(t *testing.T) {
	c, _ := seed(t)

	c.OpenDetail()
	assert.Equal(t, ModeBrowsing, c.Mode())
}

func TestPriorityChangeFlow(t *testing.T) {
	ctx := context.Background()
	c, store := seed(t, "alpha")

	c.OpenPriorityChange()
	require.Equal(t, ModePriorityChange, c.Mode())

	require.NoError(t, c.ChoosePriority(ctx, domain.PriorityHigh))

	assert.Equal(t, ModeBrowsing, c.Mode())
	assert.Equal(t, domain.PriorityHigh, c.Selected().Priority)
	assert.Equal(t, domain.PriorityHigh, store.tasks[0].Priority)
}

func TestSubtaskCursor(t *testing.T) {
	ctx := context.Background()
	c, _ := seed(t, "alpha")

	id := c.Selected().ID
	require.NoError(t, c.AppendSubtask(ctx, id, "one"))
	require.NoError(t, c.AppendSubtask(ctx, id, "two"))

	c.OpenDetail()
	_, ok := c.SubtaskSelection()
	assert.False(t, ok, "detail view opens with no subtask selected")

	c.NextSubtask()
	idx, ok := c.SubtaskSelection()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	// no wrap past the last subtask
	c.NextSubtask()
	c.NextSubtask()
	idx, _ = c.SubtaskSelection()
	assert.Equal(t, 1, idx)

	c.PreviousSubtask()
	c.PreviousSubtask()
	idx, _ = c.SubtaskSelection()
	assert.Equal(t, 0, idx)
}

func TestToggleSelectedSubtaskReloads(t *testing.T) {
	ctx := context.Background()
	c, store := seed(t, "alpha")

	id := c.Selected().ID
	require.NoError(t, c.AppendSubtask(ctx, id, "one"))

	c.OpenDetail()
	c.StartNotesEdit()
	c.FinishNotesEdit("remember the milk")
	c.NextSubtask()

	require.NoError(t, c.ToggleSelectedSubtask(ctx))

	task := c.DetailTask()
	require.NotNil(t, task)
	assert.Equal(t, domain.StatusDone, task.Subtasks[0].Status)
	assert.Equal(t, domain.StatusDone, store.tasks[0].Subtasks[0].Status)
	// notes survive the wholesale reload
	assert.Equal(t, "remember the milk", task.Notes)
}

func TestDeleteSelectedSubtaskClampsSubCursor(t *testing.T) {
	ctx := context.Background()
	c, _ := seed(t, "alpha")

	id := c.Selected().ID
	require.NoError(t, c.AppendSubtask(ctx, id, "one"))
	require.NoError(t, c.AppendSubtask(ctx, id, "two"))

	c.OpenDetail()
	c.NextSubtask()
	c.NextSubtask() // on "two", the last

	require.NoError(t, c.DeleteSelectedSubtask(ctx))
	idx, ok := c.SubtaskSelection()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "one", c.SelectedSubtask().Text)

	require.NoError(t, c.DeleteSelectedSubtask(ctx))
	_, ok = c.SubtaskSelection()
	assert.False(t, ok)
	assert.Nil(t, c.SelectedSubtask())
}

func TestStoreErrorLeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	c, store := seed(t, "alpha", "beta")

	store.fail = true

	err := c.MarkSelected(ctx, domain.StatusDone)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, domain.StatusPending, c.Selected().Status)

	err = c.Delete(ctx, c.Selected().ID)
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, c.Tasks(), 2)

	err = c.AppendSubtask(ctx, c.Selected().ID, "one")
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, c.Selected().Subtasks)
}

func TestMutationOnEmptySelectionIsNoOp(t *testing.T) {
	ctx := context.Background()
	c, _ := seed(t)

	assert.NoError(t, c.MarkSelected(ctx, domain.StatusDone))
	assert.NoError(t, c.ToggleSelectedSubtask(ctx))
	assert.NoError(t, c.DeleteSelectedSubtask(ctx))
}

func TestAddAppendsAndSelects(t *testing.T) {
	ctx := context.Background()
	c, _ := seed(t)

	require.NoError(t, c.Add(ctx, domain.NewTask("first")))
	assert.Equal(t, "First", c.Selected().Title)

	require.NoError(t, c.Add(ctx, domain.NewTask("second")))
	// cursor stays where it was
	assert.Equal(t, "First", c.Selected().Title)
	assert.Len(t, c.Filtered(), 2)
}
