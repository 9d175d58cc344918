// Package controller is the interactive core: it keeps the in-memory task
// list synchronized with the store, derives the filtered view and selection
// from it, and owns the modal state machine.
//
// Every mutation follows one of three patterns:
//
//   - patch in place: store write, then find-and-mutate the cache entry by
//     id (status, priority)
//   - reload by id: store write, then re-fetch the whole task and replace it
//     wholesale (anything touching subtasks)
//   - remove locally: store delete, then drop the cache entry and clamp the
//     selection
//
// The cache is only mutated after the store confirms success, so a failed
// write never leaves the view ahead of the truth.
package controller

import (
	"context"

	"taskdeck/internal/domain"
	"taskdeck/internal/filter"
	"taskdeck/internal/repository"
)

const noSelection = -1

type Controller struct {
	store repository.TaskStore

	tasks    []*domain.Task
	query    string
	filtered []int // indices into tasks, original order

	cursor    int // index into filtered, noSelection when empty
	subCursor int // index into the detail task's subtasks

	mode         Mode
	detailID     int64 // id of the task open in detail view
	editingNotes bool
}

func New(store repository.TaskStore) *Controller {
	return &Controller{
		store:     store,
		tasks:     make([]*domain.Task, 0),
		filtered:  make([]int, 0),
		cursor:    noSelection,
		subCursor: noSelection,
		mode:      ModeBrowsing,
	}
}

// Load replaces the cache from the store and re-derives filter and
// selection.
func (c *Controller) Load(ctx context.Context) error {
	tasks, err := c.store.ListAll(ctx)
	if err != nil {
		return err
	}

	c.tasks = tasks
	c.refresh()
	return nil
}

// accessors

func (c *Controller) Mode() Mode            { return c.mode }
func (c *Controller) Query() string         { return c.query }
func (c *Controller) Tasks() []*domain.Task { return c.tasks }
func (c *Controller) EditingNotes() bool    { return c.editingNotes }

// Filtered returns the tasks visible under the current query, in original
// list order.
func (c *Controller) Filtered() []*domain.Task {
	out := make([]*domain.Task, 0, len(c.filtered))
	for _, i := range c.filtered {
		out = append(out, c.tasks[i])
	}
	return out
}

// Selection returns the cursor position within the filtered list.
func (c *Controller) Selection() (int, bool) {
	if c.cursor == noSelection {
		return 0, false
	}
	return c.cursor, true
}

// Selected returns the highlighted task, or nil when nothing is selected.
func (c *Controller) Selected() *domain.Task {
	if c.cursor == noSelection || c.cursor >= len(c.filtered) {
		return nil
	}
	return c.tasks[c.filtered[c.cursor]]
}

// DetailTask returns the task open in detail view, or nil.
func (c *Controller) DetailTask() *domain.Task {
	if c.detailID == 0 {
		return nil
	}
	return c.findTask(c.detailID)
}

// SubtaskSelection returns the cursor position within the detail task's
// subtasks.
func (c *Controller) SubtaskSelection() (int, bool) {
	if c.subCursor == noSelection {
		return 0, false
	}
	return c.subCursor, true
}

// SelectedSubtask returns the highlighted subtask of the detail task, or nil.
func (c *Controller) SelectedSubtask() *domain.Subtask {
	task := c.DetailTask()
	if task == nil || c.subCursor == noSelection || c.subCursor >= len(task.Subtasks) {
		return nil
	}
	return &task.Subtasks[c.subCursor]
}

// navigation

// Next moves the primary cursor down, wrapping last to first.
func (c *Controller) Next() {
	if len(c.filtered) == 0 {
		c.cursor = noSelection
		return
	}
	if c.cursor == noSelection || c.cursor >= len(c.filtered)-1 {
		c.cursor = 0
		return
	}
	c.cursor++
}

// Previous moves the primary cursor up, wrapping first to last.
func (c *Controller) Previous() {
	if len(c.filtered) == 0 {
		c.cursor = noSelection
		return
	}
	if c.cursor == noSelection {
		c.cursor = 0
		return
	}
	if c.cursor == 0 {
		c.cursor = len(c.filtered) - 1
		return
	}
	c.cursor--
}

// NextSubtask moves the subtask cursor down; from no selection it lands on
// the first subtask. It does not wrap.
func (c *Controller) NextSubtask() {
	task := c.DetailTask()
	if task == nil || len(task.Subtasks) == 0 {
		return
	}
	if c.subCursor == noSelection {
		c.subCursor = 0
		return
	}
	if c.subCursor < len(task.Subtasks)-1 {
		c.subCursor++
	}
}

// PreviousSubtask moves the subtask cursor up without wrapping.
func (c *Controller) PreviousSubtask() {
	if c.subCursor > 0 {
		c.subCursor--
	}
}

// search

// StartSearch gives the query input focus.
func (c *Controller) StartSearch() {
	if c.mode == ModeBrowsing {
		c.mode = ModeSearching
	}
}

// SetQuery re-runs the filter; called on every keystroke of the query.
func (c *Controller) SetQuery(query string) {
	c.query = query
	c.refresh()
}

// CommitSearch leaves search mode keeping the query and filter active.
func (c *Controller) CommitSearch() {
	if c.mode == ModeSearching {
		c.mode = ModeBrowsing
	}
}

// CancelSearch clears the query and shows everything again.
func (c *Controller) CancelSearch() {
	if c.mode != ModeSearching {
		return
	}
	c.query = ""
	c.refresh()
	c.mode = ModeBrowsing
}

// modal state machine

// OpenDetail opens the detail view for the selected task. With nothing
// selected it does nothing.
func (c *Controller) OpenDetail() {
	if c.mode != ModeBrowsing {
		return
	}
	task := c.Selected()
	if task == nil {
		return
	}
	c.mode = ModeDetail
	c.detailID = task.ID
	c.subCursor = noSelection
}

// OpenDeleteConfirm asks for confirmation before deleting the selection.
func (c *Controller) OpenDeleteConfirm() {
	if c.mode != ModeBrowsing || c.Selected() == nil {
		return
	}
	c.mode = ModeDeleteConfirm
}

// OpenPriorityChange opens the priority picker for the selection.
func (c *Controller) OpenPriorityChange() {
	if c.mode != ModeBrowsing || c.Selected() == nil {
		return
	}
	c.mode = ModePriorityChange
}

// ToggleMainMenu opens or closes the key-reference menu.
func (c *Controller) ToggleMainMenu() {
	switch c.mode {
	case ModeBrowsing:
		c.mode = ModeMainMenu
	case ModeMainMenu:
		c.CloseOverlay()
	}
}

// CloseOverlay returns to browsing and, when a query is active, re-applies
// the filter so a stale unfiltered list is never shown.
func (c *Controller) CloseOverlay() {
	if !c.mode.IsOverlay() {
		return
	}
	c.mode = ModeBrowsing
	c.detailID = 0
	c.subCursor = noSelection
	c.editingNotes = false
	if c.query != "" {
		c.refresh()
	}
}

// notes sub-mode

// StartNotesEdit routes character input to the notes buffer while the
// detail view stays open.
func (c *Controller) StartNotesEdit() {
	if c.mode == ModeDetail {
		c.editingNotes = true
	}
}

// FinishNotesEdit stores the edited notes on the cached task. Notes are
// session-local; no store write happens here.
func (c *Controller) FinishNotesEdit(notes string) {
	if c.mode != ModeDetail || !c.editingNotes {
		return
	}
	if task := c.DetailTask(); task != nil {
		task.Notes = notes
	}
	c.editingNotes = false
}

// mutations, id-addressed (used by the command surface)

// Add inserts a task and appends it to the cache.
func (c *Controller) Add(ctx context.Context, task *domain.Task) error {
	if err := c.store.Insert(ctx, task); err != nil {
		return err
	}
	c.tasks = append(c.tasks, task)
	c.refresh()
	return nil
}

// SetStatus updates a task's status: store write, then patch in place by id.
func (c *Controller) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	if err := c.store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if task := c.findTask(id); task != nil {
		task.Status = status
	}
	c.refresh()
	return nil
}

// SetPriority updates a task's priority: store write, then patch in place.
func (c *Controller) SetPriority(ctx context.Context, id int64, priority domain.Priority) error {
	if err := c.store.UpdatePriority(ctx, id, priority); err != nil {
		return err
	}
	if task := c.findTask(id); task != nil {
		task.Priority = priority
	}
	c.refresh()
	return nil
}

// Delete removes a task: store write, then remove locally and clamp the
// cursor to min(old position, new last index).
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}

	oldCursor := c.cursor
	for i, task := range c.tasks {
		if task.ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			break
		}
	}
	c.refresh()

	if len(c.filtered) == 0 {
		c.cursor = noSelection
	} else if oldCursor != noSelection {
		c.cursor = min(oldCursor, len(c.filtered)-1)
	}
	return nil
}

// AppendSubtask adds a subtask, then reloads the whole task by id so the
// cache picks up the store-assigned subtask id and ordering.
func (c *Controller) AppendSubtask(ctx context.Context, taskID int64, text string) error {
	if _, err := c.store.AppendSubtask(ctx, taskID, text); err != nil {
		return err
	}
	return c.reloadTask(ctx, taskID)
}

// SetSubtaskStatus flips a subtask's status, then reloads the task by id.
func (c *Controller) SetSubtaskStatus(ctx context.Context, taskID, subtaskID int64, status domain.Status) error {
	if err := c.store.SetSubtaskStatus(ctx, taskID, subtaskID, status); err != nil {
		return err
	}
	return c.reloadTask(ctx, taskID)
}

// DeleteSubtask removes a subtask from the store and from the cached task.
func (c *Controller) DeleteSubtask(ctx context.Context, taskID, subtaskID int64) error {
	if err := c.store.DeleteSubtask(ctx, subtaskID); err != nil {
		return err
	}

	task := c.findTask(taskID)
	if task == nil {
		return nil
	}
	for i, st := range task.Subtasks {
		if st.ID == subtaskID {
			task.Subtasks = append(task.Subtasks[:i], task.Subtasks[i+1:]...)
			break
		}
	}

	if len(task.Subtasks) == 0 {
		c.subCursor = noSelection
	} else if c.subCursor != noSelection {
		c.subCursor = min(c.subCursor, len(task.Subtasks)-1)
	}
	c.refresh()
	return nil
}

// ClearAll empties the store and the cache.
func (c *Controller) ClearAll(ctx context.Context) error {
	if err := c.store.ClearAll(ctx); err != nil {
		return err
	}
	c.tasks = c.tasks[:0]
	c.refresh()
	return nil
}

// mutations addressed through the current selection (used by the TUI)

// MarkSelected sets the selected task's status; with nothing selected it is
// a no-op.
func (c *Controller) MarkSelected(ctx context.Context, status domain.Status) error {
	task := c.Selected()
	if task == nil {
		return nil
	}
	return c.SetStatus(ctx, task.ID, status)
}

// ConfirmDelete deletes the selected task and closes the confirmation.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if c.mode != ModeDeleteConfirm {
		return nil
	}
	task := c.Selected()
	c.CloseOverlay()
	if task == nil {
		return nil
	}
	return c.Delete(ctx, task.ID)
}

// ChoosePriority applies a priority to the selection and closes the picker.
func (c *Controller) ChoosePriority(ctx context.Context, priority domain.Priority) error {
	if c.mode != ModePriorityChange {
		return nil
	}
	task := c.Selected()
	c.CloseOverlay()
	if task == nil {
		return nil
	}
	return c.SetPriority(ctx, task.ID, priority)
}

// ToggleSelectedSubtask flips the highlighted subtask between Pending and
// Done.
func (c *Controller) ToggleSelectedSubtask(ctx context.Context) error {
	if c.mode != ModeDetail {
		return nil
	}
	task := c.DetailTask()
	st := c.SelectedSubtask()
	if task == nil || st == nil {
		return nil
	}
	return c.SetSubtaskStatus(ctx, task.ID, st.ID, domain.ToggleSubtaskStatus(st.Status))
}

// DeleteSelectedSubtask removes the highlighted subtask.
func (c *Controller) DeleteSelectedSubtask(ctx context.Context) error {
	if c.mode != ModeDetail {
		return nil
	}
	task := c.DetailTask()
	st := c.SelectedSubtask()
	if task == nil || st == nil {
		return nil
	}
	return c.DeleteSubtask(ctx, task.ID, st.ID)
}

// internals

func (c *Controller) findTask(id int64) *domain.Task {
	for _, task := range c.tasks {
		if task.ID == id {
			return task
		}
	}
	return nil
}

// reloadTask re-fetches one task from the store and swaps it into the cache
// wholesale. Session-local notes are carried over.
func (c *Controller) reloadTask(ctx context.Context, id int64) error {
	fresh, err := c.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for i, task := range c.tasks {
		if task.ID == id {
			fresh.Notes = task.Notes
			c.tasks[i] = fresh
			break
		}
	}

	if c.detailID == id && c.subCursor != noSelection {
		if len(fresh.Subtasks) == 0 {
			c.subCursor = noSelection
		} else {
			c.subCursor = min(c.subCursor, len(fresh.Subtasks)-1)
		}
	}
	c.refresh()
	return nil
}

// refresh re-derives the filtered view and clamps the cursor to it.
func (c *Controller) refresh() {
	c.filtered = filter.Match(c.tasks, c.query)

	switch {
	case len(c.filtered) == 0:
		c.cursor = noSelection
	case c.cursor == noSelection:
		c.cursor = 0
	case c.cursor >= len(c.filtered):
		c.cursor = len(c.filtered) - 1
	}
}
