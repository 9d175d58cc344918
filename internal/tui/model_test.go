package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/controller"
	"taskdeck/internal/domain"
	"taskdeck/internal/repository/sqlite"
)

func setupModel(t *testing.T, titles ...string) (Model, *controller.Controller) {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.NewDB(sqlite.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewTaskStore(db)
	for _, title := range titles {
		require.NoError(t, store.Insert(ctx, domain.NewTask(title)))
	}

	ctrl := controller.New(store)
	require.NoError(t, ctrl.Load(ctx))
	return NewModel(ctrl, ""), ctrl
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNavigationMovesSelection(t *testing.T) {
	m, ctrl := setupModel(t, "alpha", "beta", "gamma")

	m = press(m, "j")
	assert.Equal(t, "Beta", ctrl.Selected().Title)

	m = press(m, "down")
	assert.Equal(t, "Gamma", ctrl.Selected().Title)

	m = press(m, "k", "up")
	assert.Equal(t, "Alpha", ctrl.Selected().Title)
}

func TestSearchFlow(t *testing.T) {
	m, ctrl := setupModel(t, "write report", "call plumber")

	m = press(m, "i")
	assert.Equal(t, controller.ModeSearching, ctrl.Mode())

	m = press(m, "r", "e", "p")
	assert.Equal(t, "rep", ctrl.Query())
	assert.Len(t, ctrl.Filtered(), 1)

	m = press(m, "enter")
	assert.Equal(t, controller.ModeBrowsing, ctrl.Mode())
	assert.Equal(t, "rep", ctrl.Query())

	m = press(m, "i", "esc")
	assert.Equal(t, "", ctrl.Query())
	assert.Len(t, ctrl.Filtered(), 2)
}

func TestStatusKeysPersist(t *testing.T) {
	ctx := context.Background()
	m, ctrl := setupModel(t, "alpha")

	m = press(m, "d")
	assert.Equal(t, domain.StatusDone, ctrl.Selected().Status)

	m = press(m, "o")
	assert.Equal(t, domain.StatusOngoing, ctrl.Selected().Status)

	// survives a reload from the store
	require.NoError(t, ctrl.Load(ctx))
	assert.Equal(t, domain.StatusOngoing, ctrl.Selected().Status)

	_ = m
}

func TestDeleteConfirmFlow(t *testing.T) {
	m, ctrl := setupModel(t, "alpha", "beta")

	m = press(m, "x")
	assert.Equal(t, controller.ModeDeleteConfirm, ctrl.Mode())

	// n cancels
	m = press(m, "n")
	assert.Equal(t, controller.ModeBrowsing, ctrl.Mode())
	assert.Len(t, ctrl.Tasks(), 2)

	// y deletes
	m = press(m, "x", "y")
	assert.Len(t, ctrl.Tasks(), 1)
	assert.Equal(t, "Beta", ctrl.Selected().Title)
}

func TestPriorityPickerFlow(t *testing.T) {
	m, ctrl := setupModel(t, "alpha")

	m = press(m, "!")
	assert.Equal(t, controller.ModePriorityChange, ctrl.Mode())

	m = press(m, "h")
	assert.Equal(t, controller.ModeBrowsing, ctrl.Mode())
	assert.Equal(t, domain.PriorityHigh, ctrl.Selected().Priority)
}

func TestDetailSubtaskFlow(t *testing.T) {
	ctx := context.Background()
	m, ctrl := setupModel(t, "alpha")

	require.NoError(t, ctrl.AppendSubtask(ctx, ctrl.Selected().ID, "step one"))

	m = press(m, "enter")
	assert.Equal(t, controller.ModeDetail, ctrl.Mode())

	m = press(m, "down", "space")
	assert.Equal(t, domain.StatusDone, ctrl.DetailTask().Subtasks[0].Status)

	m = press(m, "esc")
	assert.Equal(t, controller.ModeBrowsing, ctrl.Mode())
}

func TestNotesEditing(t *testing.T) {
	m, ctrl := setupModel(t, "alpha")

	m = press(m, "enter", "n")
	assert.True(t, ctrl.EditingNotes())

	m = press(m, "h", "i")
	m = press(m, "esc")
	assert.False(t, ctrl.EditingNotes())
	assert.Equal(t, "hi", ctrl.DetailTask().Notes)
}

func TestViewRenders(t *testing.T) {
	m, ctrl := setupModel(t, "alpha", "beta")

	out := m.View()
	assert.Contains(t, out, "taskdeck")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "2 tasks")

	m = press(m, "i", "b", "e")
	out = m.View()
	assert.Contains(t, out, "1 of 2 tasks")

	_ = ctrl
}

func TestMenuToggle(t *testing.T) {
	m, ctrl := setupModel(t, "alpha")

	m = press(m, "m")
	assert.Equal(t, controller.ModeMainMenu, ctrl.Mode())
	assert.Contains(t, m.View(), "Keys")

	m = press(m, "esc")
	assert.Equal(t, controller.ModeBrowsing, ctrl.Mode())
}
