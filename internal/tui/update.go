package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/controller"
	"taskdeck/internal/domain"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(4, msg.Height-8))
		m.notes.SetWidth(max(20, msg.Width-8))
		return m, nil

	case tea.KeyMsg:
		switch m.ctrl.Mode() {
		case controller.ModeSearching:
			return m.updateSearching(msg)
		case controller.ModeDetail:
			return m.updateDetail(msg)
		case controller.ModeDeleteConfirm:
			return m.updateDeleteConfirm(msg)
		case controller.ModePriorityChange:
			return m.updatePriorityChange(msg)
		case controller.ModeMainMenu:
			return m.updateMainMenu(msg)
		default:
			return m.updateBrowsing(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.ctrl.Previous()
		m.syncTable()

	case key.Matches(msg, m.keys.Down):
		m.ctrl.Next()
		m.syncTable()

	case key.Matches(msg, m.keys.Enter):
		m.ctrl.OpenDetail()

	case key.Matches(msg, m.keys.Search):
		m.ctrl.StartSearch()
		m.search.SetValue(m.ctrl.Query())
		m.search.Focus()
		return m, textBlink()

	case key.Matches(msg, m.keys.Done):
		m.apply(m.ctrl.MarkSelected(m.ctx(), domain.StatusDone))

	case key.Matches(msg, m.keys.Ongoing):
		m.apply(m.ctrl.MarkSelected(m.ctx(), domain.StatusOngoing))

	case key.Matches(msg, m.keys.Pending):
		m.apply(m.ctrl.MarkSelected(m.ctx(), domain.StatusPending))

	case key.Matches(msg, m.keys.ChangePriority):
		m.ctrl.OpenPriorityChange()

	case key.Matches(msg, m.keys.Delete):
		m.ctrl.OpenDeleteConfirm()

	case key.Matches(msg, m.keys.Menu):
		m.ctrl.ToggleMainMenu()
	}

	return m, nil
}

func (m Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.CancelSearch()
		m.search.SetValue("")
		m.search.Blur()
		m.syncTable()
		return m, nil

	case "enter":
		m.ctrl.CommitSearch()
		m.search.Blur()
		m.syncTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetQuery(m.search.Value())
	m.syncTable()
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl.EditingNotes() {
		switch msg.String() {
		case "esc":
			m.ctrl.FinishNotesEdit(m.notes.Value())
			m.notes.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.ctrl.CloseOverlay()
		m.syncTable()

	case key.Matches(msg, m.keys.Up):
		m.ctrl.PreviousSubtask()

	case key.Matches(msg, m.keys.Down):
		m.ctrl.NextSubtask()

	case key.Matches(msg, m.keys.ToggleSubtask):
		m.apply(m.ctrl.ToggleSelectedSubtask(m.ctx()))

	case key.Matches(msg, m.keys.DeleteSubtask):
		m.apply(m.ctrl.DeleteSelectedSubtask(m.ctx()))

	case key.Matches(msg, m.keys.EditNotes):
		if task := m.ctrl.DetailTask(); task != nil {
			m.ctrl.StartNotesEdit()
			m.notes.SetValue(task.Notes)
			m.notes.Focus()
			return m, textBlink()
		}
	}

	return m, nil
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.apply(m.ctrl.ConfirmDelete(m.ctx()))
		m.syncTable()
	case "n", "N", "esc":
		m.ctrl.CloseOverlay()
		m.syncTable()
	}
	return m, nil
}

func (m Model) updatePriorityChange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var priority domain.Priority
	switch msg.String() {
	case "h", "H":
		priority = domain.PriorityHigh
	case "m", "M":
		priority = domain.PriorityMedium
	case "l", "L":
		priority = domain.PriorityLow
	case "esc":
		m.ctrl.CloseOverlay()
		m.syncTable()
		return m, nil
	default:
		return m, nil
	}

	m.apply(m.ctrl.ChoosePriority(m.ctx(), priority))
	m.syncTable()
	return m, nil
}

func (m Model) updateMainMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Menu), key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.ctrl.CloseOverlay()
		m.syncTable()
	}
	return m, nil
}

// apply records a store failure in the status line. The controller already
// guarantees the cache was not touched.
func (m *Model) apply(err error) {
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.syncTable()
}

func textBlink() tea.Cmd {
	return textinput.Blink
}
