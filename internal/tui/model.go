// Package tui is the interactive terminal frontend. All state lives in the
// controller; the bubbles widgets here are pure views that get rebuilt from
// it on every change.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/controller"
	"taskdeck/internal/display"
)

type Model struct {
	ctrl   *controller.Controller
	keys   keyMap
	styles styles

	table  table.Model
	search textinput.Model
	notes  textarea.Model

	width  int
	height int

	errMsg   string
	quitting bool
}

func NewModel(ctrl *controller.Controller, theme string) Model {
	s := newStyles(theme)

	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "P", Width: 3},
		{Title: "TOPIC", Width: 12},
		{Title: "TITLE", Width: 32},
		{Title: "STATUS", Width: 9},
		{Title: "DUE", Width: 10},
		{Title: "SUB", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	ts.Selected = s.Selected
	t.SetStyles(ts)

	search := textinput.New()
	search.Placeholder = "type to filter..."
	search.Prompt = "/ "
	search.CharLimit = 120

	notes := textarea.New()
	notes.Placeholder = "notes for this task..."
	notes.SetHeight(5)

	m := Model{
		ctrl:   ctrl,
		keys:   defaultKeyMap(),
		styles: s,
		table:  t,
		search: search,
		notes:  notes,
	}
	m.syncTable()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// syncTable rebuilds the table rows and cursor from the controller. The
// table never owns selection state.
func (m *Model) syncTable() {
	tasks := m.ctrl.Filtered()
	rows := make([]table.Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, table.Row{
			strconv.FormatInt(t.ID, 10),
			display.GetPriorityIcon(t.Priority),
			t.Topic,
			t.Title,
			string(t.Status),
			display.FormatDue(t.Due),
			display.SubtaskProgress(t),
		})
	}
	m.table.SetRows(rows)

	if idx, ok := m.ctrl.Selection(); ok {
		m.table.SetCursor(idx)
	} else {
		m.table.SetCursor(0)
	}
}

// ctx returns the context store calls run under. Updates are synchronous;
// SQLite on local disk is fast enough to not need async plumbing.
func (m Model) ctx() context.Context {
	return context.Background()
}
