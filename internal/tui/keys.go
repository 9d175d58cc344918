package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding

	Search key.Binding

	Done           key.Binding
	Ongoing        key.Binding
	Pending        key.Binding
	ChangePriority key.Binding
	Delete         key.Binding

	ToggleSubtask key.Binding
	DeleteSubtask key.Binding
	EditNotes     key.Binding

	Menu key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open task"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		Search: key.NewBinding(
			key.WithKeys("i", "/"),
			key.WithHelp("i", "search"),
		),

		Done: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "mark done"),
		),
		Ongoing: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "mark ongoing"),
		),
		Pending: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "mark pending"),
		),
		ChangePriority: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "change priority"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete task"),
		),

		ToggleSubtask: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle subtask"),
		),
		DeleteSubtask: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete subtask"),
		),
		EditNotes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "edit notes"),
		),

		Menu: key.NewBinding(
			key.WithKeys("m", "?"),
			key.WithHelp("m", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Search, k.Menu, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Search, k.Done, k.Ongoing, k.Pending},
		{k.ChangePriority, k.Delete},
		{k.ToggleSubtask, k.DeleteSubtask, k.EditNotes},
		{k.Menu, k.Quit},
	}
}
