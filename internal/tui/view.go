package tui

import (
	"fmt"
	"strings"

	"taskdeck/internal/controller"
	"taskdeck/internal/markdown"
)

// renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render(" taskdeck "))
	b.WriteString("\n\n")

	switch m.ctrl.Mode() {
	case controller.ModeDetail:
		b.WriteString(m.renderDetail())
	case controller.ModeDeleteConfirm:
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(m.renderDeleteConfirm())
	case controller.ModePriorityChange:
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(m.renderPriorityPicker())
	case controller.ModeMainMenu:
		b.WriteString(m.renderMenu())
	default:
		if m.ctrl.Mode() == controller.ModeSearching {
			b.WriteString(m.search.View())
			b.WriteString("\n\n")
		}
		b.WriteString(m.table.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderDetail() string {
	task := m.ctrl.DetailTask()
	if task == nil {
		return ""
	}

	width := m.width - 6
	if width < 40 {
		width = 40
	}

	var b strings.Builder
	b.WriteString(markdown.Render(markdown.TaskDocument(task), width))

	if subIdx, ok := m.ctrl.SubtaskSelection(); ok && subIdx < len(task.Subtasks) {
		st := task.Subtasks[subIdx]
		b.WriteString(m.styles.StatusBar.Render(
			fmt.Sprintf("subtask %d/%d: %s", subIdx+1, len(task.Subtasks), st.Text)))
		b.WriteString("\n")
	}

	if m.ctrl.EditingNotes() {
		b.WriteString("\n")
		b.WriteString(m.notes.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("esc to save notes"))
	}

	return b.String()
}

func (m Model) renderDeleteConfirm() string {
	task := m.ctrl.Selected()
	if task == nil {
		return ""
	}
	msg := fmt.Sprintf("Delete %q and its subtasks? (y/n)", task.Title)
	return m.styles.Overlay.Render(m.styles.Error.Render(msg))
}

func (m Model) renderPriorityPicker() string {
	var b strings.Builder
	b.WriteString("Set priority:\n\n")
	b.WriteString(m.styles.PriorityHigh.Render("  [h] High"))
	b.WriteString("\n")
	b.WriteString(m.styles.PriorityMedium.Render("  [m] Medium"))
	b.WriteString("\n")
	b.WriteString(m.styles.PriorityLow.Render("  [l] Low"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("esc to cancel"))
	return m.styles.Overlay.Render(b.String())
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString("Keys\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-8s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	return m.styles.Overlay.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStatusBar() string {
	if m.errMsg != "" {
		return m.styles.Error.Render("error: " + m.errMsg)
	}

	total := len(m.ctrl.Tasks())
	shown := len(m.ctrl.Filtered())

	var parts []string
	if query := m.ctrl.Query(); query != "" {
		parts = append(parts, fmt.Sprintf("filter: %q", query))
	}
	if shown == total {
		parts = append(parts, fmt.Sprintf("%d tasks", total))
	} else {
		parts = append(parts, fmt.Sprintf("%d of %d tasks", shown, total))
	}

	return m.styles.StatusBar.Render(strings.Join(parts, "  •  "))
}

func (m Model) renderHelp() string {
	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}
