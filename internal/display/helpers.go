package display

import (
	"fmt"

	"taskdeck/internal/domain"
)

func GetStatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusDone:
		return "✓"
	case domain.StatusOngoing:
		return "⚡"
	case domain.StatusPending:
		return "○"
	default:
		return "?"
	}
}

func GetPriorityIcon(priority domain.Priority) string {
	switch priority {
	case domain.PriorityHigh:
		return "⬆"
	case domain.PriorityMedium:
		return "➡"
	case domain.PriorityLow:
		return "⬇"
	default:
		return "?"
	}
}

func FormatDue(due string) string {
	if due == "" || due == domain.NoDueDate {
		return "-"
	}
	return due
}

// SubtaskProgress renders "2/5" style completion, or "-" for tasks without
// subtasks.
func SubtaskProgress(task *domain.Task) string {
	if len(task.Subtasks) == 0 {
		return "-"
	}
	done := 0
	for _, st := range task.Subtasks {
		if st.Status == domain.StatusDone {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(task.Subtasks))
}
