package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ErrValidation marks input rejected before any store write.
var ErrValidation = errors.New("validation error")

// task priority
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// task status
type Status string

const (
	StatusPending Status = "Pending"
	StatusOngoing Status = "Ongoing"
	StatusDone    Status = "Done"
)

// NoDueDate is the sentinel stored when a task has no due date.
const NoDueDate = "none due"

// CreatedOnFormat is the dd-mm-yy layout used for the creation date.
const CreatedOnFormat = "02-01-06"

const defaultDescription = "No description provided"

type Task struct {
	ID          int64     `db:"id" json:"id"`
	Priority    Priority  `db:"priority" json:"priority"`
	Topic       string    `db:"topic" json:"topic"`
	Title       string    `db:"text" json:"title"`
	Description string    `db:"desc" json:"desc"`
	CreatedOn   string    `db:"date_added" json:"created_on"`
	Due         string    `db:"due" json:"due"`
	Status      Status    `db:"status" json:"status"`
	Owner       string    `db:"owner" json:"owner"`
	Subtasks    []Subtask `db:"-" json:"subtasks"`

	// Notes is session-local scratch text; the stored schema has no notes
	// column, but notes still participate in fuzzy filtering.
	Notes string `db:"-" json:"notes,omitempty"`
}

type Subtask struct {
	ID     int64  `db:"id" json:"subtask_id"`
	TaskID int64  `db:"task_id" json:"task_id"`
	Text   string `db:"text" json:"text"`
	Status Status `db:"status" json:"status"`
}

// NewTask builds a task with the standard defaults applied.
func NewTask(title string) *Task {
	return &Task{
		Priority:    PriorityMedium,
		Topic:       "General",
		Title:       Capitalize(title),
		Description: defaultDescription,
		CreatedOn:   time.Now().Format(CreatedOnFormat),
		Due:         NoDueDate,
		Status:      StatusPending,
		Owner:       "You",
		Subtasks:    make([]Subtask, 0),
	}
}

func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	}

	if !isValidPriority(t.Priority) {
		return fmt.Errorf("%w: invalid priority %q: must be low, medium, or high", ErrValidation, t.Priority)
	}

	if !isValidStatus(t.Status) {
		return fmt.Errorf("%w: invalid status %q: must be pending, ongoing, or done", ErrValidation, t.Status)
	}

	for _, st := range t.Subtasks {
		if strings.TrimSpace(st.Text) == "" {
			return fmt.Errorf("%w: subtask text cannot be empty", ErrValidation)
		}
		// empty is allowed here; the store fills in Pending on insert
		if st.Status != "" && st.Status != StatusPending && st.Status != StatusDone {
			return fmt.Errorf("%w: invalid subtask status %q: must be pending or done", ErrValidation, st.Status)
		}
	}

	return nil
}

// ParsePriority normalizes a free-form priority string to the closed set.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium", "normal":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: priority must be 'low', 'medium', or 'high', got %q", ErrValidation, s)
	}
}

// ParseStatus normalizes a free-form status string to the closed set.
// "completed" and "complete" map to Done so the store only ever sees one
// canonical done value.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "ongoing", "in_progress", "in progress":
		return StatusOngoing, nil
	case "done", "completed", "complete":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("%w: status must be 'pending', 'ongoing', or 'done', got %q", ErrValidation, s)
	}
}

func isValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusOngoing, StatusDone:
		return true
	default:
		return false
	}
}

// ToggleSubtaskStatus flips a subtask between Pending and Done.
func ToggleSubtaskStatus(s Status) Status {
	if s == StatusDone {
		return StatusPending
	}
	return StatusDone
}

// Capitalize upper-cases the first rune, leaving the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
