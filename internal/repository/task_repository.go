package repository

import (
	"context"
	"errors"

	"taskdeck/internal/domain"
)

// ErrNotFound is returned when an update or delete target does not exist.
// The write is a no-op in that case; callers surface a message instead of
// treating zero rows affected as success.
var ErrNotFound = errors.New("not found")

// TaskStore is the persistence contract for tasks, subtasks, and the
// single-row API credential. Implementations report ErrNotFound for absent
// targets and never partially apply a bulk replace.
type TaskStore interface {
	// ListAll returns every task with its subtasks populated in insertion
	// order.
	ListAll(ctx context.Context) ([]*domain.Task, error)

	// GetByID fetches one task, subtasks included.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Insert stores a task and its subtasks, assigning IDs in place.
	Insert(ctx context.Context, task *domain.Task) error

	// Delete removes a task and its subtasks.
	Delete(ctx context.Context, id int64) error

	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	UpdatePriority(ctx context.Context, id int64, priority domain.Priority) error

	// AppendSubtask adds a subtask to an existing task and returns its ID.
	AppendSubtask(ctx context.Context, taskID int64, text string) (int64, error)
	SetSubtaskStatus(ctx context.Context, taskID, subtaskID int64, status domain.Status) error
	DeleteSubtask(ctx context.Context, subtaskID int64) error

	// ClearAll deletes every task and subtask.
	ClearAll(ctx context.Context) error

	// ReplaceAll clears both tables and repopulates them from tasks inside
	// one transaction: either everything is imported or the prior data is
	// left untouched.
	ReplaceAll(ctx context.Context, tasks []*domain.Task) error

	SetCredential(ctx context.Context, key string) error
	GetCredential(ctx context.Context) (string, error)
}
