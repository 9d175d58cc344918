package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
)

// credentialName keys the single row of the model table.
const credentialName = "gemini"

type TaskStore struct {
	db *DB
}

func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

var _ repository.TaskStore = (*TaskStore)(nil)

// ListAll performs two levels of retrieval: tasks in id order, then each
// task's subtasks in insertion order.
func (s *TaskStore) ListAll(ctx context.Context) ([]*domain.Task, error) {
	query := `
		SELECT id, priority, topic, text, desc, date_added, due, status, owner
		FROM tasks
		ORDER BY id
	`

	var tasks []*domain.Task
	if err := s.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	for _, task := range tasks {
		if err := s.loadSubtasks(ctx, task); err != nil {
			return nil, err
		}
	}

	return tasks, nil
}

func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, priority, topic, text, desc, date_added, due, status, owner
		FROM tasks
		WHERE id = ?
	`

	var task domain.Task
	if err := s.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.loadSubtasks(ctx, &task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *TaskStore) loadSubtasks(ctx context.Context, task *domain.Task) error {
	query := `
		SELECT id, task_id, text, status
		FROM subtasks
		WHERE task_id = ?
		ORDER BY id
	`

	task.Subtasks = make([]domain.Subtask, 0)
	if err := s.db.SelectContext(ctx, &task.Subtasks, query, task.ID); err != nil {
		return fmt.Errorf("failed to load subtasks for task %d: %w", task.ID, err)
	}

	return nil
}

func (s *TaskStore) Insert(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	return s.insertWith(ctx, s.db, task)
}

// execer covers both *sqlx.DB and *sqlx.Tx so inserts can run standalone or
// inside the bulk-replace transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (s *TaskStore) insertWith(ctx context.Context, e execer, task *domain.Task) error {
	query := `
		INSERT INTO tasks (priority, topic, text, desc, date_added, due, status, owner)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := e.ExecContext(ctx, query,
		task.Priority,
		task.Topic,
		task.Title,
		task.Description,
		task.CreatedOn,
		task.Due,
		task.Status,
		task.Owner,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	task.ID = id

	for i := range task.Subtasks {
		st := &task.Subtasks[i]
		if st.Status == "" {
			st.Status = domain.StatusPending
		}
		res, err := e.ExecContext(ctx,
			`INSERT INTO subtasks (task_id, text, status) VALUES (?, ?, ?)`,
			id, st.Text, st.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert subtask: %w", err)
		}
		stID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get subtask ID: %w", err)
		}
		st.ID = stID
		st.TaskID = id
	}

	return nil
}

// Delete removes the task and its subtasks in one transaction. Subtask
// cleanup is explicit rather than relying on a database-level cascade.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks WHERE task_id = ?`, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete subtasks: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if err := requireChange(result, fmt.Sprintf("task %d", id)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}

func (s *TaskStore) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	return requireChange(result, fmt.Sprintf("task %d", id))
}

func (s *TaskStore) UpdatePriority(ctx context.Context, id int64, priority domain.Priority) error {
	result, err := s.db.ExecContext(ctx, `UPDATE tasks SET priority = ? WHERE id = ?`, priority, id)
	if err != nil {
		return fmt.Errorf("failed to update priority: %w", err)
	}

	return requireChange(result, fmt.Sprintf("task %d", id))
}

func (s *TaskStore) AppendSubtask(ctx context.Context, taskID int64, text string) (int64, error) {
	// verify the parent exists so the subtask never dangles
	var exists int
	if err := s.db.GetContext(ctx, &exists, `SELECT COUNT(*) FROM tasks WHERE id = ?`, taskID); err != nil {
		return 0, fmt.Errorf("failed to check task: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("task %d: %w", taskID, repository.ErrNotFound)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO subtasks (task_id, text, status) VALUES (?, ?, ?)`,
		taskID, text, domain.StatusPending,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append subtask: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get subtask ID: %w", err)
	}

	return id, nil
}

func (s *TaskStore) SetSubtaskStatus(ctx context.Context, taskID, subtaskID int64, status domain.Status) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE subtasks SET status = ? WHERE task_id = ? AND id = ?`,
		status, taskID, subtaskID,
	)
	if err != nil {
		return fmt.Errorf("failed to set subtask status: %w", err)
	}

	return requireChange(result, fmt.Sprintf("subtask %d of task %d", subtaskID, taskID))
}

func (s *TaskStore) DeleteSubtask(ctx context.Context, subtaskID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = ?`, subtaskID)
	if err != nil {
		return fmt.Errorf("failed to delete subtask: %w", err)
	}

	return requireChange(result, fmt.Sprintf("subtask %d", subtaskID))
}

func (s *TaskStore) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM subtasks`); err != nil {
		return fmt.Errorf("failed to clear subtasks: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	return nil
}

// ReplaceAll clears both tables and reinserts tasks in a single transaction.
func (s *TaskStore) ReplaceAll(ctx context.Context, tasks []*domain.Task) error {
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.replaceAllTx(ctx, tx, tasks); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	return nil
}

func (s *TaskStore) replaceAllTx(ctx context.Context, tx *sqlx.Tx, tasks []*domain.Task) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM subtasks`); err != nil {
		return fmt.Errorf("failed to clear subtasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	for _, task := range tasks {
		if err := s.insertWith(ctx, tx, task); err != nil {
			return err
		}
	}

	return nil
}

// SetCredential replaces the single credential row.
func (s *TaskStore) SetCredential(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM model`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO model (name, apikey) VALUES (?, ?)`,
		credentialName, key,
	); err != nil {
		return fmt.Errorf("failed to set credential: %w", err)
	}

	return nil
}

func (s *TaskStore) GetCredential(ctx context.Context) (string, error) {
	var key string
	err := s.db.GetContext(ctx, &key, `SELECT apikey FROM model WHERE name = ?`, credentialName)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("credential: %w", repository.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential: %w", err)
	}

	return key, nil
}

// requireChange converts a zero-rows-affected result into ErrNotFound.
func requireChange(result sql.Result, what string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
	}

	return nil
}
