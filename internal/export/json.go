package export

import (
	"encoding/json"
	"fmt"
	"io"

	"taskdeck/internal/domain"
)

// WriteJSON emits the full task list as an indented JSON array, subtasks
// nested under their tasks.
func WriteJSON(w io.Writer, tasks []*domain.Task) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(tasks); err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON array produced by WriteJSON and validates every
// task before handing the list back.
func ReadJSON(r io.Reader) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := json.NewDecoder(r).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", task.ID, err)
		}
	}
	return tasks, nil
}
