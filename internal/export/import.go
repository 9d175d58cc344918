package export

import (
	"context"
	"fmt"
	"io"

	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
)

// Importer replaces the whole store with the contents of an export file.
type Importer struct {
	store repository.TaskStore
}

func NewImporter(store repository.TaskStore) *Importer {
	return &Importer{store: store}
}

// Import decodes r in the given format and atomically replaces every task
// in the store. On decode or validation failure the store is untouched.
func (i *Importer) Import(ctx context.Context, r io.Reader, format Format) (int, error) {
	var (
		tasks []*domain.Task
		err   error
	)
	switch format {
	case FormatJSON:
		tasks, err = ReadJSON(r)
	case FormatCSV:
		tasks, err = ReadCSV(r)
	default:
		return 0, fmt.Errorf("unsupported import format %q", format)
	}
	if err != nil {
		return 0, err
	}

	if err := i.store.ReplaceAll(ctx, tasks); err != nil {
		return 0, fmt.Errorf("failed to replace tasks: %w", err)
	}
	return len(tasks), nil
}

// Export writes every task in the store to w in the given format.
func Export(ctx context.Context, w io.Writer, store repository.TaskStore, format Format) error {
	tasks, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	switch format {
	case FormatJSON:
		return WriteJSON(w, tasks)
	case FormatCSV:
		return WriteCSV(w, tasks)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
