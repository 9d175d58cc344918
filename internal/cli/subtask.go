package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
)

var subtaskCmd = &cobra.Command{
	Use:   "subtask <task-id> <text>",
	Short: "Add a subtask to an existing task",
	Long: `Add a subtask under the task with the given id.

Examples:
  taskdeck subtask 3 "write the intro section"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSubtask,
}

func init() {
	rootCmd.AddCommand(subtaskCmd)
}

func runSubtask(cmd *cobra.Command, args []string) error {
	taskID, err := parseID(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")

	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		id, err := store.AppendSubtask(ctx, taskID, text)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Added subtask %d to task %d\n", id, taskID)
		return nil
	})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid task id %q", domain.ErrValidation, s)
	}
	return id, nil
}
