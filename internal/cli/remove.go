package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/repository"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Delete a task and its subtasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		if err := store.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("✓ Removed task %d\n", id)
		return nil
	})
}
