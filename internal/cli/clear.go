package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/repository"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"flush"},
	Short:   "Delete every task",
	RunE:    runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes && !confirm("Delete ALL tasks?") {
		fmt.Println("Cancelled.")
		return nil
	}

	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		if err := store.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Println("✓ All tasks deleted")
		return nil
	})
}
