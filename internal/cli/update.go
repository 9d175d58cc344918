package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
)

var (
	updateStatus   string
	updatePriority string
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a task's status or priority",
	Long: `Change a task's status or priority.

Examples:
  taskdeck update 3 --status ongoing
  taskdeck update 3 --priority high`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
			if err := store.UpdateStatus(ctx, id, domain.StatusDone); err != nil {
				return err
			}
			fmt.Printf("✓ Task %d done\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(doneCmd)

	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "New status (pending, ongoing, done)")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority (low, medium, high)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if updateStatus == "" && updatePriority == "" {
		return fmt.Errorf("nothing to update, pass --status or --priority")
	}

	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		if updateStatus != "" {
			status, err := domain.ParseStatus(updateStatus)
			if err != nil {
				return err
			}
			if err := store.UpdateStatus(ctx, id, status); err != nil {
				return err
			}
			fmt.Printf("✓ Task %d status set to %s\n", id, status)
		}

		if updatePriority != "" {
			priority, err := domain.ParsePriority(updatePriority)
			if err != nil {
				return err
			}
			if err := store.UpdatePriority(ctx, id, priority); err != nil {
				return err
			}
			fmt.Printf("✓ Task %d priority set to %s\n", id, priority)
		}
		return nil
	})
}
