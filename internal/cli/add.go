package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
)

var (
	addPriority    string
	addTopic       string
	addDescription string
	addDue         string
	addOwner       string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task to the list.

Examples:
  taskdeck add "Write report"
  taskdeck add "Fix login bug" --priority high --topic Work
  taskdeck add "Buy groceries" --due 20-03-26`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Task priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addTopic, "topic", "t", "", "Topic the task belongs to")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Longer description")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date in dd-mm-yy form")
	addCmd.Flags().StringVar(&addOwner, "owner", "", "Task owner")
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		task := domain.NewTask(strings.Join(args, " "))
		task.Owner = cfg.Owner

		if addPriority != "" {
			priority, err := domain.ParsePriority(addPriority)
			if err != nil {
				return err
			}
			task.Priority = priority
		}
		if addTopic != "" {
			task.Topic = domain.Capitalize(addTopic)
		}
		if addDescription != "" {
			task.Description = domain.Capitalize(addDescription)
		}
		if addDue != "" {
			task.Due = addDue
		}
		if addOwner != "" {
			task.Owner = addOwner
		}

		if err := store.Insert(ctx, task); err != nil {
			return err
		}

		fmt.Printf("✓ Added task %d: %s\n", task.ID, task.Title)
		return nil
	})
}
