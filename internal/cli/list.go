package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/display"
	"taskdeck/internal/domain"
	"taskdeck/internal/markdown"
	"taskdeck/internal/repository"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Open the interactive task view",
	Long:    `Open the same interactive full-screen view as running taskdeck with no arguments.`,
	RunE:    runTUI,
}

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print all tasks as a table and exit",
	Args:  cobra.NoArgs,
	RunE:  runPrint,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full, subtasks and all",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(showCmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		tasks, err := store.ListAll(ctx)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks yet. Add one with 'taskdeck add'.")
			return nil
		}
		return renderTaskTable(os.Stdout, tasks)
	})
}

func renderTaskTable(out io.Writer, tasks []*domain.Task) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tP\tTOPIC\tTITLE\tSTATUS\tDUE\tSUB")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s %s\t%s\t%s\n",
			t.ID,
			display.GetPriorityIcon(t.Priority),
			t.Topic,
			t.Title,
			display.GetStatusIcon(t.Status),
			t.Status,
			display.FormatDue(t.Due),
			display.SubtaskProgress(t),
		)
	}
	return w.Flush()
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		task, err := store.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fmt.Print(markdown.Render(markdown.TaskDocument(task), 80))
		return nil
	})
}
