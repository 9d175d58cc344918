package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/controller"
	"taskdeck/internal/domain"
	"taskdeck/internal/repository"
	"taskdeck/internal/repository/sqlite"
	"taskdeck/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "taskdeck - a keyboard-driven todo list for the terminal",
	Long: `taskdeck keeps your tasks in a local SQLite database and gives you two
ways in: a set of quick one-shot commands, and an interactive full-screen
view that opens when you run taskdeck with no arguments.`,
	RunE:          runTUI,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if recoverable(err) {
			return
		}
		os.Exit(1)
	}
}

// recoverable reports whether the error is an ordinary outcome of a
// one-shot command (unknown id, rejected input) rather than a startup
// failure. Only the latter get a non-zero exit.
func recoverable(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, domain.ErrValidation)
}

// withStore opens the configured database, runs fn, and closes it again.
// Every command goes through here.
func withStore(fn func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sqlite.NewDB(sqlite.Config{Path: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return fn(context.Background(), cfg, sqlite.NewTaskStore(db))
}

func runTUI(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		ctrl := controller.New(store)
		if err := ctrl.Load(ctx); err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}

		p := tea.NewProgram(tui.NewModel(ctrl, cfg.Theme), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running interactive view: %w", err)
		}
		return nil
	})
}
