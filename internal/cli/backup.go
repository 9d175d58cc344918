package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"taskdeck/internal/backup"
	"taskdeck/internal/config"
	"taskdeck/internal/repository"
)

var backupNoPush bool

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot all tasks into a local git repository",
	Long: `Write a JSON snapshot of every task into a git repository under the
config directory and commit it. When a remote is configured (repo_name in
the config file) the snapshot is pushed there too.`,
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().BoolVar(&backupNoPush, "no-push", false, "Commit locally without pushing")
}

func runBackup(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		mgr := backup.NewManager(filepath.Join(config.GetConfigDir(), "backup"), cfg.RepoName)

		if err := mgr.Snapshot(ctx, store); err != nil {
			return err
		}
		fmt.Printf("✓ Snapshot committed in %s\n", mgr.Dir())

		if backupNoPush || cfg.RepoName == "" {
			return nil
		}
		if err := mgr.Push(); err != nil {
			return err
		}
		fmt.Printf("✓ Pushed to %s\n", cfg.RepoName)
		return nil
	})
}
