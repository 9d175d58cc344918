package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/ai"
	"taskdeck/internal/config"
	"taskdeck/internal/repository"
)

var credentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Manage the API key used by 'taskdeck ask'",
}

var credentialSetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
			if err := store.SetCredential(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("✓ API key stored")
			return nil
		})
	},
}

var credentialShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key, partially masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
			key, err := store.GetCredential(ctx)
			if errors.Is(err, repository.ErrNotFound) {
				fmt.Println("No API key stored. Run 'taskdeck credential set <key>'.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(maskKey(key))
			return nil
		})
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about your tasks",
	Long: `Send your task list and a question to the configured model and print
the answer. Needs an API key, see 'taskdeck credential set'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
			answer, err := ai.New(store, "").Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(credentialCmd)
	credentialCmd.AddCommand(credentialSetCmd)
	credentialCmd.AddCommand(credentialShowCmd)
	rootCmd.AddCommand(askCmd)
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
