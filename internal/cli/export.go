package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/config"
	"taskdeck/internal/export"
	"taskdeck/internal/repository"
)

var (
	exportFormat string
	exportOut    string

	importFormat string
	importYes    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tasks as JSON or CSV",
	Long: `Export all tasks, subtasks included, to stdout or a file.

Examples:
  taskdeck export --format json > tasks.json
  taskdeck export --format csv -o tasks.csv`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all tasks from an export file",
	Long: `Import tasks from a file produced by 'taskdeck export'.

This REPLACES the entire task list. The previous contents are gone after a
successful import, so you will be asked to confirm first.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, csv)")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to file instead of stdout")

	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Import format (json, csv); inferred from the file name when omitted")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, ok := export.ParseFormat(exportFormat)
	if !ok {
		return fmt.Errorf("unknown format %q, use json or csv", exportFormat)
	}

	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := export.Export(ctx, out, store, format); err != nil {
			return err
		}
		if exportOut != "" {
			fmt.Printf("✓ Exported to %s\n", exportOut)
		}
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	name := importFormat
	if name == "" {
		switch {
		case strings.HasSuffix(path, ".csv"):
			name = "csv"
		default:
			name = "json"
		}
	}
	format, ok := export.ParseFormat(name)
	if !ok {
		return fmt.Errorf("unknown format %q, use json or csv", name)
	}

	if !importYes && !confirm(fmt.Sprintf("Replace ALL tasks with the contents of %s?", path)) {
		fmt.Println("Import cancelled.")
		return nil
	}

	return withStore(func(ctx context.Context, cfg *config.Config, store repository.TaskStore) error {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()

		n, err := export.NewImporter(store).Import(ctx, f, format)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Imported %d tasks\n", n)
		return nil
	})
}

// confirm asks a y/n question on stdin. Anything but y counts as no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
