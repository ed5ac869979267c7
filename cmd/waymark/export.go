// Export command dumps a game's records as JSONL files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/types"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export <game-id>",
	Short: "Export a game as JSONL files",
	Long: `Export writes the game's entities, threads, playthroughs, and
statuses as one JSONL file each under the output directory. Files are
written atomically; a partial export never overwrites a previous one.

Example:
  waymark export <game-id> --out ./backup`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", "", "output directory (required)")
	_ = exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		if err := store.ExportGame(args[0], exportDir); err != nil {
			return fmt.Errorf("export game: %w", err)
		}
		fmt.Printf("Exported game %s to %s\n", args[0], exportDir)
		return nil
	})
}
