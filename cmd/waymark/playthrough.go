// Playthrough commands manage player runs through a game.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/types"
)

var (
	ptGame string
	ptName string
)

var playthroughCmd = &cobra.Command{
	Use:   "playthrough",
	Short: "Manage playthroughs",
}

var ptStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new playthrough",
	Long: `Start creates a playthrough of a game. All entity statuses and the
player position are scoped to the playthrough; a fresh one sees every
entity at its default status and has no position.

Example:
  waymark playthrough start --game <game-id> --name "first run"`,
	RunE: runPlaythroughStart,
}

var ptListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playthroughs of a game",
	RunE:  runPlaythroughList,
}

var ptDeleteCmd = &cobra.Command{
	Use:   "delete <playthrough-id>",
	Short: "Delete a playthrough and its statuses",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaythroughDelete,
}

func init() {
	ptStartCmd.Flags().StringVar(&ptGame, "game", "", "game ID (required)")
	ptStartCmd.Flags().StringVar(&ptName, "name", "", "name for the playthrough (required)")
	_ = ptStartCmd.MarkFlagRequired("game")
	_ = ptStartCmd.MarkFlagRequired("name")

	ptListCmd.Flags().StringVar(&ptGame, "game", "", "game ID (required)")
	_ = ptListCmd.MarkFlagRequired("game")

	playthroughCmd.AddCommand(ptStartCmd)
	playthroughCmd.AddCommand(ptListCmd)
	playthroughCmd.AddCommand(ptDeleteCmd)
}

func runPlaythroughStart(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		pt, err := store.CreatePlaythrough(ptGame, ptName)
		if err != nil {
			return fmt.Errorf("create playthrough: %w", err)
		}
		if flagJSON {
			return printJSON(pt)
		}
		fmt.Printf("Started playthrough: %s\n", pt.PlaythroughID)
		return nil
	})
}

func runPlaythroughList(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		pts, err := store.ListPlaythroughs(ptGame)
		if err != nil {
			return fmt.Errorf("list playthroughs: %w", err)
		}
		if flagJSON {
			return printJSON(pts)
		}
		for _, pt := range pts {
			line := fmt.Sprintf("%s  %s", pt.PlaythroughID, pt.Name)
			if pt.PositionID != nil {
				line += fmt.Sprintf("  @ %s", pt.PositionID)
			}
			fmt.Println(line)
		}
		return nil
	})
}

func runPlaythroughDelete(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		if err := store.DeletePlaythrough(args[0]); err != nil {
			return fmt.Errorf("delete playthrough: %w", err)
		}
		fmt.Printf("Deleted playthrough: %s\n", args[0])
		return nil
	})
}
