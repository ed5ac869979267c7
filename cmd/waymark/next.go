// Next command lists the entities that are valid next steps.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/engine"
	"github.com/sagewell/waymark/pkg/types"
)

var (
	nextGame        string
	nextPlaythrough string
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "List actionable next steps",
	Long: `Next lists the quests, items, insights, and people the player can
act on right now: located in a reachable place (or unplaced), not in a
terminal status, and with all requirements satisfied.

Example:
  waymark next --game <game-id> --playthrough <pt-id>`,
	RunE: runNext,
}

func init() {
	nextCmd.Flags().StringVar(&nextGame, "game", "", "game ID (required)")
	nextCmd.Flags().StringVar(&nextPlaythrough, "playthrough", "", "playthrough ID (required)")
	_ = nextCmd.MarkFlagRequired("game")
	_ = nextCmd.MarkFlagRequired("playthrough")
}

func runNext(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		svc := engine.NewService(store)
		actionable, _, err := svc.NextSteps(nextGame, nextPlaythrough)
		if err != nil {
			return fmt.Errorf("compute next steps: %w", err)
		}

		if flagJSON {
			return printJSON(actionable)
		}
		if len(actionable) == 0 {
			fmt.Println("Nothing actionable")
			return nil
		}
		for _, a := range actionable {
			line := fmt.Sprintf("%s  %s", a.ID, a.Name)
			if a.PlaceID != nil {
				line += fmt.Sprintf("  @ %s", a.PlaceID)
			}
			fmt.Println(line)
		}
		return nil
	})
}
