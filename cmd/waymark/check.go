// Check command reports whether an entity's prerequisites are satisfied.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/engine"
	"github.com/sagewell/waymark/pkg/types"
)

var (
	checkGame        string
	checkPlaythrough string
)

var checkCmd = &cobra.Command{
	Use:   "check <entity-id>",
	Short: "Check whether an entity's requirements are met",
	Long: `Check resolves the entity's requires threads recursively against the
playthrough's statuses. An entity with no requirements is available. The
unmet list names the entity's direct requirement targets that are not
satisfied, in the order the threads were created.

Example:
  waymark check quest:<uuid> --game <game-id> --playthrough <pt-id>`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkGame, "game", "", "game ID (required)")
	checkCmd.Flags().StringVar(&checkPlaythrough, "playthrough", "", "playthrough ID (required)")
	_ = checkCmd.MarkFlagRequired("game")
	_ = checkCmd.MarkFlagRequired("playthrough")
}

func runCheck(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(func(store types.Store) error {
		svc := engine.NewService(store)
		avail, err := svc.CheckEntityAvailability(checkGame, checkPlaythrough, id)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}

		if flagJSON {
			return printJSON(avail)
		}
		if avail.Available {
			fmt.Printf("%s is available\n", id)
			return nil
		}
		fmt.Printf("%s is not available; unmet requirements:\n", id)
		for _, unmet := range avail.Unmet {
			line := fmt.Sprintf("  %s", unmet)
			if e, err := store.GetEntity(unmet); err == nil {
				line += "  " + e.Name
			}
			fmt.Println(line)
		}
		return nil
	})
}
