// Reachable command reports the places reachable from the player's
// position.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/engine"
	"github.com/sagewell/waymark/pkg/types"
)

var (
	reachGame        string
	reachPlaythrough string
	reachFrom        string
)

var reachableCmd = &cobra.Command{
	Use:   "reachable",
	Short: "List places reachable from the current position",
	Long: `Reachable walks the place graph from the playthrough's current
position over open paths and direct connections, and lists every place
it can reach. Locked and hidden paths block traversal. With no position
set, nothing is reachable.

--from overrides the start place without moving the player.

Example:
  waymark reachable --game <game-id> --playthrough <pt-id>
  waymark reachable --game <game-id> --playthrough <pt-id> --from place:<uuid>`,
	RunE: runReachable,
}

func init() {
	reachableCmd.Flags().StringVar(&reachGame, "game", "", "game ID (required)")
	reachableCmd.Flags().StringVar(&reachPlaythrough, "playthrough", "", "playthrough ID (required)")
	reachableCmd.Flags().StringVar(&reachFrom, "from", "", "start place (default: playthrough position)")
	_ = reachableCmd.MarkFlagRequired("game")
	_ = reachableCmd.MarkFlagRequired("playthrough")
}

func runReachable(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		start, err := resolveStart(store, reachPlaythrough, reachFrom)
		if err != nil {
			return err
		}

		svc := engine.NewService(store)
		reachable, err := svc.ComputeReachablePlaces(reachGame, reachPlaythrough, start)
		if err != nil {
			return fmt.Errorf("compute reachability: %w", err)
		}

		// Report in entity insertion order so output is stable.
		places, err := store.ListEntities(reachGame, types.KindPlace)
		if err != nil {
			return fmt.Errorf("list places: %w", err)
		}
		var out []*types.Entity
		for _, p := range places {
			if reachable.Contains(p.ID) {
				out = append(out, p)
			}
		}

		if flagJSON {
			return printJSON(out)
		}
		for _, p := range out {
			fmt.Printf("%s  %s\n", p.ID, p.Name)
		}
		return nil
	})
}

// resolveStart picks the starting place: the --from override when given,
// otherwise the playthrough's recorded position. Nil means no start.
func resolveStart(store types.Store, playthroughID, from string) (*types.EntityID, error) {
	if from != "" {
		id, err := parseID(from)
		if err != nil {
			return nil, err
		}
		return &id, nil
	}
	pt, err := store.GetPlaythrough(playthroughID)
	if err != nil {
		return nil, fmt.Errorf("resolve playthrough: %w", err)
	}
	return pt.PositionID, nil
}
