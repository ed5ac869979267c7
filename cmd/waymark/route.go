// Route command lists the threads on shortest routes to actionable
// entities.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/engine"
	"github.com/sagewell/waymark/pkg/types"
)

var (
	routeGame        string
	routePlaythrough string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "List threads on shortest routes to next steps",
	Long: `Route computes shortest routes from the current position to each
actionable entity's place and lists the connects threads those routes
traverse. A map view can highlight exactly these edges.

Example:
  waymark route --game <game-id> --playthrough <pt-id>`,
	RunE: runRoute,
}

func init() {
	routeCmd.Flags().StringVar(&routeGame, "game", "", "game ID (required)")
	routeCmd.Flags().StringVar(&routePlaythrough, "playthrough", "", "playthrough ID (required)")
	_ = routeCmd.MarkFlagRequired("game")
	_ = routeCmd.MarkFlagRequired("playthrough")
}

func runRoute(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		svc := engine.NewService(store)
		_, edges, err := svc.NextSteps(routeGame, routePlaythrough)
		if err != nil {
			return fmt.Errorf("compute routes: %w", err)
		}

		// Report in thread insertion order so output is stable.
		threads, err := store.ListThreads(routeGame, types.ThreadConnects, routePlaythrough)
		if err != nil {
			return fmt.Errorf("list threads: %w", err)
		}
		var out []*types.Thread
		for _, t := range threads {
			if _, ok := edges[t.ThreadID]; ok {
				out = append(out, t)
			}
		}

		if flagJSON {
			ids := make([]string, 0, len(out))
			for _, t := range out {
				ids = append(ids, t.ThreadID)
			}
			return printJSON(ids)
		}
		for _, t := range out {
			fmt.Printf("%s  %s <--> %s\n", t.ThreadID, t.FromID, t.ToID)
		}
		return nil
	})
}
