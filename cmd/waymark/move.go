// Move command sets or clears the player's current position.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/types"
)

var (
	movePlaythrough string
	moveClear       bool
)

var moveCmd = &cobra.Command{
	Use:   "move [place-id]",
	Short: "Set the player's current position",
	Long: `Move records the player's current place for a playthrough.
Reachability and next-step queries start from this position.

With --clear the position is removed; reachability then reports no
places and next steps include only unplaced entities.

Example:
  waymark move place:<uuid> --playthrough <pt-id>
  waymark move --clear --playthrough <pt-id>`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMove,
}

func init() {
	moveCmd.Flags().StringVar(&movePlaythrough, "playthrough", "", "playthrough ID (required)")
	moveCmd.Flags().BoolVar(&moveClear, "clear", false, "clear the position instead of setting it")
	_ = moveCmd.MarkFlagRequired("playthrough")
}

func runMove(cmd *cobra.Command, args []string) error {
	if moveClear {
		if len(args) != 0 {
			return fmt.Errorf("--clear takes no place argument: %w", types.ErrInvalidID)
		}
		return withStore(func(store types.Store) error {
			if err := store.SetPosition(movePlaythrough, nil); err != nil {
				return fmt.Errorf("clear position: %w", err)
			}
			fmt.Println("Cleared position")
			return nil
		})
	}

	if len(args) != 1 {
		return fmt.Errorf("place ID required: %w", types.ErrInvalidID)
	}
	placeID, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(func(store types.Store) error {
		if err := store.SetPosition(movePlaythrough, &placeID); err != nil {
			return fmt.Errorf("set position: %w", err)
		}
		fmt.Printf("Moved to %s\n", placeID)
		return nil
	})
}
