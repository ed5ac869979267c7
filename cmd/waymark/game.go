// Game commands manage the top-level game records.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/types"
)

var gameName string

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage games",
}

var gameAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new game",
	Long: `Add creates a new game scope for entities, threads, and playthroughs.

Example:
  waymark game add --name "The Hollow Crown"`,
	RunE: runGameAdd,
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List games",
	RunE:  runGameList,
}

var gameDeleteCmd = &cobra.Command{
	Use:   "delete <game-id>",
	Short: "Delete a game and everything scoped to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runGameDelete,
}

func init() {
	gameAddCmd.Flags().StringVar(&gameName, "name", "", "name for the game (required)")
	_ = gameAddCmd.MarkFlagRequired("name")

	gameCmd.AddCommand(gameAddCmd)
	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameDeleteCmd)
}

func runGameAdd(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		g, err := store.CreateGame(gameName)
		if err != nil {
			return fmt.Errorf("create game: %w", err)
		}
		if flagJSON {
			return printJSON(g)
		}
		fmt.Printf("Created game: %s\n", g.GameID)
		return nil
	})
}

func runGameList(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		games, err := store.ListGames()
		if err != nil {
			return fmt.Errorf("list games: %w", err)
		}
		if flagJSON {
			return printJSON(games)
		}
		for _, g := range games {
			fmt.Printf("%s  %s\n", g.GameID, g.Name)
		}
		return nil
	})
}

func runGameDelete(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		if err := store.DeleteGame(args[0]); err != nil {
			return fmt.Errorf("delete game: %w", err)
		}
		fmt.Printf("Deleted game: %s\n", args[0])
		return nil
	})
}
