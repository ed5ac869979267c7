// Thread commands create, list, and delete labeled edges between
// entities.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/types"
)

var (
	linkLabel       string
	linkPlaythrough string
	linksGame       string
	linksLabel      string
	linksScope      string
)

var linkCmd = &cobra.Command{
	Use:   "link <from-id> <to-id>",
	Short: "Create a thread between two entities",
	Long: `Link creates a directed thread from one entity to another. Both
entities must belong to the same game.

Labels: connects (place adjacency, symmetric for traversal), requires
(prerequisite, resolved recursively), relates (display only).

Example:
  waymark link place:<a> place:<b> --label connects
  waymark link quest:<q> item:<i> --label requires
  waymark link quest:<q> item:<i> --label requires --playthrough <pt-id>`,
	Args: cobra.ExactArgs(2),
	RunE: runLink,
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List threads of a game",
	RunE:  runLinks,
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <thread-id>",
	Short: "Delete a thread",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnlink,
}

func init() {
	linkCmd.Flags().StringVar(&linkLabel, "label", "", "thread label: connects, requires, or relates (required)")
	linkCmd.Flags().StringVar(&linkPlaythrough, "playthrough", "", "scope the thread to a playthrough")
	_ = linkCmd.MarkFlagRequired("label")

	linksCmd.Flags().StringVar(&linksGame, "game", "", "game ID (required)")
	linksCmd.Flags().StringVar(&linksLabel, "label", "", "filter by label")
	linksCmd.Flags().StringVar(&linksScope, "playthrough", "", "include threads scoped to this playthrough")
	_ = linksCmd.MarkFlagRequired("game")
}

func runLink(cmd *cobra.Command, args []string) error {
	fromID, err := parseID(args[0])
	if err != nil {
		return err
	}
	toID, err := parseID(args[1])
	if err != nil {
		return err
	}

	return withStore(func(store types.Store) error {
		from, err := store.GetEntity(fromID)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", fromID, err)
		}

		t := &types.Thread{
			GameID: from.GameID,
			Label:  linkLabel,
			FromID: fromID,
			ToID:   toID,
		}
		if linkPlaythrough != "" {
			t.PlaythroughID = &linkPlaythrough
		}

		id, err := store.SaveThread(t)
		if err != nil {
			return fmt.Errorf("create thread: %w", err)
		}
		if flagJSON {
			return printJSON(t)
		}
		fmt.Printf("Created thread: %s\n", id)
		return nil
	})
}

func runLinks(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		threads, err := store.ListThreads(linksGame, linksLabel, linksScope)
		if err != nil {
			return fmt.Errorf("list threads: %w", err)
		}
		if flagJSON {
			return printJSON(threads)
		}
		for _, t := range threads {
			line := fmt.Sprintf("%s  %s --%s--> %s", t.ThreadID, t.FromID, t.Label, t.ToID)
			if t.PlaythroughID != nil {
				line += fmt.Sprintf("  [playthrough %s]", *t.PlaythroughID)
			}
			fmt.Println(line)
		}
		return nil
	})
}

func runUnlink(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		if err := store.DeleteThread(args[0]); err != nil {
			return fmt.Errorf("delete thread: %w", err)
		}
		fmt.Printf("Deleted thread: %s\n", args[0])
		return nil
	})
}
