// Entity commands create, list, and delete game entities of every kind.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/types"
)

var (
	entityGame  string
	entityKind  string
	entityName  string
	entityDesc  string
	entityAt    string
	entityImage string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new entity",
	Long: `Add creates an entity of the given kind within a game.

Kinds: quest, insight, item, person, place, map, path.

--at attaches the entity to a place; reachability of that place then
gates whether the entity shows up as a next step.

Example:
  waymark add --game <game-id> --kind place --name "Greybarrow Village"
  waymark add --game <game-id> --kind quest --name "Recover the Crown" --at place:<uuid>`,
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities of a game",
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <entity-id>",
	Short: "Delete an entity and the threads touching it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	addCmd.Flags().StringVar(&entityGame, "game", "", "game ID (required)")
	addCmd.Flags().StringVar(&entityKind, "kind", "", "entity kind (required)")
	addCmd.Flags().StringVar(&entityName, "name", "", "name for the entity (required)")
	addCmd.Flags().StringVar(&entityDesc, "desc", "", "description")
	addCmd.Flags().StringVar(&entityAt, "at", "", "place ID the entity is located at")
	addCmd.Flags().StringVar(&entityImage, "image", "", "map image reference (maps only)")
	_ = addCmd.MarkFlagRequired("game")
	_ = addCmd.MarkFlagRequired("kind")
	_ = addCmd.MarkFlagRequired("name")

	listCmd.Flags().StringVar(&entityGame, "game", "", "game ID (required)")
	listCmd.Flags().StringVar(&entityKind, "kind", "", "filter to one kind")
	_ = listCmd.MarkFlagRequired("game")
}

func runAdd(cmd *cobra.Command, args []string) error {
	kind := types.EntityKind(entityKind)
	if !kind.Valid() {
		return fmt.Errorf("bad kind %q: %w", entityKind, types.ErrInvalidKind)
	}

	e := &types.Entity{
		ID:          types.EntityID{Kind: kind},
		GameID:      entityGame,
		Name:        entityName,
		Description: entityDesc,
		ImageRef:    entityImage,
	}
	if entityAt != "" {
		at, err := parseID(entityAt)
		if err != nil {
			return err
		}
		e.LocationID = &at
	}

	return withStore(func(store types.Store) error {
		id, err := store.SaveEntity(e)
		if err != nil {
			return fmt.Errorf("create %s: %w", kind, err)
		}
		if flagJSON {
			return printJSON(e)
		}
		fmt.Printf("Created %s: %s\n", kind, id)
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	kind := types.EntityKind(entityKind)
	if entityKind != "" && !kind.Valid() {
		return fmt.Errorf("bad kind %q: %w", entityKind, types.ErrInvalidKind)
	}

	return withStore(func(store types.Store) error {
		entities, err := store.ListEntities(entityGame, kind)
		if err != nil {
			return fmt.Errorf("list entities: %w", err)
		}
		if flagJSON {
			return printJSON(entities)
		}
		for _, e := range entities {
			line := fmt.Sprintf("%s  %s", e.ID, e.Name)
			if e.LocationID != nil {
				line += fmt.Sprintf("  @ %s", e.LocationID)
			}
			fmt.Println(line)
		}
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withStore(func(store types.Store) error {
		if err := store.DeleteEntity(id); err != nil {
			return fmt.Errorf("delete entity: %w", err)
		}
		fmt.Printf("Deleted %s\n", id)
		return nil
	})
}
