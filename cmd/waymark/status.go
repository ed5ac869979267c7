// Status commands set and inspect per-playthrough entity statuses.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/types"
)

var statusPlaythrough string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Manage entity statuses within a playthrough",
}

var statusSetCmd = &cobra.Command{
	Use:   "set <entity-id> <value>",
	Short: "Set an entity's status",
	Long: `Set records a status for a stateful entity within a playthrough.

Statuses by kind:
  quest:   available, active, completed, abandoned
  insight: unknown, known, irrelevant
  item:    not-acquired, acquired, used, lost
  person:  alive, dead, unknown
  path:    open, locked, hidden

Places and maps carry no status.

Example:
  waymark status set quest:<uuid> completed --playthrough <pt-id>`,
	Args: cobra.ExactArgs(2),
	RunE: runStatusSet,
}

var statusGetCmd = &cobra.Command{
	Use:   "get <entity-id>",
	Short: "Show an entity's status (the kind default if unset)",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatusGet,
}

var statusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List explicitly set statuses of a playthrough",
	RunE:  runStatusList,
}

func init() {
	for _, c := range []*cobra.Command{statusSetCmd, statusGetCmd, statusListCmd} {
		c.Flags().StringVar(&statusPlaythrough, "playthrough", "", "playthrough ID (required)")
		_ = c.MarkFlagRequired("playthrough")
		statusCmd.AddCommand(c)
	}
}

func runStatusSet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withStore(func(store types.Store) error {
		if err := store.SetStatus(statusPlaythrough, id, args[1]); err != nil {
			return fmt.Errorf("set status: %w", err)
		}
		fmt.Printf("%s is now %s\n", id, args[1])
		return nil
	})
}

func runStatusGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return withStore(func(store types.Store) error {
		value, err := store.GetStatus(statusPlaythrough, id)
		if err != nil {
			return fmt.Errorf("get status: %w", err)
		}
		if flagJSON {
			return printJSON(map[string]string{"entity_id": id.String(), "status": value})
		}
		fmt.Println(value)
		return nil
	})
}

func runStatusList(cmd *cobra.Command, args []string) error {
	return withStore(func(store types.Store) error {
		statuses, err := store.ListStatuses(statusPlaythrough)
		if err != nil {
			return fmt.Errorf("list statuses: %w", err)
		}
		if flagJSON {
			return printJSON(statuses)
		}
		for _, s := range statuses {
			fmt.Printf("%s  %s\n", s.EntityID, s.Value)
		}
		return nil
	})
}
