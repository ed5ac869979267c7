// Init command creates the config and data directories and an empty
// database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize waymark configuration and database",
	Long: `Init creates the configuration directory with a default config.yaml
and an empty database in the data directory. Running init twice is safe.

Example:
  waymark init
  waymark init --data-dir ./campaign-data`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return err
	}
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	if err := withStore(func(store types.Store) error { return nil }); err != nil {
		return err
	}

	fmt.Printf("Initialized waymark\n  config: %s\n  data:   %s\n", configDir, dataDir)
	return nil
}
