// Shared helpers for waymark subcommands: store attachment, ID parsing,
// and output formatting.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sagewell/waymark/internal/sqlite"
	"github.com/sagewell/waymark/pkg/types"
)

// withStore attaches the SQLite store, runs fn, and detaches.
func withStore(fn func(store types.Store) error) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	store := sqlite.NewBackend()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
	if err := store.Attach(cfg); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer store.Detach()

	return fn(store)
}

// parseID parses a canonical entity ID argument.
func parseID(arg string) (types.EntityID, error) {
	id, err := types.ParseEntityID(arg)
	if err != nil {
		return types.EntityID{}, fmt.Errorf("bad entity id %q: %w", arg, err)
	}
	return id, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
