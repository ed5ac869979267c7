// Waymark tracks a player's progress through a narrative adventure game:
// places, items, people, insights, quests, the paths between places, and
// the threads that relate them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sagewell/waymark/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to exit codes: user errors (bad input, unknown
// records, validation) exit 1, system errors (store failures) exit 2.
func exitCode(err error) int {
	for _, userErr := range []error{
		types.ErrNotFound,
		types.ErrInvalidID,
		types.ErrInvalidKind,
		types.ErrInvalidName,
		types.ErrInvalidStatus,
		types.ErrStateless,
		types.ErrInvalidLabel,
		types.ErrInvalidEndpoint,
		types.ErrCrossGame,
		types.ErrNotAPlace,
	} {
		if errors.Is(err, userErr) {
			return exitUserError
		}
	}
	return exitSysError
}
