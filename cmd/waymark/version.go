package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagewell/waymark/pkg/waymark"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the waymark version",
	Run: func(cmd *cobra.Command, args []string) {
		if flagJSON {
			fmt.Printf("{\"version\": %q}\n", waymark.Version)
			return
		}
		fmt.Println(waymark.Version)
	},
}
