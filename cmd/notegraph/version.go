package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
