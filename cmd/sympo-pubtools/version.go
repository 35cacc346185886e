package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of sympo-pubtools",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sympo-pubtools %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
