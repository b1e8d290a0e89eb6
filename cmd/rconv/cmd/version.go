package cmd

import (
	"fmt"

	"rconv/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints rconv's version.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("rconv %s\n", version.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
