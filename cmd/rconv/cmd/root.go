package cmd

import (
	"fmt"
	"os"

	"rconv/cli"
	"rconv/cmd/rconv/cmd/cache"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "rconv",
	Short:         "Reads, inspects and rewrites objects serialized by R.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.rconv", "Home directory for rconv's config and summary cache.")
	cache.AddCmd(rootCmd)
}
