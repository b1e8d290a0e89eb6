package cache

import "github.com/spf13/cobra"

var cmd = &cobra.Command{
	Use:   "cache",
	Short: "Manages the summary cache used by rconv inspect.",
}

func AddCmd(parent *cobra.Command) {
	parent.AddCommand(cmd)
}
