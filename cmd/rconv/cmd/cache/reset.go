package cache

import (
	"fmt"

	"rconv/cli"
	"rconv/config"
	"rconv/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Deletes every cached summary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := cli.LoadConfig(cmd); err != nil {
			return err
		}
		db, err := store.Open(config.ExpandDBPath(cli.GetHomeDir(cmd)))
		if err != nil {
			return errors.Wrap(err, "error opening store")
		}
		count, err := store.TruncateSummaries(db)
		if err != nil {
			return err
		}
		if err := db.Close(); err != nil {
			return errors.Wrap(err, "error closing DB")
		}
		fmt.Printf("Removed %d cached summaries.\n", count)
		return nil
	},
}

func init() {
	cmd.AddCommand(resetCmd)
}
