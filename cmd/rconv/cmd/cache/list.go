package cache

import (
	"encoding/json"
	"math"
	"os"
	"strconv"

	"rconv/cli"
	"rconv/config"
	"rconv/crypto"
	"rconv/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <start?> <limit?>",
	Short: "Lists cached summaries in hash order, starting after the given hash.",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := crypto.ZeroHash
		if len(args) >= 1 && args[0] != "" {
			h, err := crypto.NewHashFromHex(args[0])
			if err != nil {
				return errors.Wrap(err, "invalid start hash")
			}
			start = h
		}
		lim := math.MaxInt64
		if len(args) == 2 {
			limit, err := strconv.ParseInt(args[1], 10, 32)
			if err != nil {
				return err
			}
			lim = int(limit)
		}

		if _, err := cli.LoadConfig(cmd); err != nil {
			return err
		}
		db, err := store.Open(config.ExpandDBPath(cli.GetHomeDir(cmd)))
		if err != nil {
			return err
		}
		defer db.Close()

		stream, err := store.StreamSummaries(db, start)
		if err != nil {
			return err
		}
		defer stream.Close()
		encoder := json.NewEncoder(os.Stdout)
		for count := 0; count < lim; count++ {
			summary, err := stream.Next()
			if err != nil {
				return err
			}
			if summary == nil {
				break
			}
			if err := encoder.Encode(summary); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	cmd.AddCommand(listCmd)
}
