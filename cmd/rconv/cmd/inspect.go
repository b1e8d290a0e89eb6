package cmd

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"rconv/cli"
	"rconv/config"
	"rconv/inspect"
	"rconv/store"
	"rconv/util"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/syndtr/goleveldb/leveldb"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <files...>",
	Short: "Summarizes serialized R objects.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		workers := cfg.Inspect.Workers
		if cmd.Flags().Changed(cli.FlagWorkers) {
			workers, _ = cmd.Flags().GetInt(cli.FlagWorkers)
		}
		noCache, _ := cmd.Flags().GetBool(cli.FlagNoCache)
		sample, _ := cmd.Flags().GetInt(cli.FlagSample)
		asJSON, _ := cmd.Flags().GetBool(cli.FlagJSON)

		paths := args
		if sample > 0 {
			paths = util.SampleStrings(paths, sample)
		}

		var db *leveldb.DB
		if cfg.Inspect.Cache && !noCache {
			db, err = store.Open(config.ExpandDBPath(cli.GetHomeDir(cmd)))
			if err != nil {
				return errors.Wrap(err, "error opening summary cache")
			}
			defer db.Close()
		}

		results, err := inspect.New(cli.DecodeConfig(cfg), db).Run(context.Background(), paths, workers)
		if err != nil {
			return err
		}

		var failed int
		if asJSON {
			encoder := json.NewEncoder(os.Stdout)
			for _, res := range results {
				if res.Err != nil {
					failed++
					continue
				}
				if err := encoder.Encode(res.Summary); err != nil {
					return err
				}
			}
		} else {
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{
				"Path",
				"Kind",
				"Class",
				"Format",
				"Compression",
				"Nodes",
				"Cached",
				"Error",
			})
			for _, res := range results {
				if res.Err != nil {
					failed++
					table.Append([]string{res.Path, "", "", "", "", "", "", cli.ErrorKind(res.Err)})
					continue
				}
				s := res.Summary
				table.Append([]string{
					s.Path,
					s.Kind,
					strings.Join(s.Class, ","),
					s.Format + " v" + strconv.Itoa(int(s.Version)),
					s.Compression,
					strconv.Itoa(s.Nodes),
					strconv.FormatBool(res.Cached),
					"",
				})
			}
			table.Render()
		}

		if failed > 0 {
			return errors.Errorf("%d of %d files could not be decoded", failed, len(results))
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Int(cli.FlagWorkers, inspect.DefaultWorkers, "Number of files decoded concurrently.")
	inspectCmd.Flags().Bool(cli.FlagNoCache, false, "Skip the summary cache.")
	inspectCmd.Flags().Int(cli.FlagSample, 0, "Inspect a random subset of this many files.")
	inspectCmd.Flags().Bool(cli.FlagJSON, false, "Print one JSON summary per line.")
	rootCmd.AddCommand(inspectCmd)
}
