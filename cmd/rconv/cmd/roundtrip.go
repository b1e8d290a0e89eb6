package cmd

import (
	"fmt"

	"rconv/cli"
	"rconv/inspect"
	"rconv/log"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <files...>",
	Short: "Checks that files decode, re-encode and decode again to the same graph.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		lgr := log.WithModule("roundtrip")
		decodeCfg := cli.DecodeConfig(cfg)

		var failed int
		for _, path := range args {
			f, err := decodeCfg.ReadFile(path)
			if err != nil {
				failed++
				lgr.Error("error decoding file", "path", path, "kind", cli.ErrorKind(err), "err", err)
				continue
			}
			size, err := inspect.RoundTrip(f)
			if err != nil {
				failed++
				lgr.Error("round trip failed", "path", path, "err", err)
				continue
			}
			fmt.Printf("ok\t%s\t%d bytes\n", path, size)
		}
		if failed > 0 {
			return errors.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
}
