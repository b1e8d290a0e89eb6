package cmd

import (
	"os"

	"rconv/cli"
	"rconv/rds"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out?>",
	Short: "Rewrites a serialized R object with a different format, version or compression.",
	Long: `Rewrites a serialized R object. The output goes to <out>, or to stdout when
it is omitted or "-". Binary output is not written to a terminal unless
--force is set.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		opts, err := cli.WriteOptions(cmd, cfg)
		if err != nil {
			return err
		}
		f, err := cli.DecodeConfig(cfg).ReadFile(args[0])
		if err != nil {
			return err
		}
		opts.Workspace = f.Workspace

		if len(args) == 2 && args[1] != "-" {
			return rds.WriteFile(args[1], f.Root, opts)
		}

		force, _ := cmd.Flags().GetBool(cli.FlagForce)
		binary := opts.Compression != rds.CompressionNone || !opts.Format.Textual()
		if binary && !force && isatty.IsTerminal(os.Stdout.Fd()) {
			return errors.New("refusing to write binary output to a terminal")
		}
		return rds.Encode(f.Root, os.Stdout, opts)
	},
}

func init() {
	convertCmd.Flags().String(cli.FlagFormat, "", "Wire format: xdr, ascii or native.")
	convertCmd.Flags().Int(cli.FlagVersion, 0, "Serialization version: 2 or 3.")
	convertCmd.Flags().String(cli.FlagCompression, "", "Compression: none, gzip or xz.")
	convertCmd.Flags().Bool(cli.FlagForce, false, "Write binary output even if stdout is a terminal.")
	rootCmd.AddCommand(convertCmd)
}
