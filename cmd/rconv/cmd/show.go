package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"rconv/cli"
	"rconv/rds"
	"rconv/rexp"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const flagRows = "rows"

var errRowLimit = errors.New("row limit reached")

var showCmd = &cobra.Command{
	Use:   "show <file> <element...>",
	Short: "Prints the node tree of a serialized R object, optionally below a named element.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadConfig(cmd)
		if err != nil {
			return err
		}
		rows := cfg.Inspect.MaxRows
		if cmd.Flags().Changed(flagRows) {
			rows, _ = cmd.Flags().GetInt(flagRows)
		}

		f, err := cli.DecodeConfig(cfg).ReadFile(args[0])
		if err != nil {
			return err
		}
		node := f.Root
		for _, name := range args[1:] {
			node, err = rexp.Element(node, name, false)
			if err != nil {
				return err
			}
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{
			"Path",
			"Kind",
			"Length",
			"Class",
			"Value",
		})
		var count int
		err = rexp.Walk(node, func(path string, n rexp.Node) error {
			if rows > 0 && count == rows {
				return errRowLimit
			}
			count++
			table.Append([]string{
				path,
				n.Kind().String(),
				strconv.Itoa(rexp.Len(n)),
				strings.Join(rexp.Class(n), ","),
				cli.Preview(n),
			})
			return nil
		})
		if err != nil && err != errRowLimit {
			return err
		}
		fmt.Println(describeFile(f))
		table.Render()
		if err == errRowLimit {
			fmt.Printf("output truncated after %d nodes\n", rows)
		}
		return nil
	},
}

func describeFile(f *rds.File) string {
	kind := "serialized object"
	if f.Workspace {
		kind = "workspace"
	}
	return kind + ", " + f.Header.Format.String() + " v" + strconv.Itoa(int(f.Header.Version)) + ", " + f.Compression.String()
}

func init() {
	showCmd.Flags().Int(flagRows, 0, "Maximum number of nodes to print. Defaults to the config's max_rows.")
	rootCmd.AddCommand(showCmd)
}
