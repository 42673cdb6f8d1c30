package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCmd(opts *options) *cobra.Command {
	var lineNumbers bool

	dumpCmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the records of an S-Record file",
		Long: `Print every record, normalized to uppercase hex. Fields are colored when
writing to a terminal or with --color=always.

Examples:
	  srec dump firmware.s19
	  srec dump -n --color=never firmware.s19`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			color := opts.useColor(out)
			for i, rec := range f.Records() {
				if lineNumbers {
					fmt.Fprintf(out, "%6d  ", i+1)
				}
				fmt.Fprintln(out, rec.Serialize(color))
			}
			return nil
		},
	}

	dumpCmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "Prefix each record with its index")

	return dumpCmd
}
