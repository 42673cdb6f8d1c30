package cmd

import (
	"fmt"

	"github.com/moffa90/go-srec/srec"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check record types, byte counts and checksums",
		Long: `Check every record of an S-Record file and list the ones with an unknown
type, a wrong byte count or a wrong checksum. Exits with a non-zero status if
any record is invalid.

Examples:
	  srec validate firmware.s19`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			issues := f.Validate()
			for _, issue := range issues {
				fmt.Fprintln(out, issue)
			}

			if f.MOTType() == srec.MOTUnknown {
				opts.logger.Warn("file does not use a single S19, S28 or S37 record family", "file", args[0])
			}

			if len(issues) > 0 {
				return fmt.Errorf("%d of %d records are invalid", len(issues), f.Lines())
			}

			fmt.Fprintf(out, "%d records OK (%s)\n", f.Lines(), f.MOTType())
			return nil
		},
	}
}
