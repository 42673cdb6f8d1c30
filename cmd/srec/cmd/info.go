package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/moffa90/go-srec/record"
	"github.com/moffa90/go-srec/srec"
	"github.com/spf13/cobra"
)

func newInfoCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Show a summary of an S-Record file",
		Long: `Show the file size, record count, MOT type, header text, address range
and the number of records of each type.

Examples:
	  srec info firmware.s19`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.parse(args[0])
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), f)
			return nil
		},
	}
}

func printInfo(w io.Writer, f *srec.File) {
	fmt.Fprintf(w, "File:      %s\n", f.Path())
	fmt.Fprintf(w, "Size:      %d bytes\n", f.Size())
	fmt.Fprintf(w, "Records:   %d\n", f.Lines())
	fmt.Fprintf(w, "MOT type:  %s\n", f.MOTType())

	if f.HasHeader() {
		header, err := f.HeaderContent()
		if err != nil {
			fmt.Fprintf(w, "Header:    (%v)\n", err)
		} else {
			fmt.Fprintf(w, "Header:    %q\n", strings.TrimRight(header, "\x00"))
		}
	} else {
		fmt.Fprintf(w, "Header:    none\n")
	}

	lo, errLo := f.MinAddress()
	hi, errHi := f.MaxAddress()
	if errLo == nil && errHi == nil {
		fmt.Fprintf(w, "Addresses: 0x%08X - 0x%08X\n", lo, hi)
	} else {
		fmt.Fprintf(w, "Addresses: n/a\n")
	}

	start, end, err := f.DataSpan()
	switch {
	case err != nil:
		fmt.Fprintf(w, "Data:      (%v)\n", err)
	case end > start:
		fmt.Fprintf(w, "Data:      0x%08X - 0x%08X (%d bytes)\n", start, end, end-start)
	default:
		fmt.Fprintf(w, "Data:      none\n")
	}

	counts := f.RecordCounts()
	types := make([]record.Type, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	fmt.Fprintf(w, "Record types:\n")
	for _, t := range types {
		fmt.Fprintf(w, "  %s  %-12s %d\n", t, t.Group(), counts[t])
	}
}
