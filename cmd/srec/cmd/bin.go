package cmd

import (
	"fmt"
	"os"

	"github.com/moffa90/go-srec/srec"
	"github.com/spf13/cobra"
)

func newBinCmd(opts *options) *cobra.Command {
	var (
		fill        uint8
		relative    bool
		strictTypes bool
		rejectGaps  bool
		maxSize     int
	)

	binCmd := &cobra.Command{
		Use:   "bin FILE OUTPUT",
		Short: "Convert an S-Record file to a binary image",
		Long: `Write the data records (S1, S2, S3) of an S-Record file to a flat binary
image. Byte N of the output is address N unless --relative is given, in which
case the image starts at the lowest data address. Addresses not covered by any
record are filled with --fill.

S2 and S3 export is experimental and logs a warning; use --strict-types to
reject those records instead.

Examples:
	  srec bin firmware.s19 firmware.bin
	  srec bin --relative --fill=0xFF firmware.s37 firmware.bin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.config.Binary
			flags := cmd.Flags()
			if flags.Changed("fill") {
				cfg.Fill = fill
			}
			if flags.Changed("relative") {
				cfg.Relative = relative
			}
			if flags.Changed("strict-types") {
				cfg.StrictTypes = strictTypes
			}
			if flags.Changed("reject-gaps") {
				cfg.RejectGaps = rejectGaps
			}
			if flags.Changed("max-size") {
				cfg.MaxSize = maxSize
			}
			if cfg.MaxSize <= 0 {
				return fmt.Errorf("invalid --max-size %d: must be positive", cfg.MaxSize)
			}

			binOpts := []srec.BinaryOption{srec.WithFill(cfg.Fill), srec.WithMaxImageSize(cfg.MaxSize)}
			if cfg.Relative {
				binOpts = append(binOpts, srec.WithRelativeOrigin())
			}
			if cfg.StrictTypes {
				binOpts = append(binOpts, srec.WithRejectExperimental())
			}
			if cfg.RejectGaps {
				binOpts = append(binOpts, srec.WithRejectGaps())
			}

			f, err := opts.parse(args[0])
			if err != nil {
				return err
			}

			if err := f.WriteBinaryFile(args[1], binOpts...); err != nil {
				return err
			}

			info, err := os.Stat(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", info.Size(), args[1])
			return nil
		},
	}

	binCmd.Flags().Uint8Var(&fill, "fill", 0x00, "Byte written to addresses without data")
	binCmd.Flags().BoolVar(&relative, "relative", false, "Start the image at the lowest data address")
	binCmd.Flags().BoolVar(&strictTypes, "strict-types", false, "Reject S2/S3 data records")
	binCmd.Flags().BoolVar(&rejectGaps, "reject-gaps", false, "Fail if the data records leave gaps")
	binCmd.Flags().IntVar(&maxSize, "max-size", srec.DefaultMaxImageSize, "Largest image in bytes, must be positive")

	return binCmd
}
