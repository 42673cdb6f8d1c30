package srec

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/moffa90/go-srec/record"
)

// Constants for binary image export.
const (
	// DefaultFill is the byte written to addresses no data record covers
	DefaultFill = 0x00

	// DefaultMaxImageSize bounds the in-memory image (64 MiB)
	DefaultMaxImageSize = 64 << 20
)

// Image is a flat binary image reconstructed from the data records.
type Image struct {
	// Base is the address of Data[0]
	Base uint32

	// Data is the image content, gaps filled with the fill byte
	Data []byte
}

// binaryConfig holds the binary export configuration.
type binaryConfig struct {
	fill               byte
	relative           bool
	rejectGaps         bool
	rejectExperimental bool
	maxSize            int
}

func defaultBinaryConfig() binaryConfig {
	return binaryConfig{
		fill:    DefaultFill,
		maxSize: DefaultMaxImageSize,
	}
}

// BinaryOption is a functional option for configuring binary export.
type BinaryOption func(*binaryConfig)

// WithFill sets the byte written to gaps between data records.
// Default is 0x00.
func WithFill(b byte) BinaryOption {
	return func(c *binaryConfig) {
		c.fill = b
	}
}

// WithRelativeOrigin starts the image at the lowest data address instead of
// address 0.
func WithRelativeOrigin() BinaryOption {
	return func(c *binaryConfig) {
		c.relative = true
	}
}

// WithRejectGaps fails the export if the data records leave a hole between
// the lowest and highest data address. With the default absolute origin the
// fill below the lowest data address is not a gap.
func WithRejectGaps() BinaryOption {
	return func(c *binaryConfig) {
		c.rejectGaps = true
	}
}

// WithRejectExperimental fails the export on S2 and S3 data records instead
// of writing them with a warning.
func WithRejectExperimental() BinaryOption {
	return func(c *binaryConfig) {
		c.rejectExperimental = true
	}
}

// WithMaxImageSize sets the largest image in bytes that will be allocated.
// Default is 64 MiB; n <= 0 keeps the default.
func WithMaxImageSize(n int) BinaryOption {
	return func(c *binaryConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

type segment struct {
	start, end uint64
}

// DataSpan returns the address range [start, end) covered by the data
// records. Both are 0 when the file has no data records.
func (f *File) DataSpan() (start, end uint64, err error) {
	segs, err := f.dataSegments()
	if err != nil || len(segs) == 0 {
		return 0, 0, err
	}

	start, end = segs[0].start, segs[0].end
	for _, s := range segs[1:] {
		start = min(start, s.start)
		end = max(end, s.end)
	}

	return start, end, nil
}

func (f *File) dataSegments() ([]segment, error) {
	var segs []segment
	for i, rec := range f.records {
		if rec.Group() != record.GroupData {
			continue
		}

		addr, ok := rec.Address().Get()
		if !ok {
			return nil, fmt.Errorf("%w: record %d (%s)", ErrMissingAddress, f.lineNums[i], rec.Type())
		}

		segs = append(segs, segment{
			start: uint64(addr),
			end:   uint64(addr) + uint64(rec.DataLen()),
		})
	}

	return segs, nil
}

// Image builds the binary image from the data records (S1, S2, S3) in source
// order; every other record is skipped. By default the image starts at
// address 0, so byte N of the image is address N. Addresses not covered by
// any record hold the fill byte. A later record overwrites bytes of an
// earlier one at the same address.
//
// S2 and S3 records are written, but their export is experimental: each
// type logs one warning, or fails the export with WithRejectExperimental.
//
// Example:
//
//	img, err := f.Image(srec.WithRelativeOrigin(), srec.WithFill(0xFF))
func (f *File) Image(opts ...BinaryOption) (*Image, error) {
	cfg := defaultBinaryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	warned := make(map[record.Type]bool)
	for i, rec := range f.records {
		if rec.Group() != record.GroupData || rec.Type() == record.S1 {
			continue
		}
		if cfg.rejectExperimental {
			return nil, &BinaryConversionError{
				Line:   f.lineNums[i],
				Type:   rec.Type(),
				Reason: "S2/S3 binary export is experimental and disabled",
			}
		}
		if !warned[rec.Type()] {
			warned[rec.Type()] = true
			f.config.logWarn("experimental record type in binary export",
				"type", rec.Type().String(),
				"line", f.lineNums[i],
			)
		}
	}

	segs, err := f.dataSegments()
	if err != nil {
		return nil, err
	}

	if len(segs) == 0 {
		return &Image{}, nil
	}

	if cfg.rejectGaps {
		if err := checkGaps(segs); err != nil {
			return nil, err
		}
	}

	start, end, _ := f.DataSpan()

	var base uint64
	if cfg.relative {
		base = start
	}

	size := end - base
	if size > uint64(cfg.maxSize) {
		reason := fmt.Sprintf("image of %d bytes exceeds limit of %d bytes", size, cfg.maxSize)
		if !cfg.relative && end-start <= uint64(cfg.maxSize) {
			reason += fmt.Sprintf("; data starts at 0x%08X, use a relative origin", start)
		}
		return nil, &BinaryConversionError{Reason: reason}
	}

	data := make([]byte, size)
	for i := range data {
		data[i] = cfg.fill
	}

	for _, rec := range f.records {
		if rec.Group() != record.GroupData {
			continue
		}
		addr, _ := rec.Address().Get()
		copy(data[uint64(addr)-base:], rec.Data())
	}

	f.config.logDebug("built binary image",
		"base", fmt.Sprintf("0x%08X", base),
		"size", size,
		"records", len(segs),
	)

	return &Image{Base: uint32(base), Data: data}, nil
}

// checkGaps reports the first hole between data segments. Only the span from
// the lowest to the highest data address is checked.
func checkGaps(segs []segment) error {
	sorted := make([]segment, len(segs))
	copy(sorted, segs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	reach := sorted[0].end
	for _, s := range sorted[1:] {
		if s.start > reach {
			return &BinaryConversionError{
				Reason: fmt.Sprintf("gap between 0x%08X and 0x%08X", reach, s.start),
			}
		}
		reach = max(reach, s.end)
	}

	return nil
}

// WriteBinary writes the binary image to w. See Image for the layout and
// options.
//
// Example:
//
//	var buf bytes.Buffer
//	if err := f.WriteBinary(&buf); err != nil {
//	    return err
//	}
func (f *File) WriteBinary(w io.Writer, opts ...BinaryOption) error {
	img, err := f.Image(opts...)
	if err != nil {
		return err
	}

	if _, err := w.Write(img.Data); err != nil {
		return fmt.Errorf("failed to write binary: %w", err)
	}

	return nil
}

// WriteBinaryFile writes the binary image to the file at path. The file is
// not created if the image cannot be built.
func (f *File) WriteBinaryFile(path string, opts ...BinaryOption) error {
	img, err := f.Image(opts...)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, img.Data, 0644); err != nil {
		return fmt.Errorf("failed to write binary file: %w", err)
	}

	return nil
}
