package srec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/moffa90/go-srec/record"
)

// MOTType is the file variant, named after the conventional file extension
// of each data/termination record pair.
type MOTType int

// MOT types.
const (
	MOTUnknown MOTType = iota
	S19                // S1 data, S9 termination
	S28                // S2 data, S8 termination
	S37                // S3 data, S7 termination
)

func (m MOTType) String() string {
	switch m {
	case S19:
		return "S19"
	case S28:
		return "S28"
	case S37:
		return "S37"
	default:
		return "unknown"
	}
}

// File is a parsed S-Record file: the records in source order plus derived
// statistics. A File is not safe for concurrent use.
type File struct {
	path     string
	size     int64
	records  []*record.Record
	lineNums []int
	config   Config

	// counts caches the record type histogram; reset only by a full re-parse
	counts map[record.Type]int
}

// Parse parses an S-Record file from the given file path.
// Returns the complete file or an error if parsing fails.
//
// Example:
//
//	f, err := srec.Parse("firmware.s19")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s file, %d records\n", f.MOTType(), f.Lines())
func Parse(path string, opts ...Option) (*File, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = fp.Close() }()

	f, err := ParseReader(fp, opts...)
	if err != nil {
		return nil, err
	}
	f.path = path

	return f, nil
}

// ParseReader parses an S-Record file from any io.Reader.
// Every non-blank line must start with 'S' and parse as a record; the first
// failure aborts the parse and no File is returned.
//
// Example:
//
//	f, err := srec.ParseReader(strings.NewReader("S1050038486515\nS9030000FC\n"))
func ParseReader(r io.Reader, opts ...Option) (*File, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &File{config: cfg}
	if err := f.Reparse(r); err != nil {
		return nil, err
	}

	return f, nil
}

// FromRecords builds a File from records that are already parsed or built
// with record.New. Size reports 0 for such a file.
func FromRecords(records []*record.Record, opts ...Option) *File {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &File{
		config:   cfg,
		records:  make([]*record.Record, len(records)),
		lineNums: make([]int, len(records)),
	}
	copy(f.records, records)
	for i := range f.lineNums {
		f.lineNums[i] = i + 1
	}

	return f
}

// Reparse replaces the contents of f with the records read from r and
// resets every cached statistic. On error f is left unchanged.
func (f *File) Reparse(r io.Reader) error {
	cr := &countingReader{r: r}
	scanner := bufio.NewScanner(cr)
	scanner.Split(scanRecordLines)

	records := make([]*record.Record, 0, DefaultRecordCapacity)
	lineNums := make([]int, 0, DefaultRecordCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Skip empty lines
		if line == "" {
			continue
		}

		if line[0] != record.Marker {
			return fmt.Errorf("line %d: %w", lineNum, ErrNotSRecordFile)
		}

		rec, err := record.Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}

		if f.config.VerifyChecksums {
			if err := verify(rec, lineNum); err != nil {
				return err
			}
		}

		records = append(records, rec)
		lineNums = append(lineNums, lineNum)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, ErrNotSRecordFile) || errors.Is(err, record.ErrInvalidFormat) {
			return fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	f.records = records
	f.lineNums = lineNums
	f.size = cr.n
	f.counts = nil

	f.config.logDebug("parsed S-record source",
		"records", len(records),
		"bytes", cr.n,
	)

	return nil
}

// scanRecordLines is bufio.ScanLines with a bound on the pending line. A line
// that grows past record.MaxLineLength without a terminator fails before the
// scanner buffer limit is reached, so binary input reports ErrNotSRecordFile.
func scanRecordLines(data []byte, atEOF bool) (int, []byte, error) {
	advance, token, err := bufio.ScanLines(data, atEOF)
	if advance > 0 || token != nil || err != nil {
		return advance, token, err
	}

	// One extra byte for a trailing '\r'.
	if len(data) > record.MaxLineLength+1 {
		if data[0] != record.Marker {
			return 0, nil, ErrNotSRecordFile
		}
		return 0, nil, &record.FormatError{
			Field:  "line",
			Reason: fmt.Sprintf("too long: more than %d characters", record.MaxLineLength),
		}
	}

	return 0, nil, nil
}

func verify(rec *record.Record, lineNum int) error {
	if !rec.IsCountValid() {
		return &ChecksumMismatchError{Line: lineNum, CountMismatch: true}
	}
	if !rec.IsChecksumValid() {
		return &ChecksumMismatchError{
			Line:     lineNum,
			Expected: rec.CalcChecksum(),
			Actual:   rec.Checksum(),
		}
	}
	return nil
}

// DefaultRecordCapacity is the default initial capacity for the record slice.
const DefaultRecordCapacity = 256

// Path returns the path the file was parsed from, or "" for readers.
func (f *File) Path() string { return f.path }

// Size returns the number of bytes read from the source.
func (f *File) Size() int64 { return f.size }

// Lines returns the number of records.
func (f *File) Lines() int { return len(f.records) }

// Records returns the records in source order.
func (f *File) Records() []*record.Record {
	out := make([]*record.Record, len(f.records))
	copy(out, f.records)
	return out
}

// RecordCounts returns the number of records per record type. The histogram
// is computed on first use and cached until Reparse.
func (f *File) RecordCounts() map[record.Type]int {
	return maps.Clone(f.recordCounts())
}

func (f *File) recordCounts() map[record.Type]int {
	if f.counts == nil {
		counts := make(map[record.Type]int)
		for _, rec := range f.records {
			counts[rec.Type()]++
		}
		f.counts = counts
	}
	return f.counts
}

// MOTType classifies the file. Any record of an unknown type makes the file
// MOTUnknown. Otherwise exactly one data/termination pair family (S1+S9,
// S2+S8 or S3+S7) may be present; a mix of families, or none, is MOTUnknown.
func (f *File) MOTType() MOTType {
	for _, rec := range f.records {
		if rec.Group() == record.GroupUnknown {
			return MOTUnknown
		}
	}

	counts := f.recordCounts()
	candidates := []struct {
		mot   MOTType
		count int
	}{
		{S19, counts[record.S1] + counts[record.S9]},
		{S28, counts[record.S2] + counts[record.S8]},
		{S37, counts[record.S3] + counts[record.S7]},
	}

	total := 0
	for _, c := range candidates {
		total += c.count
	}

	result, matches := MOTUnknown, 0
	for _, c := range candidates {
		if c.count == total {
			result = c.mot
			matches++
		}
	}
	if matches != 1 {
		return MOTUnknown
	}

	return result
}

// HasHeader reports whether the file contains an S0 record.
func (f *File) HasHeader() bool {
	return f.recordCounts()[record.S0] > 0
}

// MinAddress returns the lowest address over all records.
// It fails with ErrMissingAddress if the file is empty or any record has
// no address.
func (f *File) MinAddress() (uint32, error) {
	return f.addressBound(func(a, b uint32) bool { return a < b })
}

// MaxAddress returns the highest address over all records.
// It fails with ErrMissingAddress if the file is empty or any record has
// no address.
func (f *File) MaxAddress() (uint32, error) {
	return f.addressBound(func(a, b uint32) bool { return a > b })
}

func (f *File) addressBound(better func(a, b uint32) bool) (uint32, error) {
	if len(f.records) == 0 {
		return 0, fmt.Errorf("%w: file has no records", ErrMissingAddress)
	}

	var bound uint32
	for i, rec := range f.records {
		addr, ok := rec.Address().Get()
		if !ok {
			return 0, fmt.Errorf("%w: record %d (%s)", ErrMissingAddress, f.lineNums[i], rec.Type())
		}
		if i == 0 || better(addr, bound) {
			bound = addr
		}
	}

	return bound, nil
}

// HeaderContent decodes the data of the first record as ASCII text.
// It fails with ErrNoHeaderRecord when the first record is not an S0
// header, and with ErrHeaderEncoding if a byte is outside the ASCII range.
// Padding bytes such as trailing NULs are returned as they are.
func (f *File) HeaderContent() (string, error) {
	if len(f.records) == 0 {
		return "", fmt.Errorf("%w: file has no records", ErrNoHeaderRecord)
	}

	first := f.records[0]
	if first.Group() != record.GroupHeader {
		return "", fmt.Errorf("%w: first record is %s", ErrNoHeaderRecord, first.Type())
	}

	data := first.Data()
	for i, b := range data {
		if b > 0x7F {
			return "", fmt.Errorf("%w: byte 0x%02X at offset %d", ErrHeaderEncoding, b, i)
		}
	}

	return string(data), nil
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
