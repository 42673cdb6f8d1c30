package srec

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-srec/record"
)

var (
	// ErrNotSRecordFile is returned when a line does not start with 'S'.
	ErrNotSRecordFile = errors.New("not an S-record file")

	// ErrMissingAddress is returned when an aggregate needs an address that
	// a record does not carry, or the file has no records.
	ErrMissingAddress = errors.New("missing address")

	// ErrNoHeaderRecord is returned by HeaderContent when the first record
	// is not an S0 header.
	ErrNoHeaderRecord = errors.New("no header record")

	// ErrHeaderEncoding is returned by HeaderContent when the header payload
	// is not ASCII.
	ErrHeaderEncoding = errors.New("header is not ASCII")

	// ErrBinaryConversion is matched by every BinaryConversionError.
	ErrBinaryConversion = errors.New("binary conversion failed")
)

// BinaryConversionError indicates that a record could not be placed in the
// binary image.
type BinaryConversionError struct {
	// Line is the 1-based position of the record, 0 if not tied to one record
	Line int

	// Type is the record type, if tied to one record
	Type record.Type

	// Reason describes the failure
	Reason string
}

func (e *BinaryConversionError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", ErrBinaryConversion, e.Reason)
	}
	return fmt.Sprintf("%s: record %d (%s): %s", ErrBinaryConversion, e.Line, e.Type, e.Reason)
}

// Is reports whether target is ErrBinaryConversion.
func (e *BinaryConversionError) Is(target error) bool {
	return target == ErrBinaryConversion
}

// ChecksumMismatchError indicates that a record failed count or checksum
// verification during a parse with WithVerifyChecksums(true).
type ChecksumMismatchError struct {
	Line     int
	Expected byte
	Actual   byte

	// CountMismatch is set when the declared byte count is wrong
	CountMismatch bool
}

func (e *ChecksumMismatchError) Error() string {
	if e.CountMismatch {
		return fmt.Sprintf("byte count mismatch for record %d", e.Line)
	}
	return fmt.Sprintf("checksum mismatch for record %d: expected 0x%02X, got 0x%02X",
		e.Line, e.Expected, e.Actual)
}
