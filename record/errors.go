package record

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is matched by every structural parse failure.
var ErrInvalidFormat = errors.New("invalid S-record format")

// FormatError describes why a line could not be parsed.
// It matches ErrInvalidFormat with errors.Is.
type FormatError struct {
	// Field is the record field being decoded ("line", "type", "count",
	// "address", "data" or "checksum")
	Field string

	// Reason is a short human-readable description
	Reason string

	// Err is the underlying decode error, if any
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", ErrInvalidFormat, e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidFormat, e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IsFormatError returns true if err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func formatErr(field, reason string, err error) error {
	return &FormatError{Field: field, Reason: reason, Err: err}
}
