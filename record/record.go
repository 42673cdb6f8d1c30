package record

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Constants for S-Record line parsing.
const (
	// Marker is the first character of every record line
	Marker = 'S'

	// MinLineLength is the length in characters a trimmed line must exceed
	MinLineLength = 8

	// MaxCount is the largest byte count a record can declare
	MaxCount = 0xFF

	// MaxLineLength is the longest trimmed line a record can occupy: marker,
	// type and count, then MaxCount bytes of address, data and checksum
	MaxLineLength = 4 + 2*MaxCount

	// typeOffset, countOffset and addressOffset index the fixed-width prefix
	typeOffset    = 1
	countOffset   = 2
	addressOffset = 4

	// checksumChars is the width of the trailing checksum field
	checksumChars = 2
)

// Record is a single parsed S-Record. A Record is never modified after it is
// created; use the accessor methods to read its fields.
type Record struct {
	typ      Type
	count    byte
	address  Address
	data     []byte
	checksum byte
}

// Parse parses one S-Record line. Trailing "\r" and "\n" characters are
// removed before any length check. Parse validates structure only; use the
// Is*Valid predicates to check the declared count and checksum.
//
// All failures match ErrInvalidFormat.
//
// Example:
//
//	rec, err := record.Parse("S9030000FC")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(rec.Group()) // termination
func Parse(line string) (*Record, error) {
	line = strings.TrimRight(line, "\r\n")

	if len(line)%2 != 0 {
		return nil, formatErr("line", fmt.Sprintf("odd length: got %d characters", len(line)), nil)
	}

	if len(line) <= MinLineLength {
		return nil, formatErr("line", fmt.Sprintf("too short: got %d characters, must exceed %d", len(line), MinLineLength), nil)
	}

	if len(line) > MaxLineLength {
		return nil, formatErr("line", fmt.Sprintf("too long: got %d characters, maximum is %d", len(line), MaxLineLength), nil)
	}

	if line[0] != Marker {
		return nil, formatErr("line", fmt.Sprintf("missing %q marker", Marker), nil)
	}

	t, err := strconv.ParseUint(line[typeOffset:countOffset], 16, 8)
	if err != nil {
		return nil, formatErr("type", "invalid hex digit", err)
	}
	typ := Type(t)

	count, err := hex.DecodeString(line[countOffset:addressOffset])
	if err != nil {
		return nil, formatErr("count", "invalid hex data", err)
	}

	// The type decides how wide the address field is, so it has to be
	// known before the remaining fields can be sliced.
	addressEnd := addressOffset + typ.AddressLen()*2
	checksumStart := len(line) - checksumChars
	if addressEnd > checksumStart {
		return nil, formatErr("address", fmt.Sprintf("%s address needs %d characters, only %d available",
			typ, typ.AddressLen()*2, checksumStart-addressOffset), nil)
	}

	rec := &Record{
		typ:   typ,
		count: count[0],
	}

	if addrField := line[addressOffset:addressEnd]; addrField != "" {
		addr, err := strconv.ParseUint(addrField, 16, 32)
		if err != nil {
			return nil, formatErr("address", "invalid hex data", err)
		}
		rec.address = AddressOf(uint32(addr))
	}

	if dataField := line[addressEnd:checksumStart]; dataField != "" {
		rec.data, err = hex.DecodeString(dataField)
		if err != nil {
			return nil, formatErr("data", "invalid hex data", err)
		}
	}

	checksum, err := hex.DecodeString(line[checksumStart:])
	if err != nil {
		return nil, formatErr("checksum", "invalid hex data", err)
	}
	rec.checksum = checksum[0]

	return rec, nil
}

// New builds a well-formed record of type t, computing the byte count and
// checksum. The address must fit in the type's address width.
//
// Example:
//
//	rec, err := record.New(record.S1, record.AddressOf(0x0038), []byte("He"))
//	fmt.Println(rec) // S1050038486515
func New(t Type, addr Address, data []byte) (*Record, error) {
	addrLen := 0
	if v, ok := addr.Get(); ok {
		addrLen = t.AddressLen()
		if addrLen < 4 && v>>(8*addrLen) != 0 {
			return nil, formatErr("address", fmt.Sprintf("0x%X does not fit in %d bytes for %s", v, addrLen, t), nil)
		}
	}

	count := addrLen + len(data) + 1
	if count > MaxCount {
		return nil, formatErr("count", fmt.Sprintf("record too long: %d bytes, maximum is %d", count, MaxCount), nil)
	}

	rec := &Record{
		typ:     t,
		count:   byte(count),
		address: addr,
	}
	if len(data) > 0 {
		rec.data = make([]byte, len(data))
		copy(rec.data, data)
	}
	rec.checksum = rec.CalcChecksum()

	return rec, nil
}

// Type returns the record type.
func (r *Record) Type() Type { return r.typ }

// Count returns the declared byte count.
func (r *Record) Count() byte { return r.count }

// Address returns the record address.
func (r *Record) Address() Address { return r.address }

// Checksum returns the declared checksum.
func (r *Record) Checksum() byte { return r.checksum }

// Data returns a copy of the data bytes, or nil if the record has no data field.
func (r *Record) Data() []byte {
	if r.data == nil {
		return nil
	}
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

// HasData reports whether the record carries a data field.
func (r *Record) HasData() bool { return len(r.data) > 0 }

// Group returns the role of the record.
func (r *Record) Group() Group { return r.typ.Group() }

// AddressLen returns the address width in bytes for the record type.
func (r *Record) AddressLen() int { return r.typ.AddressLen() }

// DataLen returns the number of data bytes, 0 if there is no data field.
func (r *Record) DataLen() int { return len(r.data) }

// TotalLen returns the structural length in bytes: type and count (3),
// plus the address width if an address is present, plus the data bytes.
func (r *Record) TotalLen() int {
	return 3 + r.presentAddressLen() + r.DataLen()
}

// CalcChecksum computes the checksum from the declared count, address and data.
func (r *Record) CalcChecksum() byte {
	return Checksum(r.count, r.address, r.AddressLen(), r.data)
}

// IsTypeValid reports whether the record type is one of the defined types,
// that is, the group is not GroupUnknown.
func (r *Record) IsTypeValid() bool {
	return r.Group() != GroupUnknown
}

// IsCountValid reports whether the declared byte count matches the address,
// data and checksum bytes actually present.
func (r *Record) IsCountValid() bool {
	return int(r.count) == r.presentAddressLen()+r.DataLen()+1
}

// IsChecksumValid reports whether the declared checksum matches CalcChecksum.
func (r *Record) IsChecksumValid() bool {
	return r.checksum == r.CalcChecksum()
}

// Valid reports whether the type, count and checksum are all valid.
func (r *Record) Valid() bool {
	return r.IsTypeValid() && r.IsCountValid() && r.IsChecksumValid()
}

func (r *Record) presentAddressLen() int {
	if !r.address.IsPresent() {
		return 0
	}
	return r.AddressLen()
}
