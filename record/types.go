package record

import "fmt"

// Type is the record type digit following the 'S' marker.
type Type uint8

// Record types. S4 and S6 are reserved.
const (
	S0 Type = iota
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
)

// DefaultAddressLen is the address width in bytes used for unknown types.
const DefaultAddressLen = 3

// Group is the coarse role of a record.
type Group int

// Record groups.
const (
	GroupUnknown Group = iota
	GroupHeader
	GroupData
	GroupCount
	GroupTermination
)

// Group returns the role of the record type.
func (t Type) Group() Group {
	switch t {
	case S0:
		return GroupHeader
	case S1, S2, S3:
		return GroupData
	case S5:
		return GroupCount
	case S7, S8, S9:
		return GroupTermination
	default:
		return GroupUnknown
	}
}

// AddressLen returns the address width in bytes for the record type,
// or DefaultAddressLen for unknown types.
func (t Type) AddressLen() int {
	switch t {
	case S0, S1, S5, S9:
		return 2
	case S2, S8:
		return 3
	case S3, S7:
		return 4
	default:
		return DefaultAddressLen
	}
}

func (t Type) String() string {
	return fmt.Sprintf("S%X", uint8(t))
}

func (g Group) String() string {
	switch g {
	case GroupHeader:
		return "header"
	case GroupData:
		return "data"
	case GroupCount:
		return "count"
	case GroupTermination:
		return "termination"
	default:
		return "unknown"
	}
}

// Address is an optional record address. The zero value is NoAddress,
// which is distinct from a present address of 0.
type Address struct {
	value   uint32
	present bool
}

// NoAddress is the absent address.
var NoAddress = Address{}

// AddressOf returns a present address.
func AddressOf(v uint32) Address {
	return Address{value: v, present: true}
}

// Get returns the address value and whether it is present.
func (a Address) Get() (uint32, bool) {
	return a.value, a.present
}

// IsPresent reports whether the address is present.
func (a Address) IsPresent() bool {
	return a.present
}

func (a Address) String() string {
	if !a.present {
		return "none"
	}
	return fmt.Sprintf("0x%X", a.value)
}
