package record

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Palette maps each record field to a prefix written before it. Reset is
// written after the checksum. A nil Palette renders plain text.
type Palette struct {
	Type     string
	Count    string
	Address  string
	Data     string
	Checksum string
	Reset    string
}

// ANSIPalette colors records with ANSI escape sequences.
var ANSIPalette = &Palette{
	Type:     "\x1b[31m", // red
	Count:    "\x1b[33m", // yellow
	Address:  "\x1b[32m", // green
	Data:     "\x1b[94m", // light blue
	Checksum: "\x1b[33m", // yellow
	Reset:    "\x1b[0m",
}

// String returns the record as an uppercase S-Record line without a line
// terminator.
func (r *Record) String() string {
	return r.Render(nil)
}

// Serialize returns the record as a line, colored with ANSIPalette when
// colorize is true.
func (r *Record) Serialize(colorize bool) string {
	if colorize {
		return r.Render(ANSIPalette)
	}
	return r.Render(nil)
}

// Render returns the record as a line with every field prefixed by the
// matching palette entry. The address is truncated to the type's address width.
func (r *Record) Render(p *Palette) string {
	if p == nil {
		p = &Palette{}
	}

	var sb strings.Builder
	sb.Grow(2*r.TotalLen() + 2 + len(p.Type) + len(p.Count) + len(p.Address) + len(p.Data) + len(p.Checksum) + len(p.Reset))

	fmt.Fprintf(&sb, "%s%c%X", p.Type, Marker, uint8(r.typ)&0x0F)
	fmt.Fprintf(&sb, "%s%02X", p.Count, r.count)

	if v, ok := r.address.Get(); ok {
		n := r.AddressLen()
		if n < 4 {
			v &= 1<<(8*n) - 1
		}
		fmt.Fprintf(&sb, "%s%0*X", p.Address, n*2, v)
	}

	if len(r.data) > 0 {
		sb.WriteString(p.Data)
		sb.WriteString(strings.ToUpper(hex.EncodeToString(r.data)))
	}

	fmt.Fprintf(&sb, "%s%02X%s", p.Checksum, r.checksum, p.Reset)

	return sb.String()
}
