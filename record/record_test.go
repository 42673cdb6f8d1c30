package record

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		typ      Type
		count    byte
		address  uint32
		data     []byte
		checksum byte
	}{
		{
			name:     "header",
			line:     "S00F000068656C6C6F202020202000003C",
			typ:      S0,
			count:    0x0F,
			address:  0x0000,
			data:     []byte("hello     \x00\x00"),
			checksum: 0x3C,
		},
		{
			name:     "S1 data",
			line:     "S111003848656C6C6F20776F726C642E0A0042",
			typ:      S1,
			count:    0x11,
			address:  0x0038,
			data:     []byte("Hello world.\n\x00"),
			checksum: 0x42,
		},
		{
			name:     "S2 data",
			line:     "S20801000001020304EC",
			typ:      S2,
			count:    0x08,
			address:  0x010000,
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			checksum: 0xEC,
		},
		{
			name:     "S3 data",
			line:     "S30908000000DEADBEEFB6",
			typ:      S3,
			count:    0x09,
			address:  0x08000000,
			data:     []byte{0xDE, 0xAD, 0xBE, 0xEF},
			checksum: 0xB6,
		},
		{
			name:     "S5 count",
			line:     "S5030003F9",
			typ:      S5,
			count:    0x03,
			address:  0x0003,
			checksum: 0xF9,
		},
		{
			name:     "S7 termination",
			line:     "S70508000000F2",
			typ:      S7,
			count:    0x05,
			address:  0x08000000,
			checksum: 0xF2,
		},
		{
			name:     "S8 termination",
			line:     "S804010000FA",
			typ:      S8,
			count:    0x04,
			address:  0x010000,
			checksum: 0xFA,
		},
		{
			name:     "S9 termination",
			line:     "S9030000FC",
			typ:      S9,
			count:    0x03,
			address:  0x0000,
			checksum: 0xFC,
		},
		{
			name:     "CRLF terminated",
			line:     "S9030000FC\r\n",
			typ:      S9,
			count:    0x03,
			address:  0x0000,
			checksum: 0xFC,
		},
		{
			name:     "LF terminated",
			line:     "S1050038486515\n",
			typ:      S1,
			count:    0x05,
			address:  0x0038,
			data:     []byte{0x48, 0x65},
			checksum: 0x15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(tt.line)
			require.NoError(t, err)

			assert.Equal(t, tt.typ, rec.Type())
			assert.Equal(t, tt.count, rec.Count())

			addr, ok := rec.Address().Get()
			assert.True(t, ok)
			assert.Equal(t, tt.address, addr)

			assert.Equal(t, tt.data, rec.Data())
			assert.Equal(t, tt.checksum, rec.Checksum())

			assert.True(t, rec.IsTypeValid())
			assert.True(t, rec.IsCountValid())
			assert.True(t, rec.IsChecksumValid())
			assert.True(t, rec.Valid())
		})
	}
}

func TestParseLowercase(t *testing.T) {
	rec, err := Parse("S111003848656c6c6f20776f726c642e0a0042")
	require.NoError(t, err)

	assert.Equal(t, "S111003848656C6C6F20776F726C642E0A0042", rec.String())
	assert.True(t, rec.IsChecksumValid())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		errMsg string
	}{
		{name: "empty", line: "", errMsg: "too short"},
		{name: "odd length", line: "S9030000FC0", errMsg: "odd length"},
		{name: "exactly minimum length", line: "S1030000", errMsg: "too short"},
		{name: "only line terminator", line: "\r\n", errMsg: "too short"},
		{name: "missing marker", line: "X9030000FC", errMsg: "marker"},
		{name: "invalid type digit", line: "SG030000FC", errMsg: "type"},
		{name: "invalid count", line: "S9ZZ0000FC", errMsg: "count"},
		{name: "invalid address", line: "S903XX00FC", errMsg: "address"},
		{name: "invalid data", line: "S1050038ZZ6515", errMsg: "data"},
		{name: "invalid checksum", line: "S9030000QQ", errMsg: "checksum"},
		{name: "address overlaps checksum", line: "S3050000FA", errMsg: "address needs 8 characters"},
		{name: "longer than any count allows", line: "S1FF0000" + strings.Repeat("00", 254), errMsg: "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse(tt.line)
			require.Error(t, err)
			assert.Nil(t, rec)

			assert.True(t, errors.Is(err, ErrInvalidFormat), "error %v should match ErrInvalidFormat", err)
			assert.True(t, IsFormatError(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestParseMaxLength(t *testing.T) {
	rec, err := New(S1, AddressOf(0x1000), make([]byte, MaxCount-3))
	require.NoError(t, err)

	line := rec.String()
	require.Len(t, line, MaxLineLength)

	parsed, err := Parse(line)
	require.NoError(t, err)
	assert.True(t, parsed.Valid())
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"S00F000068656C6C6F202020202000003C",
		"S11F00007C0802A6900100049421FFF07C6C1B787C8C23783C6000003863000026",
		"S11F001C4BFFFFE5398000007D83637880010014382100107C0803A64E800020E9",
		"S111003848656C6C6F20776F726C642E0A0042",
		"S5030003F9",
		"S9030000FC",
		"S20801000001020304EC",
		"S804010000FA",
		"S30908000000DEADBEEFB6",
		"S70508000000F2",
		"S30908000000deadbeefb6",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			rec, err := Parse(line)
			require.NoError(t, err)

			assert.Equal(t, strings.ToUpper(line), rec.String())
			assert.Equal(t, strings.ToUpper(line), rec.Serialize(false))
		})
	}
}

func TestChecksumRegression(t *testing.T) {
	// count 0x05, address 0x0038, data 0x48 0x65:
	// 0x05+0x00+0x38+0x48+0x65 = 0xEA, complement 0x15
	rec, err := Parse("S1050038486515")
	require.NoError(t, err)

	assert.Equal(t, byte(0x15), rec.CalcChecksum())
	assert.True(t, rec.IsChecksumValid())
	assert.True(t, rec.IsCountValid())

	// Declares count 0x07 for two data bytes and a checksum that does not
	// match: 0x07+0x00+0x38+0x48+0x65 = 0xEC, complement 0x13.
	bad, err := Parse("S1070038486596")
	require.NoError(t, err)

	assert.Equal(t, byte(0x13), bad.CalcChecksum())
	assert.Equal(t, byte(0x96), bad.Checksum())
	assert.False(t, bad.IsChecksumValid())
	assert.False(t, bad.IsCountValid())
	assert.False(t, bad.Valid())
}

func TestAddressLen(t *testing.T) {
	want := map[Type]int{S0: 2, S1: 2, S2: 3, S3: 4, S5: 2, S7: 4, S8: 3, S9: 2}

	for typ := Type(0); typ <= 0x0F; typ++ {
		expected, known := want[typ]
		if !known {
			expected = DefaultAddressLen
		}
		assert.Equal(t, expected, typ.AddressLen(), "AddressLen(%s)", typ)
	}

	assert.Equal(t, 3, S4.AddressLen())
	assert.Equal(t, 3, S6.AddressLen())
}

func TestGroup(t *testing.T) {
	want := map[Type]Group{
		S0: GroupHeader,
		S1: GroupData,
		S2: GroupData,
		S3: GroupData,
		S4: GroupUnknown,
		S5: GroupCount,
		S6: GroupUnknown,
		S7: GroupTermination,
		S8: GroupTermination,
		S9: GroupTermination,
	}

	seen := make(map[Group]int)
	for typ := S0; typ <= S9; typ++ {
		assert.Equal(t, want[typ], typ.Group(), "Group(%s)", typ)
		seen[typ.Group()]++
	}

	assert.Equal(t, map[Group]int{
		GroupHeader:      1,
		GroupData:        3,
		GroupCount:       1,
		GroupTermination: 3,
		GroupUnknown:     2,
	}, seen)

	assert.Equal(t, GroupUnknown, Type(0x0A).Group())
}

func TestIsTypeValid(t *testing.T) {
	// S4 is reserved: it parses with the default 3 byte address but its type
	// is not valid.
	rec, err := Parse("S404000000FB")
	require.NoError(t, err)

	assert.Equal(t, GroupUnknown, rec.Group())
	assert.False(t, rec.IsTypeValid())
	assert.True(t, rec.IsCountValid())
	assert.True(t, rec.IsChecksumValid())
	assert.False(t, rec.Valid())

	valid, err := Parse("S9030000FC")
	require.NoError(t, err)
	assert.True(t, valid.IsTypeValid())
}

func TestLengths(t *testing.T) {
	rec, err := Parse("S30908000000DEADBEEFB6")
	require.NoError(t, err)

	assert.Equal(t, 4, rec.AddressLen())
	assert.Equal(t, 4, rec.DataLen())
	assert.Equal(t, 3+4+4, rec.TotalLen())
	assert.True(t, rec.HasData())

	term, err := Parse("S9030000FC")
	require.NoError(t, err)

	assert.Equal(t, 0, term.DataLen())
	assert.False(t, term.HasData())
	assert.Nil(t, term.Data())
	assert.Equal(t, 3+2, term.TotalLen())
}

func TestDataIsCopied(t *testing.T) {
	rec, err := Parse("S1050038486515")
	require.NoError(t, err)

	data := rec.Data()
	data[0] = 0x00

	assert.Equal(t, []byte{0x48, 0x65}, rec.Data())
	assert.True(t, rec.IsChecksumValid())
}

func TestNew(t *testing.T) {
	t.Run("S1 data", func(t *testing.T) {
		rec, err := New(S1, AddressOf(0x0038), []byte{0x48, 0x65})
		require.NoError(t, err)

		assert.Equal(t, "S1050038486515", rec.String())
		assert.True(t, rec.Valid())
	})

	t.Run("termination without data", func(t *testing.T) {
		rec, err := New(S7, AddressOf(0x08000000), nil)
		require.NoError(t, err)

		assert.Equal(t, "S70508000000F2", rec.String())
		assert.Nil(t, rec.Data())
	})

	t.Run("input is copied", func(t *testing.T) {
		data := []byte{0xAA}
		rec, err := New(S2, AddressOf(0), data)
		require.NoError(t, err)

		data[0] = 0x00
		assert.Equal(t, "S205000000AA50", rec.String())
	})

	t.Run("absent address", func(t *testing.T) {
		rec, err := New(S1, NoAddress, []byte{0x01, 0x02})
		require.NoError(t, err)

		assert.False(t, rec.Address().IsPresent())
		assert.Equal(t, byte(3), rec.Count())
		assert.Equal(t, 3+2, rec.TotalLen())
		assert.True(t, rec.IsCountValid())
		assert.True(t, rec.IsChecksumValid())
		assert.Equal(t, "S1030102F9", rec.String())
	})

	t.Run("address too wide", func(t *testing.T) {
		_, err := New(S1, AddressOf(0x10000), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)
		assert.Contains(t, err.Error(), "does not fit in 2 bytes")
	})

	t.Run("record too long", func(t *testing.T) {
		_, err := New(S3, AddressOf(0), make([]byte, 251))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)
		assert.Contains(t, err.Error(), "record too long")
	})

	t.Run("longest record", func(t *testing.T) {
		rec, err := New(S3, AddressOf(0), make([]byte, 250))
		require.NoError(t, err)
		assert.Equal(t, byte(MaxCount), rec.Count())

		parsed, err := Parse(rec.String())
		require.NoError(t, err)
		assert.Equal(t, rec.String(), parsed.String())
	})
}
