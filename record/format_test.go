package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeColorized(t *testing.T) {
	rec, err := Parse("S1050038486515")
	require.NoError(t, err)

	colored := rec.Serialize(true)

	assert.NotEqual(t, rec.String(), colored)
	assert.True(t, strings.HasPrefix(colored, ANSIPalette.Type+"S1"))
	assert.True(t, strings.HasSuffix(colored, ANSIPalette.Reset))
	assert.Contains(t, colored, ANSIPalette.Address+"0038")
	assert.Contains(t, colored, ANSIPalette.Data+"4865")

	plain := colored
	for _, code := range []string{
		ANSIPalette.Type, ANSIPalette.Count, ANSIPalette.Address,
		ANSIPalette.Data, ANSIPalette.Checksum, ANSIPalette.Reset,
	} {
		plain = strings.ReplaceAll(plain, code, "")
	}
	assert.Equal(t, rec.String(), plain)
}

func TestRenderPalette(t *testing.T) {
	rec, err := Parse("S1050038486515")
	require.NoError(t, err)

	p := &Palette{
		Type:     "<t>",
		Count:    "<c>",
		Address:  "<a>",
		Data:     "<d>",
		Checksum: "<x>",
		Reset:    "</>",
	}

	assert.Equal(t, "<t>S1<c>05<a>0038<d>4865<x>15</>", rec.Render(p))
	assert.Equal(t, rec.String(), rec.Render(&Palette{}))
}

func TestRenderOmitsEmptyFields(t *testing.T) {
	rec, err := Parse("S9030000FC")
	require.NoError(t, err)

	p := &Palette{Data: "<d>"}
	assert.Equal(t, "S9030000FC", rec.Render(p))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "S1", S1.String())
	assert.Equal(t, "SA", Type(0x0A).String())
	assert.Equal(t, "termination", GroupTermination.String())
	assert.Equal(t, "unknown", GroupUnknown.String())
	assert.Equal(t, "none", NoAddress.String())
	assert.Equal(t, "0x38", AddressOf(0x38).String())
}
