package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for in, want := range map[string]uint32{
		"0x80000000": 0x80000000,
		"0XFF0000FF": 0xFF0000FF,
		"#ff0000":    0xFF0000FF,
		"#00000080":  0x80000000,
		"#11223344":  0x44332211,
		"2147483648": 0x80000000,
		" #000000 ":  0xFF000000,
	} {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "#12345", "0xZZ", "red", "0x1FFFFFFFF"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestFormatColor(t *testing.T) {
	assert.Equal(t, "#00000080", FormatColor(0x80000000))
	assert.Equal(t, "#11223344", FormatColor(0x44332211))

	for _, c := range []uint32{0, 0xFFFFFFFF, 0x12345678} {
		got, err := ParseColor(FormatColor(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}
