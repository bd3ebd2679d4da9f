package options

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor accepts the host packed form "0xAABBGGRR" (alpha in the high
// byte, red in the low byte) or a CSS style "#RRGGBB" / "#RRGGBBAA", and
// returns the packed host value.
func ParseColor(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 6 {
			hex += "ff"
		}
		if len(hex) != 8 {
			return 0, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b, a := uint32(v>>24)&0xFF, uint32(v>>16)&0xFF, uint32(v>>8)&0xFF, uint32(v)&0xFF
		return r | g<<8 | b<<16 | a<<24, nil
	case strings.HasPrefix(strings.ToLower(s), "0x"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return uint32(v), nil
	default:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: want 0xAABBGGRR, #RRGGBBAA or a decimal value", s)
		}
		return uint32(v), nil
	}
}

// FormatColor renders a packed host color as "#RRGGBBAA".
func FormatColor(c uint32) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c&0xFF, (c>>8)&0xFF, (c>>16)&0xFF, c>>24)
}
