package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// HexColor is a 24-bit 0xRRGGBB color. In YAML it accepts an integer
// (0x0000ff, 255) or a "#rrggbb" string, and is written as "#rrggbb".
type HexColor uint32

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *HexColor) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", node.Line)
	}
	v, err := ParseHexColor(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c HexColor) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// String returns the color as "#rrggbb".
func (c HexColor) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// ParseHexColor parses "#rrggbb", "0xrrggbb" or a decimal integer.
func ParseHexColor(s string) (HexColor, error) {
	s = strings.TrimSpace(s)
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "#"):
		v, err = strconv.ParseUint(s[1:], 16, 32)
	default:
		v, err = strconv.ParseUint(s, 0, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("color %q out of range", s)
	}
	return HexColor(v), nil
}
