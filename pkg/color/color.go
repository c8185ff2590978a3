package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/curveplot/pkg/errors"
)

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Common colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
	Gray  = RGB{180, 180, 180}
)

// named maps CSS-style colour names accepted by [Parse].
var named = map[string]RGB{
	"black":   Black,
	"white":   White,
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"lime":    {0, 255, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"pink":    {255, 192, 203},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
	"gold":    {255, 215, 0},
	"crimson": {220, 20, 60},
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c RGB) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [Parse].
func (c *RGB) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHex parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid hex colour %q", s)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Parse accepts a colour name, a hex string, "rgb(r, g, b)" or a bare
// "r,g,b" triple with components in 0-255.
func Parse(s string) (RGB, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RGB{}, errors.Config("empty colour")
	}
	if c, ok := named[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseTriple(s[4 : len(s)-1])
	}
	if strings.Contains(s, ",") {
		return parseTriple(s)
	}
	return ParseHex(s)
}

func parseTriple(s string) (RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, errors.Config("colour %q must have three components", s)
	}
	var out [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return RGB{}, errors.Config("colour component %q must be an integer in 0-255", strings.TrimSpace(p))
		}
		out[i] = uint8(v)
	}
	return RGB{out[0], out[1], out[2]}, nil
}

// MustParse is like [Parse] but panics on error. Intended for literals.
func MustParse(s string) RGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
