// Package rgb provides the 8-bit sRGB color value shared by the contrast and
// color-blindness checks, along with parsing of the CSS color notations those
// checks accept.
package rgb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidColor is returned when a color string is neither hex nor rgb() notation
	ErrInvalidColor = errors.New("invalid color")
	// ErrUnsupportedFormat is returned for recognised CSS notations that are not supported, such as hsl()
	ErrUnsupportedFormat = errors.New("unsupported color format")
)

var (
	hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	rgbPattern = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
)

// Color is an sRGB color with 8-bit channels
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Parse parses #RGB, #RRGGBB (the # is optional) and rgb(r, g, b) notations.
func Parse(s string) (Color, error) {
	value := strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(value, "hsl"):
		return Color{}, errors.Wrapf(ErrUnsupportedFormat, "%q: HSL colors are not supported, use hex or rgb()", s)
	case strings.HasPrefix(value, "rgb"):
		return parseFunctional(s, value)
	case hexPattern.MatchString(value):
		if !strings.HasPrefix(value, "#") {
			value = "#" + value
		}
		c, err := colorful.Hex(value)
		if err != nil {
			return Color{}, errors.Wrapf(ErrInvalidColor, "%q: %v", s, err)
		}
		return FromColorful(c), nil
	}

	return Color{}, errors.Wrapf(ErrInvalidColor, "%q: expected #RGB, #RRGGBB or rgb(r, g, b)", s)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseFunctional(raw, value string) (Color, error) {
	m := rgbPattern.FindStringSubmatch(value)
	if m == nil {
		return Color{}, errors.Wrapf(ErrInvalidColor, "%q: expected rgb(r, g, b)", raw)
	}

	var channels [3]uint8
	for i, part := range m[1:] {
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return Color{}, errors.Wrapf(ErrInvalidColor, "%q: channel %q out of range 0-255", raw, part)
		}
		channels[i] = uint8(n)
	}

	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// FromColorful converts a go-colorful color, clamping out-of-gamut values.
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Colorful returns the color as a go-colorful value with channels in [0,1].
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// Normalized returns the channels scaled to [0,1].
func (c Color) Normalized() [3]float64 {
	return [3]float64{float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0}
}

// Hex returns the #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the rgb(r, g, b) form.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
