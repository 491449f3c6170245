package frame

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	"github.com/tdewolff/canvas"
)

// Color is a 24-bit LED colour.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

var hexPattern = regexp.MustCompile(`^#?(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// IsBlack reports whether the colour turns the LED off.
func (c Color) IsBlack() bool { return c == Black }

// Hex formats the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// ParseColor accepts #rgb and #rrggbb, with or without the leading #.
func ParseColor(s string) (Color, error) {
	if !hexPattern.MatchString(s) {
		return Color{}, fmt.Errorf("frame: invalid colour %q", s)
	}
	digits := strings.TrimPrefix(s, "#")
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	rgba := canvas.Hex("#" + digits)
	return Color{R: rgba.R, G: rgba.G, B: rgba.B}, nil
}

// FromColor converts any color.Color, dropping alpha against black.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
