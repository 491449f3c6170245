// Package render draws glyph sequences onto frames.
//
// Renderers borrow the glyph slice they are built with; the caller keeps
// it alive and unmodified for as long as the renderer is used.
package render

import (
	"image"

	"github.com/ByLCY/marquee/bdf"
	"github.com/ByLCY/marquee/frame"
)

// WrapMode controls what Text does when a glyph would overflow the frame.
type WrapMode int

const (
	// WrapNone draws overflowing glyphs unclipped past the right edge.
	WrapNone WrapMode = iota
	// Wrap starts a new line when the next glyph would not fit.
	Wrap
)

func (m WrapMode) String() string {
	if m == Wrap {
		return "wrap"
	}
	return "none"
}

// Text renders glyphs once, painting only ink pixels.
type Text struct {
	glyphs []bdf.Character
	origin image.Point
	color  frame.Color
	mode   WrapMode
}

// NewText builds a static renderer. glyphs is borrowed.
func NewText(glyphs []bdf.Character, origin image.Point, color frame.Color, mode WrapMode) *Text {
	return &Text{glyphs: glyphs, origin: origin, color: color, mode: mode}
}

// Draw paints the glyphs onto f. Pixels that are not ink are left as they
// were.
func (t *Text) Draw(f *frame.Frame) {
	cursorX, cursorY := 0, 0
	for _, ch := range t.glyphs {
		box := ch.Properties.BoundingBox
		// 换行: 下一个字形越过右边界时回到行首
		if t.mode == Wrap && t.origin.X+cursorX+box.Width > f.Width() {
			cursorX = 0
			cursorY += box.Height
		}
		paintGlyph(f, ch, t.origin.X+cursorX, t.origin.Y+cursorY, t.color)
		cursorX += box.Width
	}
}

// Extent returns the size of the glyph run laid out on a single line.
func (t *Text) Extent() image.Point {
	return Extent(t.glyphs)
}

// Extent returns the single-line width and tallest height of glyphs.
func Extent(glyphs []bdf.Character) image.Point {
	var size image.Point
	for _, ch := range glyphs {
		size.X += ch.Width()
		size.Y = max(size.Y, ch.Height())
	}
	return size
}

func paintGlyph(f *frame.Frame, ch bdf.Character, x0, y0 int, c frame.Color) {
	for row := 0; row < ch.Height(); row++ {
		for col := 0; col < ch.Width(); col++ {
			if ch.Ink(col, row) {
				f.SetPixel(x0+col, y0+row, c)
			}
		}
	}
}
