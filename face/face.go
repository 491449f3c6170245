// Package face exposes a parsed BDF font as a golang.org/x/image/font.Face.
package face

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/marquee/bdf"
)

// Face draws BDF glyphs one pixel per bit. It is not safe for concurrent
// use.
type Face struct {
	font     *bdf.Font
	fallback *bdf.Character
	ascent   int
	descent  int
	masks    map[uint32]*image.Alpha
}

var _ font.Face = (*Face)(nil)

// Option configures a Face.
type Option func(*Face)

// WithFallback draws r for runes the font lacks. Without it the font's
// DEFAULT_CHAR is used, if any.
func WithFallback(r rune) Option {
	return func(f *Face) {
		if ch := f.font.CharacterFor(r); ch.IsOk() {
			v := ch.Value()
			f.fallback = &v
		}
	}
}

// New wraps fnt.
func New(fnt *bdf.Font, opts ...Option) *Face {
	f := &Face{font: fnt, masks: map[uint32]*image.Alpha{}}
	h := fnt.Header()
	if h.DefaultChar >= 0 {
		if ch := fnt.Character(uint32(h.DefaultChar)); ch.IsOk() {
			v := ch.Value()
			f.fallback = &v
		}
	}
	for _, opt := range opts {
		opt(f)
	}

	f.ascent, f.descent = h.Ascent, h.Descent
	if f.ascent == 0 && f.descent == 0 {
		for _, code := range fnt.Codes() {
			box := fnt.Character(code).Value().Properties.BoundingBox
			f.ascent = max(f.ascent, box.Height+box.YOrigin)
			f.descent = max(f.descent, -box.YOrigin)
		}
	}
	return f
}

func (f *Face) lookup(r rune) (bdf.Character, bool) {
	if res := f.font.CharacterFor(r); res.IsOk() {
		return res.Value(), true
	}
	if f.fallback != nil {
		return *f.fallback, true
	}
	return bdf.Character{}, false
}

func (f *Face) Close() error { return nil }

// Glyph implements font.Face.
func (f *Face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	ch, ok := f.lookup(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	box := ch.Properties.BoundingBox
	x := dot.X.Round() + box.XOrigin
	y := dot.Y.Round() - (box.YOrigin + box.Height)
	dr = image.Rect(x, y, x+box.Width, y+box.Height)
	return dr, f.mask(ch), image.Point{}, advanceOf(ch), true
}

// GlyphBounds implements font.Face.
func (f *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	ch, ok := f.lookup(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	box := ch.Properties.BoundingBox
	bounds = fixed.Rectangle26_6{
		Min: fixed.P(box.XOrigin, -(box.YOrigin + box.Height)),
		Max: fixed.P(box.XOrigin+box.Width, -box.YOrigin),
	}
	return bounds, advanceOf(ch), true
}

// GlyphAdvance implements font.Face.
func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	ch, ok := f.lookup(r)
	if !ok {
		return 0, false
	}
	return advanceOf(ch), true
}

// Kern implements font.Face. BDF carries no kerning.
func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

// Metrics implements font.Face.
func (f *Face) Metrics() font.Metrics {
	m := font.Metrics{
		Height:     fixed.I(f.ascent + f.descent),
		Ascent:     fixed.I(f.ascent),
		Descent:    fixed.I(f.descent),
		CaretSlope: image.Point{X: 0, Y: 1},
	}
	if box, ok := f.font.BoundingBoxOf('x'); ok {
		m.XHeight = fixed.I(box.Height + box.YOrigin)
	}
	if box, ok := f.font.BoundingBoxOf('H'); ok {
		m.CapHeight = fixed.I(box.Height + box.YOrigin)
	}
	return m
}

func (f *Face) mask(ch bdf.Character) *image.Alpha {
	if m, ok := f.masks[ch.Code()]; ok {
		return m
	}
	m := image.NewAlpha(image.Rect(0, 0, ch.Width(), ch.Height()))
	for row := 0; row < ch.Height(); row++ {
		for col := 0; col < ch.Width(); col++ {
			if ch.Ink(col, row) {
				m.Pix[row*m.Stride+col] = 0xff
			}
		}
	}
	f.masks[ch.Code()] = m
	return m
}

// advanceOf is the device width, or the box width when DWIDTH is zero.
func advanceOf(ch bdf.Character) fixed.Int26_6 {
	w := ch.Properties.DeviceWidth.X
	if w <= 0 {
		w = ch.Width()
	}
	return fixed.I(w)
}
