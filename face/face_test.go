package face_test

import (
	"image"
	"image/draw"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/marquee/bdf"
	"github.com/ByLCY/marquee/face"
)

// 'A' is a 3x4 block sitting one pixel above the baseline; 'g' descends
// two pixels below it.
const testFont = `STARTFONT 2.1
FONTBOUNDINGBOX 3 6 0 -2
STARTPROPERTIES 2
FONT_ASCENT 5
FONT_DESCENT 2
ENDPROPERTIES
STARTCHAR A
ENCODING 65
SWIDTH 500 0
DWIDTH 4 0
BBX 3 4 0 1
BITMAP
E0
A0
E0
A0
ENDCHAR
STARTCHAR g
ENCODING 103
SWIDTH 500 0
DWIDTH 4 0
BBX 3 3 0 -2
BITMAP
E0
20
E0
ENDCHAR
STARTCHAR question
ENCODING 63
SWIDTH 500 0
DWIDTH 0 0
BBX 2 1 0 0
BITMAP
C0
ENDCHAR
ENDFONT
`

func newFace(t *testing.T, opts ...face.Option) *face.Face {
	t.Helper()
	res := bdf.ParseString(testFont)
	if !res.IsOk() {
		t.Fatalf("font: %v", res.Err())
	}
	return face.New(res.Value(), opts...)
}

func TestDrawerRendersGlyphsAboveBaseline(t *testing.T) {
	f := newFace(t)
	dst := image.NewAlpha(image.Rect(0, 0, 12, 8))
	d := &font.Drawer{Dst: dst, Src: image.Opaque, Face: f, Dot: fixed.P(1, 6)}
	d.DrawString("AA")

	// first A occupies x 1..3, rows 1..4 (baseline 6, yorigin 1, height 4)
	if dst.AlphaAt(1, 1).A != 0xff || dst.AlphaAt(2, 2).A != 0 || dst.AlphaAt(3, 4).A != 0xff {
		t.Fatalf("first glyph misplaced")
	}
	if dst.AlphaAt(1, 5).A != 0 || dst.AlphaAt(1, 0).A != 0 {
		t.Fatalf("glyph drawn outside its box")
	}
	// second A advances by DWIDTH 4
	if dst.AlphaAt(5, 1).A != 0xff || dst.AlphaAt(4, 1).A != 0 {
		t.Fatalf("second glyph should start at x=5")
	}
	if d.Dot.X != fixed.I(9) {
		t.Fatalf("unexpected dot after drawing: %v", d.Dot.X)
	}
}

func TestDescender(t *testing.T) {
	f := newFace(t)
	dst := image.NewAlpha(image.Rect(0, 0, 4, 8))
	d := &font.Drawer{Dst: dst, Src: image.Opaque, Face: f, Dot: fixed.P(0, 5)}
	d.DrawString("g")
	// rows 4..6: baseline 5, yorigin -2, height 3
	if dst.AlphaAt(0, 4).A != 0xff || dst.AlphaAt(2, 5).A != 0xff || dst.AlphaAt(0, 6).A != 0xff {
		t.Fatalf("descender misplaced")
	}
	if dst.AlphaAt(0, 3).A != 0 || dst.AlphaAt(0, 7).A != 0 {
		t.Fatalf("descender drawn outside its box")
	}
}

func TestMeasureAndBounds(t *testing.T) {
	f := newFace(t)
	if got := font.MeasureString(f, "AgA"); got != fixed.I(12) {
		t.Fatalf("unexpected width %v", got)
	}
	bounds, adv, ok := f.GlyphBounds('g')
	if !ok || adv != fixed.I(4) {
		t.Fatalf("unexpected advance %v %v", adv, ok)
	}
	if bounds.Min.Y != fixed.I(-1) || bounds.Max.Y != fixed.I(2) || bounds.Max.X != fixed.I(3) {
		t.Fatalf("unexpected bounds %v", bounds)
	}
	if adv, ok := f.GlyphAdvance('?'); !ok || adv != fixed.I(2) {
		t.Fatalf("zero DWIDTH should fall back to box width, got %v", adv)
	}
}

func TestMetrics(t *testing.T) {
	m := newFace(t).Metrics()
	if m.Ascent != fixed.I(5) || m.Descent != fixed.I(2) || m.Height != fixed.I(7) {
		t.Fatalf("unexpected metrics %+v", m)
	}
}

func TestFallback(t *testing.T) {
	f := newFace(t)
	if _, ok := f.GlyphAdvance('Z'); ok {
		t.Fatalf("missing rune should not resolve without a fallback")
	}

	f = newFace(t, face.WithFallback('?'))
	dr, mask, _, adv, ok := f.Glyph(fixed.P(0, 1), 'Z')
	if !ok || adv != fixed.I(2) || dr != image.Rect(0, 0, 2, 1) {
		t.Fatalf("fallback glyph not used: %v %v %v", dr, adv, ok)
	}
	dst := image.NewAlpha(image.Rect(0, 0, 2, 1))
	draw.DrawMask(dst, dr, image.Opaque, image.Point{}, mask, image.Point{}, draw.Over)
	if dst.AlphaAt(0, 0).A != 0xff || dst.AlphaAt(1, 0).A != 0xff {
		t.Fatalf("fallback mask not drawn")
	}
}
