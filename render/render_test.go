package render_test

import (
	"image"
	"testing"
	"time"

	"github.com/ByLCY/marquee/bdf"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/render"
)

var orange = frame.Color{R: 255, G: 50}

// solid returns a w x h glyph with every pixel inked.
func solid(code uint32, w, h int) bdf.Character {
	rowBytes := (w + 7) / 8
	mask := uint32(1)<<w - 1
	mask <<= 8*rowBytes - w
	rows := make([]uint32, h)
	for i := range rows {
		rows[i] = mask
	}
	return bdf.Character{
		Name: string(rune(code)),
		Properties: bdf.CharacterProperties{
			Encoding:    code,
			DeviceWidth: bdf.Pair{X: w},
			BoundingBox: bdf.BoundingBox{Width: w, Height: h},
		},
		Bitmap: rows,
	}
}

func blank(code uint32, w, h int) bdf.Character {
	ch := solid(code, w, h)
	ch.Bitmap = make([]uint32, h)
	return ch
}

func litColumns(buf *frame.Buffer, x0, x1, y0, y1 int) int {
	n := 0
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			if !buf.Pixel(x, y).IsBlack() {
				n++
				break
			}
		}
	}
	return n
}

func TestTextRendersEncodedMessage(t *testing.T) {
	const doc = `STARTFONT 2.1
ENDPROPERTIES
STARTCHAR A
ENCODING 65
SWIDTH 500 0
DWIDTH 4 0
BBX 4 5 0 0
BITMAP
F0
F0
F0
F0
F0
ENDCHAR
STARTCHAR space
ENCODING 32
SWIDTH 500 0
DWIDTH 4 0
BBX 4 5 0 0
BITMAP
00
00
00
00
00
ENDCHAR
ENDFONT
`
	font := bdf.ParseString(doc).Value()
	glyphs := font.Encode("A A").Value()
	if len(glyphs) != 3 {
		t.Fatalf("expected 3 glyphs, got %d", len(glyphs))
	}

	buf := frame.NewBuffer(16, 8)
	render.NewText(glyphs, image.Point{X: 1, Y: 2}, orange, render.WrapNone).Draw(frame.New(buf))

	if got := litColumns(buf, 1, 5, 0, 8); got != 4 {
		t.Fatalf("first A: expected 4 lit columns, got %d", got)
	}
	if got := litColumns(buf, 5, 9, 0, 8); got != 0 {
		t.Fatalf("space: expected no lit columns, got %d", got)
	}
	if got := litColumns(buf, 9, 13, 0, 8); got != 4 {
		t.Fatalf("second A: expected 4 lit columns, got %d", got)
	}
	if buf.Lit() != 2*4*5 {
		t.Fatalf("expected 40 lit pixels, got %d", buf.Lit())
	}
	if buf.Pixel(1, 2) != orange || !buf.Pixel(1, 1).IsBlack() || !buf.Pixel(1, 7).IsBlack() {
		t.Fatalf("glyph rows should start at the origin row")
	}
}

func TestTextWrapStartsNewLine(t *testing.T) {
	glyphs := []bdf.Character{solid('A', 4, 5), solid('B', 4, 5), solid('C', 4, 5)}
	buf := frame.NewBuffer(10, 12)
	render.NewText(glyphs, image.Point{X: 1}, orange, render.Wrap).Draw(frame.New(buf))

	// third glyph: 1+8+4 > 10, so it moves to x=1, y=5
	if buf.Pixel(1, 5) != orange || buf.Pixel(4, 9) != orange {
		t.Fatalf("wrapped glyph not drawn at line start")
	}
	if litColumns(buf, 9, 10, 0, 12) != 0 {
		t.Fatalf("no glyph should reach the last column when wrapping")
	}
	if buf.Lit() != 3*4*5 {
		t.Fatalf("expected 60 lit pixels, got %d", buf.Lit())
	}
}

func TestTextWithoutWrapOverflows(t *testing.T) {
	glyphs := []bdf.Character{solid('A', 4, 5), solid('B', 4, 5), solid('C', 4, 5)}
	buf := frame.NewBuffer(10, 12)
	render.NewText(glyphs, image.Point{X: 1}, orange, render.WrapNone).Draw(frame.New(buf))

	if buf.Pixel(9, 0) != orange {
		t.Fatalf("overflowing glyph should be drawn clipped on the first line")
	}
	if litColumns(buf, 0, 10, 5, 12) != 0 {
		t.Fatalf("no line advance expected without wrap")
	}
}

func TestTextNeverErases(t *testing.T) {
	buf := frame.NewBuffer(8, 5)
	f := frame.New(buf)
	f.Fill(frame.White)
	render.NewText([]bdf.Character{blank(' ', 4, 5)}, image.Point{}, orange, render.WrapNone).Draw(f)
	if buf.Lit() != 40 {
		t.Fatalf("static text must leave non-ink pixels untouched")
	}
}

func TestExtent(t *testing.T) {
	got := render.Extent([]bdf.Character{solid('A', 4, 5), solid('i', 2, 7)})
	if got != (image.Point{X: 6, Y: 7}) {
		t.Fatalf("unexpected extent %v", got)
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestScrollerCompletesAfterSumOfWidths(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	glyphs := []bdf.Character{solid('I', 3, 5), solid('W', 5, 5)}
	s := render.NewScroller(glyphs, 70*time.Millisecond, image.Point{Y: 1}, orange, render.WithClock(clock.now))
	f := frame.New(frame.NewBuffer(16, 8))

	if s.Length() != 8 {
		t.Fatalf("expected length 8, got %d", s.Length())
	}
	if s.Draw(f) || s.Offset() != 0 {
		t.Fatalf("draw before the first interval must not advance")
	}

	for i := 0; i < s.Length(); i++ {
		if s.Completed() {
			t.Fatalf("completed early at offset %d", s.Offset())
		}
		clock.advance(69 * time.Millisecond)
		if s.Draw(f) {
			t.Fatalf("advanced before interval elapsed at offset %d", s.Offset())
		}
		clock.advance(time.Millisecond)
		if !s.Draw(f) {
			t.Fatalf("expected advance at offset %d", s.Offset())
		}
	}
	if !s.Completed() || s.Offset() != s.Length() {
		t.Fatalf("expected completion, offset=%d length=%d", s.Offset(), s.Length())
	}

	clock.advance(time.Second)
	if s.Draw(f) || s.Offset() != s.Length() {
		t.Fatalf("draw after completion must not change offset")
	}
}

func TestScrollerShiftsAndErases(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	buf := frame.NewBuffer(10, 6)
	f := frame.New(buf)
	s := render.NewScroller([]bdf.Character{solid('A', 4, 5)}, time.Millisecond, image.Point{X: 2}, orange, render.WithClock(clock.now))

	clock.advance(time.Millisecond)
	s.Draw(f)
	if litColumns(buf, 0, 10, 0, 6) != 4 || buf.Pixel(2, 0) != orange || buf.Pixel(5, 4) != orange {
		t.Fatalf("first frame should show the glyph at the origin")
	}

	clock.advance(time.Millisecond)
	s.Draw(f)
	if !buf.Pixel(1, 0).IsBlack() {
		t.Fatalf("pixels left of the origin must stay dark")
	}
	if !buf.Pixel(5, 0).IsBlack() {
		t.Fatalf("trailing column must be erased")
	}
	if got := litColumns(buf, 0, 10, 0, 6); got != 3 {
		t.Fatalf("expected 3 visible columns after one shift, got %d", got)
	}

	for !s.Completed() {
		clock.advance(time.Millisecond)
		s.Draw(f)
	}
	// the last frame drawn shows only the final column at the origin
	if got := litColumns(buf, 0, 10, 0, 6); got != 1 || buf.Pixel(2, 0) != orange {
		t.Fatalf("expected one column left at the origin, got %d", got)
	}
}

func TestScrollerEmptyRunIsCompleted(t *testing.T) {
	s := render.NewScroller(nil, time.Millisecond, image.Point{}, orange)
	if !s.Completed() || s.Length() != 0 {
		t.Fatalf("empty run should be completed immediately")
	}
}
