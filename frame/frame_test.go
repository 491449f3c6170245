package frame_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/ByLCY/marquee/frame"
)

func TestFrameClipsWrites(t *testing.T) {
	buf := frame.NewBuffer(4, 3)
	f := frame.New(buf)

	f.SetPixel(-1, 0, frame.White)
	f.SetPixel(4, 0, frame.White)
	f.SetPixel(0, 3, frame.White)
	f.SetPixel(2, -5, frame.White)
	if buf.Lit() != 0 {
		t.Fatalf("out-of-range writes must be dropped, lit=%d", buf.Lit())
	}

	f.SetPixel(3, 2, frame.Color{R: 1, G: 2, B: 3})
	if got := buf.Pixel(3, 2); got != (frame.Color{R: 1, G: 2, B: 3}) {
		t.Fatalf("unexpected pixel %v", got)
	}
	if f.Canvas() != frame.Canvas(buf) {
		t.Fatalf("frame should expose the wrapped canvas")
	}
}

func TestFillAndClear(t *testing.T) {
	buf := frame.NewBuffer(5, 2)
	f := frame.New(buf)
	f.Fill(frame.Color{R: 9})
	if buf.Lit() != 10 {
		t.Fatalf("expected every pixel lit, got %d", buf.Lit())
	}
	f.Clear()
	if buf.Lit() != 0 {
		t.Fatalf("expected clear frame, got %d", buf.Lit())
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]frame.Color{
		"#FF3200": {R: 255, G: 50, B: 0},
		"ff3200":  {R: 255, G: 50, B: 0},
		"#fff":    frame.White,
		"#000000": frame.Black,
	}
	for in, want := range cases {
		got, err := frame.ParseColor(in)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", in, want, got)
		}
	}
	for _, bad := range []string{"", "#12", "red", "#GGGGGG", "#1234567"} {
		if _, err := frame.ParseColor(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
	if got := (frame.Color{R: 255, G: 50}).Hex(); got != "#FF3200" {
		t.Fatalf("unexpected hex %s", got)
	}
}

func TestBufferSnapshotIsImage(t *testing.T) {
	buf := frame.NewBuffer(2, 2)
	buf.SetPixel(1, 0, 10, 20, 30)
	snap := buf.Snapshot()
	if got := snap.RGBAAt(1, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Fatalf("unexpected snapshot pixel %v", got)
	}
	buf.Clear()
	if snap.RGBAAt(1, 0).R != 10 {
		t.Fatalf("snapshot must not alias the buffer")
	}
	var img image.Image = buf
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestDrawImageClips(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 16, 12))
	src.Set(10, 10, color.RGBA{R: 255, A: 255})
	src.Set(15, 11, color.RGBA{G: 255, A: 255})
	buf := frame.NewBuffer(4, 4)
	frame.DrawImage(frame.New(buf), src)
	if buf.Pixel(0, 0) != (frame.Color{R: 255}) {
		t.Fatalf("image origin should land on frame origin, got %v", buf.Pixel(0, 0))
	}
	if buf.Lit() != 1 {
		t.Fatalf("pixels beyond the frame must be clipped, lit=%d", buf.Lit())
	}
}
