package frame_test

import (
	"testing"

	"github.com/ByLCY/marquee/frame"
)

func TestAdjustIdentityReturnsCanvas(t *testing.T) {
	buf := frame.NewBuffer(1, 1)
	c, err := frame.Adjust(buf, frame.Adjustment{Brightness: 100, Sequence: "rgb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != frame.Canvas(buf) {
		t.Fatalf("identity adjustment should not wrap")
	}
}

func TestAdjustBrightnessAndSequence(t *testing.T) {
	buf := frame.NewBuffer(2, 1)
	c, err := frame.Adjust(buf, frame.Adjustment{Brightness: 50, Sequence: "BGR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := frame.New(c)
	f.SetPixel(0, 0, frame.Color{R: 200, G: 100, B: 10})
	if got := buf.Pixel(0, 0); got != (frame.Color{R: 5, G: 50, B: 100}) {
		t.Fatalf("unexpected adjusted pixel %v", got)
	}
	f.Fill(frame.White)
	if got := buf.Pixel(1, 0); got != (frame.Color{R: 127, G: 127, B: 127}) {
		t.Fatalf("unexpected fill %v", got)
	}
}

func TestAdjustInvert(t *testing.T) {
	buf := frame.NewBuffer(2, 1)
	c, err := frame.Adjust(buf, frame.Adjustment{Invert: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := frame.New(c)
	f.Clear()
	if buf.Pixel(1, 0) != frame.White {
		t.Fatalf("cleared inverted panel should be driven white")
	}
	f.SetPixel(0, 0, frame.White)
	if buf.Pixel(0, 0) != frame.Black {
		t.Fatalf("white on an inverted panel is driven black")
	}
}

func TestAdjustRejectsBadInput(t *testing.T) {
	buf := frame.NewBuffer(1, 1)
	for _, a := range []frame.Adjustment{
		{Brightness: 150},
		{Sequence: "RGG"},
		{Sequence: "RGBA"},
		{Sequence: "XYZ"},
	} {
		if _, err := frame.Adjust(buf, a); err == nil {
			t.Fatalf("expected error for %+v", a)
		}
	}
}
