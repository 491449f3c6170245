// Package frame is the drawing surface text renderers paint onto.
package frame

// Canvas is a display device: an LED matrix driver, an X11 window or an
// in-memory buffer. Coordinates outside the canvas must be tolerated.
type Canvas interface {
	SetPixel(x, y int, r, g, b uint8)
	Clear()
	Fill(r, g, b uint8)
	Width() int
	Height() int
}

// Frame wraps a Canvas it does not own and clips every write to its bounds.
type Frame struct {
	canvas Canvas
}

// New returns a frame drawing onto c.
func New(c Canvas) *Frame {
	return &Frame{canvas: c}
}

// Canvas returns the wrapped device.
func (f *Frame) Canvas() Canvas { return f.canvas }

func (f *Frame) Width() int  { return f.canvas.Width() }
func (f *Frame) Height() int { return f.canvas.Height() }

// In reports whether (x, y) lies on the frame.
func (f *Frame) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.canvas.Width() && y < f.canvas.Height()
}

// SetPixel paints one pixel. Writes outside the frame are dropped.
func (f *Frame) SetPixel(x, y int, c Color) {
	f.SetRGB(x, y, c.R, c.G, c.B)
}

// SetRGB is SetPixel with separate channels.
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	if !f.In(x, y) {
		return
	}
	f.canvas.SetPixel(x, y, r, g, b)
}

// Clear turns every pixel off.
func (f *Frame) Clear() { f.canvas.Clear() }

// Fill paints every pixel with c.
func (f *Frame) Fill(c Color) { f.canvas.Fill(c.R, c.G, c.B) }
