package frame

import (
	"image"
	"image/color"
)

// Buffer is an in-memory Canvas. It doubles as an image.Image so frames can
// be encoded or exported directly.
type Buffer struct {
	width, height int
	pix           []Color
}

var _ Canvas = (*Buffer)(nil)
var _ image.Image = (*Buffer)(nil)

// NewBuffer allocates a width x height buffer with every pixel off.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{width: width, height: height, pix: make([]Color, width*height)}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// SetPixel implements Canvas; out-of-range writes are ignored.
func (b *Buffer) SetPixel(x, y int, r, g, bl uint8) {
	if !b.in(x, y) {
		return
	}
	b.pix[y*b.width+x] = Color{R: r, G: g, B: bl}
}

func (b *Buffer) Clear() {
	clear(b.pix)
}

func (b *Buffer) Fill(r, g, bl uint8) {
	c := Color{R: r, G: g, B: bl}
	for i := range b.pix {
		b.pix[i] = c
	}
}

// Pixel returns the colour at (x, y), black outside the buffer.
func (b *Buffer) Pixel(x, y int) Color {
	if !b.in(x, y) {
		return Black
	}
	return b.pix[y*b.width+x]
}

// Lit counts the pixels that are not black.
func (b *Buffer) Lit() int {
	n := 0
	for _, c := range b.pix {
		if !c.IsBlack() {
			n++
		}
	}
	return n
}

// Snapshot copies the current contents into a new RGBA image.
func (b *Buffer) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.pix[y*b.width+x]
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return img
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color { return b.Pixel(x, y) }
