package frame

import "image"

// DrawImage copies img onto f with its top-left corner at the frame origin.
// Parts of the image outside the frame are clipped; transparent pixels are
// composited against black.
func DrawImage(f *Frame, img image.Image) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		fy := y - bounds.Min.Y
		if fy >= f.Height() {
			break
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fx := x - bounds.Min.X
			if fx >= f.Width() {
				break
			}
			f.SetPixel(fx, fy, FromColor(img.At(x, y)))
		}
	}
}
