package x11

import "github.com/ByLCY/marquee/frame"

// chunkRows is how many screen rows of the given width fit in one request.
func chunkRows(width int) int {
	if width <= 0 {
		return 1
	}
	return max(1, maxRequestBytes/(width*4))
}

// encodeBGRX renders screen rows [y0, y0+rows) of buf scaled by scale into
// the ZPixmap byte order X servers use for 24/32-bit TrueColor visuals.
func encodeBGRX(buf *frame.Buffer, scale, y0, rows int) []byte {
	width := buf.Width() * scale
	data := make([]byte, width*rows*4)
	idx := 0
	for row := y0; row < y0+rows; row++ {
		for col := 0; col < width; col++ {
			c := buf.Pixel(col/scale, row/scale)
			data[idx+0] = c.B
			data[idx+1] = c.G
			data[idx+2] = c.R
			data[idx+3] = 0
			idx += 4
		}
	}
	return data
}
