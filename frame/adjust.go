package frame

import (
	"fmt"
	"image"
	"strings"
)

// Adjustment corrects colours for a physical panel.
type Adjustment struct {
	Brightness int    // percent, 1..100
	Invert     bool   // panels with inverted drivers
	Sequence   string // channel order expected by the panel, e.g. "RBG"
}

// Identity reports whether a leaves colours untouched.
func (a Adjustment) Identity() bool {
	return (a.Brightness == 0 || a.Brightness == 100) && !a.Invert && (a.Sequence == "" || strings.EqualFold(a.Sequence, "RGB"))
}

// ParseSequence validates a channel order and returns, for each output
// channel, the index of the input channel feeding it.
func ParseSequence(seq string) ([3]int, error) {
	var perm [3]int
	if seq == "" {
		return [3]int{0, 1, 2}, nil
	}
	seq = strings.ToUpper(seq)
	if len(seq) != 3 {
		return perm, fmt.Errorf("frame: invalid rgb sequence %q", seq)
	}
	seen := map[byte]bool{}
	for i := 0; i < 3; i++ {
		idx := strings.IndexByte("RGB", seq[i])
		if idx < 0 || seen[seq[i]] {
			return perm, fmt.Errorf("frame: invalid rgb sequence %q", seq)
		}
		seen[seq[i]] = true
		perm[i] = idx
	}
	return perm, nil
}

// Adjust wraps c so every colour written goes through a. An identity
// adjustment returns c unchanged.
func Adjust(c Canvas, a Adjustment) (Canvas, error) {
	if a.Identity() {
		return c, nil
	}
	if a.Brightness < 0 || a.Brightness > 100 {
		return nil, fmt.Errorf("frame: brightness %d out of range 1..100", a.Brightness)
	}
	perm, err := ParseSequence(a.Sequence)
	if err != nil {
		return nil, err
	}
	if a.Brightness == 0 {
		a.Brightness = 100
	}
	return &adjusted{Canvas: c, adj: a, perm: perm}, nil
}

type adjusted struct {
	Canvas
	adj  Adjustment
	perm [3]int
}

func (a *adjusted) apply(r, g, b uint8) (uint8, uint8, uint8) {
	in := [3]uint8{r, g, b}
	var out [3]uint8
	for i, src := range a.perm {
		v := uint16(in[src]) * uint16(a.adj.Brightness) / 100
		if a.adj.Invert {
			v = 255 - v
		}
		out[i] = uint8(v)
	}
	return out[0], out[1], out[2]
}

func (a *adjusted) SetPixel(x, y int, r, g, b uint8) {
	r, g, b = a.apply(r, g, b)
	a.Canvas.SetPixel(x, y, r, g, b)
}

func (a *adjusted) Fill(r, g, b uint8) {
	r, g, b = a.apply(r, g, b)
	a.Canvas.Fill(r, g, b)
}

// Clear turns every LED off, which is white on inverted panels.
func (a *adjusted) Clear() {
	if a.adj.Invert {
		a.Canvas.Fill(255, 255, 255)
		return
	}
	a.Canvas.Clear()
}

// Snapshot returns the wrapped canvas contents, or nil if it has none.
func (a *adjusted) Snapshot() *image.RGBA {
	if s, ok := a.Canvas.(interface{ Snapshot() *image.RGBA }); ok {
		return s.Snapshot()
	}
	return nil
}
