package render

import (
	"image"
	"time"

	"github.com/ByLCY/marquee/bdf"
	"github.com/ByLCY/marquee/frame"
)

// Scroller moves a glyph run leftwards one pixel per interval until the
// whole run has passed the origin.
//
// It has two states: advancing while Offset() < Length(), and completed
// once they are equal. Only a Draw call whose elapsed time since the last
// advance reaches the interval moves it forward.
type Scroller struct {
	glyphs   []bdf.Character
	interval time.Duration
	origin   image.Point
	color    frame.Color
	now      func() time.Time

	offset int
	length int
	height int
	last   time.Time
}

// ScrollerOption configures a Scroller.
type ScrollerOption func(*Scroller)

// WithClock replaces time.Now, for virtual-time playback and tests.
func WithClock(now func() time.Time) ScrollerOption {
	return func(s *Scroller) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScroller builds a scrolling renderer. glyphs is borrowed. The first
// advance happens one interval after construction.
func NewScroller(glyphs []bdf.Character, interval time.Duration, origin image.Point, color frame.Color, opts ...ScrollerOption) *Scroller {
	s := &Scroller{
		glyphs:   glyphs,
		interval: interval,
		origin:   origin,
		color:    color,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, ch := range glyphs {
		s.length += ch.Width()
		s.height = max(s.height, ch.Height())
	}
	s.last = s.now()
	return s
}

// Draw repaints the run shifted by the current offset and advances it by
// one pixel, provided the interval has elapsed. It never blocks and
// reports whether the frame changed. Once completed it does nothing.
func (s *Scroller) Draw(f *frame.Frame) bool {
	if s.Completed() {
		return false
	}
	now := s.now()
	if now.Sub(s.last) < s.interval {
		return false
	}

	cum := 0
	for _, ch := range s.glyphs {
		for row := 0; row < ch.Height(); row++ {
			y := s.origin.Y + row
			for col := 0; col < ch.Width(); col++ {
				x := s.origin.X + cum + col - s.offset
				// 拖尾像素必须主动擦除
				if ch.Ink(col, row) && x >= s.origin.X {
					f.SetPixel(x, y, s.color)
				} else {
					f.SetPixel(x, y, frame.Black)
				}
			}
		}
		cum += ch.Width()
	}
	// 右边缘刚离开的那一列
	if s.offset > 0 {
		x := s.origin.X + s.length - s.offset
		for row := 0; row < s.height; row++ {
			f.SetPixel(x, s.origin.Y+row, frame.Black)
		}
	}

	s.offset++
	s.last = now
	return true
}

// Completed reports whether the run has fully scrolled past the origin.
func (s *Scroller) Completed() bool { return s.offset == s.length }

// Offset is the number of pixels scrolled so far.
func (s *Scroller) Offset() int { return s.offset }

// Length is the total run width, the sum of every glyph's width.
func (s *Scroller) Length() int { return s.length }

// Interval returns the advance period.
func (s *Scroller) Interval() time.Duration { return s.interval }

// NextAdvance returns the earliest time at which Draw will advance.
func (s *Scroller) NextAdvance() time.Time { return s.last.Add(s.interval) }
