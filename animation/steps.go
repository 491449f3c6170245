package animation

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/ByLCY/marquee/bdf"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/render"
)

// Step is one entry of a playlist.
type Step interface {
	Name() string
	Run(ctx context.Context, env *Env) error
}

// Env is what a running step may use. The sequencer owns it.
type Env struct {
	Frame       *frame.Frame
	Font        *bdf.Font
	DefaultChar rune
	Clock       Clock
	Observer    Observer

	index int
	step  Step
}

// Drawn reports a finished frame to the observer.
func (e *Env) Drawn() {
	if e.Observer != nil {
		e.Observer.FrameDrawn(e.index, e.step, e.Frame)
	}
}

// Hold keeps the current frame on screen for d.
func (e *Env) Hold(ctx context.Context, d time.Duration) error {
	return e.Clock.Sleep(ctx, d)
}

// ScrollStep scrolls a message across the frame until it has fully passed
// the origin.
type ScrollStep struct {
	Message  string
	Interval time.Duration
	Origin   image.Point
	Color    frame.Color
}

func (s *ScrollStep) Name() string { return fmt.Sprintf("scroll %q", s.Message) }

func (s *ScrollStep) Run(ctx context.Context, env *Env) error {
	env.Frame.Clear()
	glyphs := env.Font.MustEncodeWithDefault(s.Message, env.DefaultChar)
	scroller := render.NewScroller(glyphs, s.Interval, s.Origin, s.Color, render.WithClock(env.Clock.Now))
	for !scroller.Completed() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if scroller.Draw(env.Frame) {
			env.Drawn()
			continue
		}
		if err := env.Clock.Sleep(ctx, scroller.NextAdvance().Sub(env.Clock.Now())); err != nil {
			return err
		}
	}
	return nil
}

// TextStep shows a static message for Hold.
type TextStep struct {
	Message string
	Origin  image.Point
	Color   frame.Color
	Wrap    render.WrapMode
	Hold    time.Duration
}

func (s *TextStep) Name() string { return fmt.Sprintf("text %q", s.Message) }

func (s *TextStep) Run(ctx context.Context, env *Env) error {
	env.Frame.Clear()
	glyphs := env.Font.MustEncodeWithDefault(s.Message, env.DefaultChar)
	render.NewText(glyphs, s.Origin, s.Color, s.Wrap).Draw(env.Frame)
	env.Drawn()
	return env.Hold(ctx, s.Hold)
}

// ImageStep shows a decoded image for Hold. Source is kept for logging.
type ImageStep struct {
	Source string
	Image  image.Image
	Hold   time.Duration
}

func (s *ImageStep) Name() string { return fmt.Sprintf("image %q", s.Source) }

func (s *ImageStep) Run(ctx context.Context, env *Env) error {
	env.Frame.Clear()
	if s.Image != nil {
		frame.DrawImage(env.Frame, s.Image)
	}
	env.Drawn()
	return env.Hold(ctx, s.Hold)
}

// FillStep paints the whole frame one colour for Hold.
type FillStep struct {
	Color frame.Color
	Hold  time.Duration
}

func (s *FillStep) Name() string { return "fill " + s.Color.Hex() }

func (s *FillStep) Run(ctx context.Context, env *Env) error {
	env.Frame.Fill(s.Color)
	env.Drawn()
	return env.Hold(ctx, s.Hold)
}

// ClearStep blanks the frame and optionally keeps it dark for Hold.
type ClearStep struct {
	Hold time.Duration
}

func (s *ClearStep) Name() string { return "clear" }

func (s *ClearStep) Run(ctx context.Context, env *Env) error {
	env.Frame.Clear()
	env.Drawn()
	return env.Hold(ctx, s.Hold)
}
