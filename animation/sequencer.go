// Package animation plays an ordered playlist of drawing steps onto a
// frame.
package animation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ByLCY/marquee/bdf"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/logging"
)

// DefaultChar substitutes runes the font cannot draw.
const DefaultChar = ' '

// ErrNoSteps is returned by New for an empty playlist.
var ErrNoSteps = errors.New("animation: playlist has no steps")

// Sequencer runs steps strictly in order. A scroll step never hands over
// before its message has completely scrolled out.
type Sequencer struct {
	env   Env
	steps []Step
	log   *slog.Logger
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithClock sets the time source; the default is SystemClock.
func WithClock(c Clock) Option {
	return func(s *Sequencer) {
		if c != nil {
			s.env.Clock = c
		}
	}
}

// WithObserver installs an observer for step and frame events.
func WithObserver(o Observer) Option {
	return func(s *Sequencer) { s.env.Observer = o }
}

// WithDefaultChar sets the substitution rune for unknown characters.
func WithDefaultChar(r rune) Option {
	return func(s *Sequencer) { s.env.DefaultChar = r }
}

// New builds a sequencer. The default character is checked against the
// font here, so steps can rely on it being drawable.
func New(f *frame.Frame, font *bdf.Font, steps []Step, opts ...Option) (*Sequencer, error) {
	if f == nil || font == nil {
		return nil, errors.New("animation: frame and font are required")
	}
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	s := &Sequencer{
		env: Env{
			Frame:       f,
			Font:        font,
			DefaultChar: DefaultChar,
			Clock:       SystemClock{},
		},
		steps: steps,
		log:   logging.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if res := font.EncodeWithDefaultCode("", s.env.DefaultChar); !res.IsOk() {
		return nil, fmt.Errorf("animation: %w", res.Err())
	}
	return s, nil
}

// Steps returns the playlist.
func (s *Sequencer) Steps() []Step { return s.steps }

// RunOnce plays every step once. It stops at the first failing step or
// when ctx is done.
func (s *Sequencer) RunOnce(ctx context.Context) error {
	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.runStep(ctx, i, step); err != nil {
			return err
		}
	}
	return nil
}

// Run repeats the playlist until ctx is done and returns ctx.Err().
func (s *Sequencer) Run(ctx context.Context) error {
	return s.Loop(ctx, 0)
}

// Loop plays the playlist n times, or forever when n <= 0.
func (s *Sequencer) Loop(ctx context.Context, n int) error {
	for loop := 1; n <= 0 || loop <= n; loop++ {
		if err := s.RunOnce(ctx); err != nil {
			return err
		}
		s.log.Debug("playlist completed", "loop", loop)
	}
	return nil
}

func (s *Sequencer) runStep(ctx context.Context, index int, step Step) (err error) {
	env := s.env
	env.index, env.step = index, step
	name := step.Name()

	if env.Observer != nil {
		env.Observer.StepStarted(index, step)
		defer func() { env.Observer.StepFinished(index, step, err) }()
	}
	s.log.Info("step started", "index", index, "step", name)
	start := env.Clock.Now()

	if err = step.Run(ctx, &env); err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			s.log.Info("playback cancelled", "index", index, "step", name)
			return err
		}
		return fmt.Errorf("animation: step %d (%s): %w", index, name, err)
	}
	s.log.Info("step finished", "index", index, "step", name, "elapsed", env.Clock.Now().Sub(start).Round(time.Millisecond))
	return nil
}
