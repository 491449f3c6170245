package show

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/marquee/animation"
	"github.com/ByLCY/marquee/binding"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/logging"
	"github.com/ByLCY/marquee/render"
)

// Settings are the values a statement falls back to when it does not name
// them. `set` statements change them for everything that follows.
type Settings struct {
	Interval    time.Duration
	Origin      image.Point
	Color       frame.Color
	Hold        time.Duration
	DefaultChar rune
}

// DefaultSettings match a 64x32 panel with a 13 pixel font.
var DefaultSettings = Settings{
	Interval:    70 * time.Millisecond,
	Origin:      image.Point{X: 0, Y: 9},
	Color:       frame.Color{R: 255, G: 50, B: 0},
	Hold:        5 * time.Second,
	DefaultChar: animation.DefaultChar,
}

// BuildOptions control how a document becomes steps.
type BuildOptions struct {
	// Settings seeds the defaults; the zero value means DefaultSettings.
	Settings *Settings
	// Data feeds ${path} placeholders in messages.
	Data any
	// Images resolves image paths; nil means images are read from the
	// working directory.
	Images fs.FS
	// LoadImage overrides image decoding entirely.
	LoadImage func(path string) (image.Image, error)
	// SkipMissingImages turns a missing image into a dark hold instead of
	// an error.
	SkipMissingImages bool
}

// Show is a compiled script.
type Show struct {
	Name        string
	Steps       []animation.Step
	DefaultChar rune
}

// Build compiles doc into animation steps.
func Build(doc *Document, opts BuildOptions) (*Show, error) {
	if doc == nil {
		return nil, errors.New("show: nil document")
	}
	b := &builder{opts: opts, settings: DefaultSettings}
	if opts.Settings != nil {
		b.settings = *opts.Settings
	}
	if b.opts.LoadImage == nil {
		b.opts.LoadImage = imageLoader(opts.Images)
	}

	out := &Show{Name: doc.Name}
	for _, stmt := range doc.Statements {
		step, err := b.statement(stmt)
		if err != nil {
			return nil, fmt.Errorf("show %s: %s: %w", doc.Name, stmt.Pos, err)
		}
		if step != nil {
			out.Steps = append(out.Steps, step)
		}
	}
	if len(out.Steps) == 0 {
		return nil, fmt.Errorf("show %s: %w", doc.Name, animation.ErrNoSteps)
	}
	out.DefaultChar = b.settings.DefaultChar
	return out, nil
}

// Compile parses and builds a script in one go.
func Compile(script string, opts BuildOptions) (*Show, error) {
	doc, err := ParseString(script)
	if err != nil {
		return nil, fmt.Errorf("show: parse: %w", err)
	}
	return Build(doc, opts)
}

type builder struct {
	opts     BuildOptions
	settings Settings
}

func (b *builder) statement(stmt *Statement) (animation.Step, error) {
	switch {
	case stmt.Set != nil:
		return nil, b.set(stmt.Set)
	case stmt.Scroll != nil:
		o, err := b.options(stmt.Scroll.Options, "every", "at", "color")
		if err != nil {
			return nil, err
		}
		return &animation.ScrollStep{
			Message:  b.message(string(stmt.Scroll.Message)),
			Interval: o.interval,
			Origin:   o.origin,
			Color:    o.color,
		}, nil
	case stmt.Text != nil:
		o, err := b.options(stmt.Text.Options, "at", "color", "wrap", "for")
		if err != nil {
			return nil, err
		}
		mode := render.WrapNone
		if o.wrap {
			mode = render.Wrap
		}
		return &animation.TextStep{
			Message: b.message(string(stmt.Text.Message)),
			Origin:  o.origin,
			Color:   o.color,
			Wrap:    mode,
			Hold:    o.hold,
		}, nil
	case stmt.Image != nil:
		o, err := b.options(stmt.Image.Options, "for")
		if err != nil {
			return nil, err
		}
		return b.image(string(stmt.Image.Path), o.hold)
	case stmt.Fill != nil:
		o, err := b.options(stmt.Fill.Options, "for")
		if err != nil {
			return nil, err
		}
		c, err := frame.ParseColor(stmt.Fill.Color)
		if err != nil {
			return nil, err
		}
		return &animation.FillStep{Color: c, Hold: o.hold}, nil
	case stmt.Clear != nil:
		o, err := b.options(stmt.Clear.Options, "for")
		if err != nil {
			return nil, err
		}
		// clear 默认不停留
		hold := time.Duration(0)
		if o.holdSet {
			hold = o.hold
		}
		return &animation.ClearStep{Hold: hold}, nil
	}
	return nil, fmt.Errorf("unsupported statement %q", stmt.Kind())
}

func (b *builder) set(s *Setting) error {
	v := s.Value
	switch s.Key {
	case "interval", "hold":
		if v.Duration == nil {
			return fmt.Errorf("set %s: expected a duration", s.Key)
		}
		if s.Key == "interval" {
			if *v.Duration <= 0 {
				return fmt.Errorf("set interval: must be positive")
			}
			b.settings.Interval = time.Duration(*v.Duration)
		} else {
			b.settings.Hold = time.Duration(*v.Duration)
		}
	case "origin":
		if v.Point == nil {
			return fmt.Errorf("set origin: expected two numbers")
		}
		b.settings.Origin = image.Point{X: v.Point.X, Y: v.Point.Y}
	case "color":
		if v.Color == nil {
			return fmt.Errorf("set color: expected a colour")
		}
		c, err := frame.ParseColor(*v.Color)
		if err != nil {
			return err
		}
		b.settings.Color = c
	case "default":
		if v.String == nil || utf8.RuneCountInString(string(*v.String)) != 1 {
			return fmt.Errorf("set default: expected a single character string")
		}
		r, _ := utf8.DecodeRuneInString(string(*v.String))
		b.settings.DefaultChar = r
	default:
		return fmt.Errorf("unknown setting %q", s.Key)
	}
	return nil
}

type resolved struct {
	interval time.Duration
	origin   image.Point
	color    frame.Color
	hold     time.Duration
	holdSet  bool
	wrap     bool
}

func (b *builder) options(opts []*Option, allowed ...string) (resolved, error) {
	r := resolved{
		interval: b.settings.Interval,
		origin:   b.settings.Origin,
		color:    b.settings.Color,
		hold:     b.settings.Hold,
	}
	seen := map[string]lexer.Position{}
	for _, o := range opts {
		name := o.Name()
		if !slices.Contains(allowed, name) {
			return r, fmt.Errorf("%s: option %q not allowed here", o.Pos, name)
		}
		if prev, dup := seen[name]; dup {
			return r, fmt.Errorf("%s: option %q repeated (first at %s)", o.Pos, name, prev)
		}
		seen[name] = o.Pos
		switch {
		case o.Every != nil:
			if *o.Every <= 0 {
				return r, fmt.Errorf("%s: scroll interval must be positive", o.Pos)
			}
			r.interval = time.Duration(*o.Every)
		case o.At != nil:
			r.origin = image.Point{X: o.At.X, Y: o.At.Y}
		case o.Color != nil:
			c, err := frame.ParseColor(*o.Color)
			if err != nil {
				return r, err
			}
			r.color = c
		case o.For != nil:
			r.hold = time.Duration(*o.For)
			r.holdSet = true
		case o.Wrap:
			r.wrap = true
		}
	}
	return r, nil
}

func (b *builder) message(text string) string {
	if missing := binding.Missing(text, b.opts.Data); len(missing) > 0 {
		logging.Logger().Warn("unresolved message placeholders", "message", text, "paths", missing)
	}
	return binding.Interpolate(text, b.opts.Data)
}

func (b *builder) image(path string, hold time.Duration) (animation.Step, error) {
	img, err := b.opts.LoadImage(path)
	if err != nil {
		if b.opts.SkipMissingImages && errors.Is(err, fs.ErrNotExist) {
			logging.Logger().Warn("image missing, showing a dark frame instead", "image", path)
			return &animation.ClearStep{Hold: hold}, nil
		}
		return nil, fmt.Errorf("image %q: %w", path, err)
	}
	return &animation.ImageStep{Source: path, Image: img, Hold: hold}, nil
}
