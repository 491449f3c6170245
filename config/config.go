// Package config loads marquee settings from .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"

	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/logging"
)

// Prefix is prepended to every environment key.
const Prefix = "MARQUEE_"

// Display backends.
const (
	DisplayMemory   = "memory"
	DisplayX11      = "x11"
	DisplayTerminal = "terminal"
)

// Options is the full runtime configuration.
type Options struct {
	// panel geometry
	Rows           int
	Columns        int
	ChainLength    int
	ParallelChains int

	// colour correction
	Brightness   int
	InvertColors bool
	RGBSequence  string

	Font        string // BDF path; empty uses the embedded font
	Show        string // show script path; empty uses the built-in show
	ImageDir    string // base directory for image steps
	DefaultChar rune

	Display string
	Scale   int
	Loops   int

	Snapshots     string // PDF output path; empty disables export
	SnapshotEvery int
	SnapshotLimit int
	Offline       bool // play against a virtual clock
	MaxRuntime    time.Duration
}

// Defaults matches a single 64x32 panel.
func Defaults() Options {
	return Options{
		Rows:           32,
		Columns:        64,
		ChainLength:    1,
		ParallelChains: 1,
		Brightness:     100,
		RGBSequence:    "RGB",
		ImageDir:       "images",
		DefaultChar:    ' ',
		Display:        DisplayMemory,
		Scale:          10,
		SnapshotEvery:  10,
		SnapshotLimit:  200,
	}
}

// Width is the frame width in LEDs.
func (o Options) Width() int { return o.Columns * o.ChainLength }

// Height is the frame height in LEDs.
func (o Options) Height() int { return o.Rows * o.ParallelChains }

// Adjustment returns the colour correction for the panel.
func (o Options) Adjustment() frame.Adjustment {
	return frame.Adjustment{Brightness: o.Brightness, Invert: o.InvertColors, Sequence: o.RGBSequence}
}

// Validate checks ranges and enumerations.
func (o Options) Validate() error {
	var errs []error
	positive := map[string]int{
		"ROWS":            o.Rows,
		"COLUMNS":         o.Columns,
		"CHAIN_LENGTH":    o.ChainLength,
		"PARALLEL_CHAINS": o.ParallelChains,
	}
	for _, key := range []string{"ROWS", "COLUMNS", "CHAIN_LENGTH", "PARALLEL_CHAINS"} {
		if positive[key] <= 0 {
			errs = append(errs, fmt.Errorf("%s%s must be positive, got %d", Prefix, key, positive[key]))
		}
	}
	if o.Brightness < 1 || o.Brightness > 100 {
		errs = append(errs, fmt.Errorf("%sBRIGHTNESS must be within 1..100, got %d", Prefix, o.Brightness))
	}
	if _, err := frame.ParseSequence(o.RGBSequence); err != nil {
		errs = append(errs, fmt.Errorf("%sRGB_SEQUENCE: %w", Prefix, err))
	}
	switch o.Display {
	case DisplayMemory, DisplayX11, DisplayTerminal:
	default:
		errs = append(errs, fmt.Errorf("%sDISPLAY must be one of %q, %q, %q, got %q",
			Prefix, DisplayMemory, DisplayX11, DisplayTerminal, o.Display))
	}
	if o.Scale < 1 || o.Scale > 64 {
		errs = append(errs, fmt.Errorf("%sSCALE must be within 1..64, got %d", Prefix, o.Scale))
	}
	if o.SnapshotEvery < 0 || o.SnapshotLimit < 0 || o.Loops < 0 {
		errs = append(errs, errors.New("snapshot interval, snapshot limit and loop count cannot be negative"))
	}
	return errors.Join(errs...)
}

// Load reads dir/.env.local and dir/.env into the process environment,
// without overriding variables that are already set, then builds Options
// from defaults and MARQUEE_* variables. Missing files are not an error.
func Load(dir string) (Options, error) {
	log := logging.Logger()
	// 优先级: 进程环境 > .env.local > .env
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return Options{}, fmt.Errorf("config: load %s: %w", path, err)
		}
		log.Debug("env file loaded", "path", path)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds Options from defaults and the variables getenv returns.
func FromEnv(getenv func(string) string) (Options, error) {
	o := Defaults()
	p := parser{getenv: getenv}

	p.intVar("ROWS", &o.Rows)
	p.intVar("COLUMNS", &o.Columns)
	p.intVar("CHAIN_LENGTH", &o.ChainLength)
	p.intVar("PARALLEL_CHAINS", &o.ParallelChains)
	p.intVar("BRIGHTNESS", &o.Brightness)
	p.boolVar("INVERT_COLORS", &o.InvertColors)
	p.stringVar("RGB_SEQUENCE", &o.RGBSequence)
	p.stringVar("FONT", &o.Font)
	p.stringVar("SHOW", &o.Show)
	p.stringVar("IMAGE_DIR", &o.ImageDir)
	p.runeVar("DEFAULT_CHAR", &o.DefaultChar)
	p.stringVar("DISPLAY", &o.Display)
	p.intVar("SCALE", &o.Scale)
	p.intVar("LOOPS", &o.Loops)
	p.stringVar("SNAPSHOTS", &o.Snapshots)
	p.intVar("SNAPSHOT_EVERY", &o.SnapshotEvery)
	p.intVar("SNAPSHOT_LIMIT", &o.SnapshotLimit)
	p.boolVar("OFFLINE", &o.Offline)
	p.durationVar("MAX_RUNTIME", &o.MaxRuntime)

	o.Display = strings.ToLower(o.Display)
	if err := errors.Join(p.errs...); err != nil {
		return Options{}, fmt.Errorf("config: %w", err)
	}
	return o, nil
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) lookup(key string) (string, bool) {
	v := strings.TrimSpace(p.getenv(Prefix + key))
	return v, v != ""
}

func (p *parser) fail(key, raw string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s%s=%q: %w", Prefix, key, raw, err))
}

func (p *parser) stringVar(key string, dst *string) {
	if v, ok := p.lookup(key); ok {
		*dst = v
	}
}

func (p *parser) intVar(key string, dst *int) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = n
}

func (p *parser) boolVar(key string, dst *bool) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = b
}

func (p *parser) durationVar(key string, dst *time.Duration) {
	v, ok := p.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = d
}

// runeVar accepts a single character or a decimal code point, since a space
// does not survive trimming.
func (p *parser) runeVar(key string, dst *rune) {
	raw := p.getenv(Prefix + key)
	if raw == "" {
		return
	}
	if utf8.RuneCountInString(raw) == 1 {
		*dst, _ = utf8.DecodeRuneInString(raw)
		return
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || n < 0 || !utf8.ValidRune(rune(n)) {
		p.fail(key, raw, errors.New("expected one character or a code point"))
		return
	}
	*dst = rune(n)
}
