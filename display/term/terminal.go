// Package term shows frames in a terminal. Each character cell carries two
// LEDs stacked vertically, drawn with an upper half block.
package term

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/ByLCY/marquee/animation"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/logging"
)

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("term: terminal closed")

const upperHalf = '▀'

// Terminal is a frame.Canvas backed by an in-memory buffer; Flush copies
// the buffer to the screen.
type Terminal struct {
	*frame.Buffer

	screen tcell.Screen

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	once   sync.Once
}

// Open takes over the controlling terminal.
func Open(width, height int) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	return OpenScreen(s, width, height)
}

// OpenScreen initialises s and draws on it.
func OpenScreen(s tcell.Screen, width, height int) (*Terminal, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("term: invalid frame size %dx%d", width, height)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("term: init: %w", err)
	}
	s.HideCursor()
	s.Clear()
	if cols, rows := s.Size(); cols < width || rows < (height+1)/2 {
		logging.Logger().Warn("term: screen smaller than frame, output is clipped",
			"cols", cols, "rows", rows, "width", width, "height", height)
	}

	t := &Terminal{
		Buffer: frame.NewBuffer(width, height),
		screen: s,
		done:   make(chan struct{}),
	}
	go t.events()
	return t, nil
}

// Done is closed when the user presses q, Escape or Ctrl-C.
func (t *Terminal) Done() <-chan struct{} { return t.done }

// Flush draws the buffer and shows it.
func (t *Terminal) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	for y := 0; y < t.Height(); y += 2 {
		for x := 0; x < t.Width(); x++ {
			r, style := cell(t.Buffer, x, y)
			t.screen.SetContent(x, y/2, r, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// cell 返回 (x, y) 与 (x, y+1) 两个 LED 合成的字符。
func cell(buf *frame.Buffer, x, y int) (rune, tcell.Style) {
	top := buf.Pixel(x, y)
	bottom := frame.Black
	if y+1 < buf.Height() {
		bottom = buf.Pixel(x, y+1)
	}
	style := tcell.StyleDefault.
		Foreground(rgb(top)).
		Background(rgb(bottom))
	return upperHalf, style
}

func rgb(c frame.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Observer flushes after every drawn frame.
func (t *Terminal) Observer() animation.Observer {
	return animation.ObserverFuncs{
		OnFrameDrawn: func(int, animation.Step, *frame.Frame) {
			if err := t.Flush(); err != nil && !errors.Is(err, ErrClosed) {
				logging.Logger().Warn("term: flush failed", "error", err)
			}
		},
	}
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.screen.Fini()
	t.finish()
	return nil
}

func (t *Terminal) finish() {
	t.once.Do(func() { close(t.done) })
}

func (t *Terminal) events() {
	defer t.finish()
	for {
		ev := t.screen.PollEvent()
		switch e := ev.(type) {
		case nil:
			// Fini 之后 PollEvent 返回 nil
			return
		case *tcell.EventKey:
			if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC ||
				(e.Key() == tcell.KeyRune && (e.Rune() == 'q' || e.Rune() == 'Q')) {
				logging.Logger().Info("term: quit requested")
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}
