// Package x11 shows frames in an X11 window, one LED per scale x scale
// block of screen pixels.
package x11

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/ByLCY/marquee/animation"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/logging"
)

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("x11: window closed")

// maxRequestBytes keeps each PutImage under the core protocol limit.
const maxRequestBytes = 200_000

// Window is a frame.Canvas backed by an in-memory buffer; Flush pushes the
// buffer to the X server.
type Window struct {
	*frame.Buffer

	scale  int
	xu     *xgbutil.XUtil
	window xproto.Window
	gc     xproto.Gcontext
	depth  byte

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	once   sync.Once
}

// Open connects to $DISPLAY and maps a window sized width*scale by
// height*scale.
func Open(title string, width, height, scale int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("x11: invalid frame size %dx%d", width, height)
	}
	if scale < 1 {
		scale = 1
	}
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	keybind.Initialize(xu)

	conn := xu.Conn()
	screen := xproto.Setup(conn).DefaultScreen(conn)

	windowID, err := xproto.NewWindowId(conn)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("x11: window id: %w", err)
	}
	xproto.CreateWindow(
		conn,
		xproto.WindowClassCopyFromParent,
		windowID,
		screen.Root,
		0, 0,
		uint16(width*scale),
		uint16(height*scale),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			screen.BlackPixel,
			xproto.EventMaskExposure | xproto.EventMaskKeyPress | xproto.EventMaskStructureNotify,
		},
	)

	gcID, err := xproto.NewGcontextId(conn)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("x11: gc id: %w", err)
	}
	xproto.CreateGC(
		conn,
		gcID,
		xproto.Drawable(windowID),
		xproto.GcForeground|xproto.GcBackground,
		[]uint32{screen.WhitePixel, screen.BlackPixel},
	)
	if err := icccm.WmNameSet(xu, windowID, title); err != nil {
		logging.Logger().Warn("x11: cannot set window title", "error", err)
	}
	xproto.MapWindow(conn, windowID)

	w := &Window{
		Buffer: frame.NewBuffer(width, height),
		scale:  scale,
		xu:     xu,
		window: windowID,
		gc:     gcID,
		depth:  screen.RootDepth,
		done:   make(chan struct{}),
	}
	go w.events()
	return w, nil
}

// Done is closed when the user closes the window or presses q / Escape.
func (w *Window) Done() <-chan struct{} { return w.done }

// Flush sends the buffer to the server.
func (w *Window) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	width := w.Width() * w.scale
	height := w.Height() * w.scale
	rows := chunkRows(width)
	for y := 0; y < height; y += rows {
		h := min(rows, height-y)
		xproto.PutImage(
			w.xu.Conn(),
			xproto.ImageFormatZPixmap,
			xproto.Drawable(w.window),
			w.gc,
			uint16(width),
			uint16(h),
			0, int16(y),
			0,
			w.depth,
			encodeBGRX(w.Buffer, w.scale, y, h),
		)
	}
	return nil
}

// Observer flushes after every drawn frame.
func (w *Window) Observer() animation.Observer {
	return animation.ObserverFuncs{
		OnFrameDrawn: func(int, animation.Step, *frame.Frame) {
			if err := w.Flush(); err != nil && !errors.Is(err, ErrClosed) {
				logging.Logger().Warn("x11: flush failed", "error", err)
			}
		},
	}
}

// Close destroys the window and drops the connection.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	xproto.DestroyWindow(w.xu.Conn(), w.window)
	w.xu.Conn().Close()
	w.finish()
	return nil
}

func (w *Window) finish() {
	w.once.Do(func() { close(w.done) })
}

func (w *Window) events() {
	defer w.finish()
	for {
		ev, xerr := w.xu.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			// 连接已关闭
			return
		}
		if xerr != nil {
			logging.Logger().Warn("x11: protocol error", "error", xerr)
			continue
		}
		switch e := ev.(type) {
		case xproto.ExposeEvent:
			// 缓冲区只由播放协程写入，重绘留给下一帧
			logging.Logger().Debug("x11: exposed", "count", e.Count)
		case xproto.KeyPressEvent:
			switch keybind.LookupString(w.xu, e.State, e.Detail) {
			case "q", "Q", "Escape":
				logging.Logger().Info("x11: quit requested")
				return
			}
		case xproto.DestroyNotifyEvent:
			return
		}
	}
}
