package renderer

import (
	"image"
	"time"

	"github.com/ByLCY/marquee/animation"
	"github.com/ByLCY/marquee/frame"
	"github.com/ByLCY/marquee/logging"
)

// Snapshotter 是可以复制当前内容的画布，例如 frame.Buffer。
type Snapshotter interface {
	Snapshot() *image.RGBA
}

// Recorder 作为动画观察者采集快照：每个步骤内每 Every 帧一张，步骤结束时再补一张。
type Recorder struct {
	Every int           // 0 表示只在步骤结束时采集
	Limit int           // 最多采集的页数，0 表示不限
	Now   func() time.Time

	start   time.Time
	frames  int
	last    *frame.Frame
	pages   []Snapshot
	skipped bool
}

var _ animation.Observer = (*Recorder)(nil)

// NewRecorder 创建采集器。now 通常是动画时钟的 Now。
func NewRecorder(every, limit int, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{Every: every, Limit: limit, Now: now}
}

func (r *Recorder) StepStarted(index int, step animation.Step) {
	if r.start.IsZero() {
		r.start = r.Now()
	}
	r.frames = 0
	r.last = nil
}

func (r *Recorder) FrameDrawn(index int, step animation.Step, f *frame.Frame) {
	r.frames++
	r.last = f
	if r.Every > 0 && r.frames%r.Every == 0 {
		r.capture(index, step, f)
	}
}

func (r *Recorder) StepFinished(index int, step animation.Step, err error) {
	if err != nil || r.last == nil {
		return
	}
	// 最后一帧已被周期采集时不重复
	if r.Every > 0 && r.frames%r.Every == 0 {
		return
	}
	r.capture(index, step, r.last)
}

func (r *Recorder) capture(index int, step animation.Step, f *frame.Frame) {
	if r.Limit > 0 && len(r.pages) >= r.Limit {
		return
	}
	var img *image.RGBA
	if snap, ok := f.Canvas().(Snapshotter); ok {
		img = snap.Snapshot()
	}
	if img == nil {
		if !r.skipped {
			logging.Logger().Warn("canvas cannot be snapshotted, recording disabled")
			r.skipped = true
		}
		return
	}
	r.pages = append(r.pages, Snapshot{
		Step:  step.Name(),
		Index: index,
		Frame: r.frames,
		At:    r.Now().Sub(r.start),
		Image: img,
	})
}

// Len 返回已采集的页数。
func (r *Recorder) Len() int { return len(r.pages) }

// Sheet 返回已采集的快照表。
func (r *Recorder) Sheet(title string) *Sheet {
	return &Sheet{Title: title, Subject: "marquee snapshots", Pages: r.pages}
}
