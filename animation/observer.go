package animation

import "github.com/ByLCY/marquee/frame"

// Observer is notified as the sequencer plays. Calls happen on the
// sequencer goroutine; implementations must not draw onto the frame.
type Observer interface {
	StepStarted(index int, step Step)
	FrameDrawn(index int, step Step, f *frame.Frame)
	StepFinished(index int, step Step, err error)
}

// ObserverFuncs adapts optional callbacks to Observer.
type ObserverFuncs struct {
	OnStepStarted  func(index int, step Step)
	OnFrameDrawn   func(index int, step Step, f *frame.Frame)
	OnStepFinished func(index int, step Step, err error)
}

func (o ObserverFuncs) StepStarted(index int, step Step) {
	if o.OnStepStarted != nil {
		o.OnStepStarted(index, step)
	}
}

func (o ObserverFuncs) FrameDrawn(index int, step Step, f *frame.Frame) {
	if o.OnFrameDrawn != nil {
		o.OnFrameDrawn(index, step, f)
	}
}

func (o ObserverFuncs) StepFinished(index int, step Step, err error) {
	if o.OnStepFinished != nil {
		o.OnStepFinished(index, step, err)
	}
}

// Observers fans notifications out to every non-nil observer in order.
func Observers(list ...Observer) Observer {
	var out multiObserver
	for _, o := range list {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) StepStarted(index int, step Step) {
	for _, o := range m {
		o.StepStarted(index, step)
	}
}

func (m multiObserver) FrameDrawn(index int, step Step, f *frame.Frame) {
	for _, o := range m {
		o.FrameDrawn(index, step, f)
	}
}

func (m multiObserver) StepFinished(index int, step Step, err error) {
	for _, o := range m {
		o.StepFinished(index, step, err)
	}
}
