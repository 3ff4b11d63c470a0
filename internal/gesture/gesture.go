// Package gesture turns raw input events into semantic gestures: pointer
// start/move/end for drawing, and pan, zoom and rotate for the viewport.
package gesture

import (
	"errors"

	"github.com/pyotruk/artboard/internal/input"
)

var ErrNotAttached = errors.New("no gestures attached")

// PointerHandler receives single-pointer gestures. Errors are passed back to
// whoever fed the event.
type PointerHandler interface {
	PointerStart(ev input.Event) error
	PointerMove(ev input.Event) error
	PointerEnd(ev input.Event) error
	PointerCancel()
}

// ViewHandler receives viewport gestures. Zoom carries a candidate absolute
// scale; clamping is up to the handler.
type ViewHandler interface {
	Pan(dx, dy float64)
	Zoom(candidate float64)
	Rotate(degrees float64)
}

// ScaleReader reports the current viewport scale.
type ScaleReader interface {
	Scale() float64
}

// Result tells the host what happened to an event.
type Result struct {
	Consumed        bool `json:"consumed"`
	StopPropagation bool `json:"stopPropagation"`
	PreventDefault  bool `json:"preventDefault"`
}

// PointerFuncs adapts plain functions to PointerHandler. Nil fields are
// skipped.
type PointerFuncs struct {
	Start  func(ev input.Event) error
	Move   func(ev input.Event) error
	End    func(ev input.Event) error
	Cancel func()
}

func (f PointerFuncs) PointerStart(ev input.Event) error {
	if f.Start == nil {
		return nil
	}
	return f.Start(ev)
}

func (f PointerFuncs) PointerMove(ev input.Event) error {
	if f.Move == nil {
		return nil
	}
	return f.Move(ev)
}

func (f PointerFuncs) PointerEnd(ev input.Event) error {
	if f.End == nil {
		return nil
	}
	return f.End(ev)
}

func (f PointerFuncs) PointerCancel() {
	if f.Cancel != nil {
		f.Cancel()
	}
}

// ViewFuncs adapts plain functions to ViewHandler. Nil fields are skipped.
type ViewFuncs struct {
	PanFunc    func(dx, dy float64)
	ZoomFunc   func(candidate float64)
	RotateFunc func(degrees float64)
}

func (f ViewFuncs) Pan(dx, dy float64) {
	if f.PanFunc != nil {
		f.PanFunc(dx, dy)
	}
}

func (f ViewFuncs) Zoom(candidate float64) {
	if f.ZoomFunc != nil {
		f.ZoomFunc(candidate)
	}
}

func (f ViewFuncs) Rotate(degrees float64) {
	if f.RotateFunc != nil {
		f.RotateFunc(degrees)
	}
}

// StaticScale is a ScaleReader with a fixed value.
type StaticScale float64

func (s StaticScale) Scale() float64 { return float64(s) }

// ButtonLatch tracks whether the primary mouse button is held. It is shared
// between the canvas listener that sets it and the window listener that
// clears it, so a release outside the canvas is still seen.
type ButtonLatch struct {
	down bool
}

func (l *ButtonLatch) Press()     { l.down = true }
func (l *ButtonLatch) Release()   { l.down = false }
func (l *ButtonLatch) Down() bool { return l.down }
