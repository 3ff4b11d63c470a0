package gesture

import (
	"log/slog"

	"github.com/pyotruk/artboard/internal/input"
)

// PointerSource produces start/move/end for mouse and single-finger touch.
// Only one PointerHandler is attached at a time.
type PointerSource struct {
	logger  *slog.Logger
	latch   *ButtonLatch
	handler PointerHandler

	touching bool
}

func NewPointerSource(latch *ButtonLatch, logger *slog.Logger) *PointerSource {
	if latch == nil {
		latch = &ButtonLatch{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PointerSource{latch: latch, logger: logger}
}

// Attach replaces the current handler.
func (s *PointerSource) Attach(h PointerHandler) {
	s.handler = h
}

// Touching reports whether a single-finger gesture is in progress.
func (s *PointerSource) Touching() bool {
	return s.touching
}

// Mouse handles one mouse event. A press starts a gesture only on the canvas
// with the primary button; moves are forwarded while the latch is down; a
// release on the canvas ends the gesture and a release anywhere else ends it
// at the last point.
func (s *PointerSource) Mouse(ev input.Event) (Result, error) {
	if s.handler == nil {
		s.logger.Warn("pointer event dropped", "error", ErrNotAttached, "phase", ev.Phase)
		return Result{}, nil
	}

	switch ev.Phase {
	case input.PhaseStart:
		if ev.Target == input.TargetWindow || ev.Button != input.ButtonPrimary {
			return Result{}, nil
		}
		s.latch.Press()
		return Result{Consumed: true}, s.handler.PointerStart(ev)

	case input.PhaseMove:
		if !s.latch.Down() {
			return Result{}, nil
		}
		return Result{Consumed: true}, s.handler.PointerMove(ev)

	case input.PhaseEnd:
		if !s.latch.Down() {
			return Result{}, nil
		}
		s.latch.Release()
		if ev.Target == input.TargetWindow {
			s.handler.PointerCancel()
			return Result{Consumed: true}, nil
		}
		return Result{Consumed: true}, s.handler.PointerEnd(ev)

	case input.PhaseCancel:
		if !s.latch.Down() {
			return Result{}, nil
		}
		s.latch.Release()
		s.handler.PointerCancel()
		return Result{Consumed: true}, nil
	}
	return Result{}, nil
}

// Touch handles the single-finger part of a touch event. It ignores frames
// with more than one finger, except that a second finger landing cancels a
// gesture in progress.
func (s *PointerSource) Touch(ev input.Event) (Result, error) {
	if s.handler == nil {
		s.logger.Warn("touch event dropped", "error", ErrNotAttached, "phase", ev.Phase)
		return Result{}, nil
	}

	switch ev.Phase {
	case input.PhaseStart:
		if len(ev.Touches) == 1 {
			s.touching = true
			return Result{Consumed: true}, s.handler.PointerStart(ev)
		}
		if s.touching {
			s.touching = false
			s.handler.PointerCancel()
		}

	case input.PhaseMove:
		if s.touching && len(ev.Touches) == 1 {
			return Result{Consumed: true}, s.handler.PointerMove(ev)
		}

	case input.PhaseEnd:
		if s.touching && len(ev.Touches) == 0 {
			s.touching = false
			return Result{Consumed: true, StopPropagation: true}, s.handler.PointerEnd(ev)
		}

	case input.PhaseCancel:
		if s.touching {
			s.touching = false
			s.handler.PointerCancel()
			return Result{Consumed: true, StopPropagation: true}, nil
		}
	}
	return Result{}, nil
}
