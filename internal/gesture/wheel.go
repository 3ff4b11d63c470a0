package gesture

import (
	"log/slog"

	"github.com/pyotruk/artboard/internal/input"
)

// WheelZoomStep is the scale change of one ctrl+wheel notch.
func WheelZoomStep(scale float64) float64 {
	if scale >= 1 {
		return 0.1
	}
	return 0.05
}

// WheelSource maps ctrl+wheel to zoom and a plain wheel to scroll.
type WheelSource struct {
	scale  ScaleReader
	logger *slog.Logger
	view   ViewHandler
}

func NewWheelSource(scale ScaleReader, logger *slog.Logger) *WheelSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &WheelSource{scale: scale, logger: logger}
}

func (s *WheelSource) Attach(v ViewHandler) {
	s.view = v
}

func (s *WheelSource) Wheel(ev input.Event) Result {
	if s.view == nil {
		s.logger.Warn("wheel event dropped", "error", ErrNotAttached)
		return Result{}
	}

	if !ev.Ctrl {
		s.view.Pan(ev.DeltaX, ev.DeltaY)
		return Result{Consumed: true, PreventDefault: true}
	}

	current := s.scale.Scale()
	switch {
	case ev.DeltaY < 0:
		s.view.Zoom(current + WheelZoomStep(current))
	case ev.DeltaY > 0:
		s.view.Zoom(current - WheelZoomStep(current))
	}
	return Result{Consumed: true, PreventDefault: true}
}
