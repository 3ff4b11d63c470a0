package gesture

import (
	"log/slog"

	"github.com/pyotruk/artboard/internal/input"
)

// TouchSource tracks two-finger frames and reports pan, pinch and twist to
// the attached ViewHandler. It keeps only the previous two-finger sample.
type TouchSource struct {
	classifier Classifier
	scale      ScaleReader
	logger     *slog.Logger
	view       ViewHandler

	prev    Pair
	hasPrev bool
}

func NewTouchSource(c Classifier, scale ScaleReader, logger *slog.Logger) *TouchSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &TouchSource{classifier: c, scale: scale, logger: logger}
}

func (s *TouchSource) Attach(v ViewHandler) {
	s.view = v
}

// Handle routes a touch event by phase.
func (s *TouchSource) Handle(ev input.Event) Result {
	switch ev.Phase {
	case input.PhaseStart:
		s.Start()
	case input.PhaseMove:
		return s.Move(ev)
	}
	return Result{}
}

// Start forgets the previous sample so the next two-finger move only primes.
func (s *TouchSource) Start() {
	s.hasPrev = false
}

// Move handles a touch move. Frames without exactly two fingers are ignored.
func (s *TouchSource) Move(ev input.Event) Result {
	if len(ev.Touches) != 2 {
		return Result{}
	}
	if s.view == nil {
		s.logger.Warn("touch frame dropped", "error", ErrNotAttached)
		return Result{}
	}

	cur := Pair{ev.Touches[0].Point(), ev.Touches[1].Point()}
	if s.hasPrev {
		s.dispatch(s.classifier.Classify(cur, s.prev, s.scale.Scale()))
	}
	s.prev = cur
	s.hasPrev = true
	return Result{Consumed: true}
}

func (s *TouchSource) dispatch(f Frame) {
	switch f.Kind {
	case FramePan:
		s.view.Pan(f.Pan.X, f.Pan.Y)
	case FramePinch:
		s.view.Zoom(f.Zoom)
	}
	if f.Rotate != 0 {
		s.view.Rotate(f.Rotate)
	}
}
