package stroke

import (
	"errors"
	"log/slog"

	"github.com/pyotruk/artboard/internal/geom"
)

var ErrNotDrawing = errors.New("no stroke in progress")

type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Recorder turns begin/continue/end calls in logical space into path
// commands on a Surface. Every Continue commits its segment right away so a
// stroke is visible while it is being drawn.
type Recorder struct {
	surface Surface
	style   Style
	logger  *slog.Logger
	newID   func() string

	state State
	id    string
	last  geom.Point
}

// NewRecorder creates an idle recorder. A nil logger uses slog.Default and a
// nil newID leaves stroke ids empty.
func NewRecorder(surface Surface, style Style, logger *slog.Logger, newID func() string) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	if newID == nil {
		newID = func() string { return "" }
	}
	return &Recorder{surface: surface, style: style, logger: logger, newID: newID}
}

func (r *Recorder) State() State {
	return r.state
}

// StrokeID returns the id of the stroke in progress, or "" when idle.
func (r *Recorder) StrokeID() string {
	if r.state != Drawing {
		return ""
	}
	return r.id
}

// Begin starts a new stroke at p. A stroke already in progress is ended at
// its last point first.
func (r *Recorder) Begin(p geom.Point) {
	if r.state == Drawing {
		r.logger.Debug("begin while drawing, ending previous stroke", "stroke", r.id)
		r.finish(r.last)
	}

	r.id = r.newID()
	r.state = Drawing
	r.last = p
	r.surface.BeginPath(r.id, p, r.style)
}

func (r *Recorder) Continue(p geom.Point) error {
	if r.state != Drawing {
		return ErrNotDrawing
	}
	r.surface.LineTo(p)
	r.surface.Stroke()
	r.last = p
	return nil
}

func (r *Recorder) End(p geom.Point) error {
	if r.state != Drawing {
		return ErrNotDrawing
	}
	r.finish(p)
	return nil
}

// Cancel ends the stroke in progress at its last recorded point.
func (r *Recorder) Cancel() {
	if r.state != Drawing {
		return
	}
	r.finish(r.last)
}

func (r *Recorder) finish(p geom.Point) {
	r.surface.LineTo(p)
	r.surface.Stroke()
	r.surface.ClosePath()
	r.logger.Debug("stroke ended", "stroke", r.id)
	r.state = Idle
	r.id = ""
}
