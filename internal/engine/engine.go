// Package engine wires the gesture sources, the viewport controller and the
// stroke recorder into one artboard view. Both the wasm bridge and the
// session service drive it through HandleEvent and Tick.
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"slices"
	"time"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/pyotruk/artboard/internal/config"
	"github.com/pyotruk/artboard/internal/coords"
	"github.com/pyotruk/artboard/internal/geom"
	"github.com/pyotruk/artboard/internal/gesture"
	"github.com/pyotruk/artboard/internal/input"
	"github.com/pyotruk/artboard/internal/stroke"
	"github.com/pyotruk/artboard/internal/typeid"
	"github.com/pyotruk/artboard/internal/viewport"
)

var ErrNoPosition = errors.New("event carries no position")

// Engine is one artboard view. It is not safe for concurrent use; callers
// that feed it from several goroutines serialize access themselves.
type Engine struct {
	cfg     config.Engine
	logger  *slog.Logger
	mapper  coords.Mapper
	logical geom.Size

	view    *viewport.Controller
	pointer *gesture.PointerSource
	touch   *gesture.TouchSource
	wheel   *gesture.WheelSource
	tracker *input.TouchTracker

	raster   *stroke.Raster
	commands *stroke.CommandBuffer
	recorder *stroke.Recorder
}

type options struct {
	now   func() time.Time
	newID func() string
}

type Option func(*options)

// WithClock sets the time source of the view throttle.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithStrokeIDs sets the stroke id generator.
func WithStrokeIDs(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// New creates an engine with an identity view and a blank surface.
func New(cfg config.Engine, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	o := options{newID: typeid.NewStrokeID}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.ArtboardWidth <= 0 || cfg.ArtboardHeight <= 0 {
		return nil, fmt.Errorf("artboard size %dx%d: %w", cfg.ArtboardWidth, cfg.ArtboardHeight, coords.ErrDegenerateBounds)
	}
	style, err := stroke.NewStyle(cfg.StrokeColor, cfg.StrokeWidth)
	if err != nil {
		return nil, fmt.Errorf("stroke style: %w", err)
	}

	logical := geom.Size{Width: float64(cfg.ArtboardWidth), Height: float64(cfg.ArtboardHeight)}
	view := viewport.NewController(viewport.Options{
		ZoomMin:  cfg.ZoomMin,
		ZoomMax:  cfg.ZoomMax,
		Window:   cfg.ThrottleWindow,
		Artboard: logical,
		Now:      o.now,
	})

	e := &Engine{
		cfg:      cfg,
		logger:   logger,
		mapper:   coords.Mapper{Strict: cfg.StrictMapping},
		logical:  logical,
		view:     view,
		raster:   stroke.NewRaster(cfg.ArtboardWidth, cfg.ArtboardHeight),
		commands: stroke.NewCommandBuffer(),
		tracker:  input.NewTouchTracker(),
	}
	e.recorder = stroke.NewRecorder(stroke.Tee(e.raster, e.commands), style, logger, o.newID)

	classifier := gesture.DefaultClassifier()
	if cfg.PinchEpsilon > 0 {
		classifier.Epsilon = cfg.PinchEpsilon
	}
	classifier.Rotation = cfg.Rotation
	e.pointer = gesture.NewPointerSource(&gesture.ButtonLatch{}, logger)
	e.touch = gesture.NewTouchSource(classifier, view, logger)
	e.wheel = gesture.NewWheelSource(view, logger)

	e.pointer.Attach(e)
	e.touch.Attach(view)
	e.wheel.Attach(view)
	return e, nil
}

// --- Commands (host → engine) ---

// HandleEvent routes one raw event to the gesture sources. A single-finger
// touch end stops at the pointer source; every other touch event also
// reaches the multi-touch source.
func (e *Engine) HandleEvent(ev input.Event) (gesture.Result, error) {
	switch ev.Kind {
	case input.KindMouse:
		return e.pointer.Mouse(ev)

	case input.KindTouch:
		// Finger order must be stable between frames; the caller's slice is
		// left as it was.
		ev.Touches = slices.Clone(ev.Touches)
		ev.SortTouches()
		res, err := e.pointer.Touch(ev)
		if res.StopPropagation {
			return res, err
		}
		multi := e.touch.Handle(ev)
		res.Consumed = res.Consumed || multi.Consumed
		return res, err

	case input.KindWheel:
		return e.wheel.Wheel(ev), nil
	}
	return gesture.Result{}, fmt.Errorf("%w %q", input.ErrUnknownKind, ev.Kind)
}

// HandleEventJSON decodes and handles one event.
func (e *Engine) HandleEventJSON(data []byte) (gesture.Result, error) {
	ev, err := input.Decode(data)
	if err != nil {
		return gesture.Result{}, err
	}
	return e.HandleEvent(ev)
}

// HandleMouse handles a mouse or wheel event from an x/mobile or shiny host.
func (e *Engine) HandleMouse(ev mouse.Event) (gesture.Result, error) {
	return e.HandleEvent(input.FromMouse(ev))
}

// HandleTouch handles one finger's event from an x/mobile host. The engine
// tracks the other active fingers itself.
func (e *Engine) HandleTouch(ev touch.Event) (gesture.Result, error) {
	return e.HandleEvent(e.tracker.Convert(ev))
}

// SetLayout stores freshly measured layout boxes.
func (e *Engine) SetLayout(l viewport.Layout) {
	e.view.SetLayout(l)
}

func (e *Engine) ZoomIn() { e.view.ZoomIn() }

func (e *Engine) ZoomOut() { e.view.ZoomOut() }

// SetZoomPercent zooms to a percentage from the zoom input.
func (e *Engine) SetZoomPercent(p float64) { e.view.SetPercent(p) }

func (e *Engine) ZoomPercent() float64 { return e.view.Percent() }

// View exposes the viewport controller.
func (e *Engine) View() *viewport.Controller { return e.view }

// Tick applies view updates held back by the throttle and returns the
// resulting snapshot. Hosts call it once per animation frame.
func (e *Engine) Tick() Snapshot {
	e.view.Flush()
	return e.Snapshot()
}

// Settle applies every held back view update regardless of the throttle.
func (e *Engine) Settle() Snapshot {
	e.view.FlushAll()
	return e.Snapshot()
}

// --- PointerHandler ---

func (e *Engine) PointerStart(ev input.Event) error {
	p, err := e.toLogical(ev)
	if err != nil {
		return err
	}
	e.recorder.Begin(p)
	return nil
}

func (e *Engine) PointerMove(ev input.Event) error {
	p, err := e.toLogical(ev)
	if err != nil {
		return err
	}
	return e.recorder.Continue(p)
}

func (e *Engine) PointerEnd(ev input.Event) error {
	p, err := e.toLogical(ev)
	if err != nil {
		// The stroke still has to end; it ends where it was last seen.
		e.recorder.Cancel()
		return err
	}
	return e.recorder.End(p)
}

func (e *Engine) PointerCancel() {
	e.recorder.Cancel()
}

// toLogical maps an event onto the surface. The rendered bounding box is
// the reference while the view is unrotated; under rotation the inverse
// view matrix is used instead.
func (e *Engine) toLogical(ev input.Event) (geom.Point, error) {
	pos, ok := ev.Position()
	if !ok {
		return geom.Point{}, ErrNoPosition
	}

	var (
		p   geom.Point
		err error
	)
	if math.Mod(e.view.Transform().Rotate, 360) == 0 {
		p, err = e.mapper.ToLogical(pos, e.view.Rendered(), e.logical)
	} else {
		p, err = e.mapper.ToLogicalTransformed(pos, e.artboardBox(), e.view.Matrix(), e.logical)
	}
	if err != nil {
		e.logger.Warn("position not mapped", "error", err, "x", pos.X, "y", pos.Y)
		return geom.Point{}, err
	}
	return p, nil
}

func (e *Engine) artboardBox() geom.Rect {
	if box := e.view.Layout().Artboard; !box.IsEmpty() {
		return box
	}
	return geom.Rect{Width: e.logical.Width, Height: e.logical.Height}
}

// --- Queries (engine → host) ---

// Snapshot is the view state the host renders from.
type Snapshot struct {
	viewport.Transform
	Percent    float64             `json:"percent"`
	CSS        string              `json:"css"`
	Scrollbars viewport.Scrollbars `json:"scrollbars"`
	Drawing    bool                `json:"drawing"`
	Version    uint64              `json:"version"`
}

func (e *Engine) Snapshot() Snapshot {
	t := e.view.Transform()
	return Snapshot{
		Transform:  t,
		Percent:    e.view.Percent(),
		CSS:        t.CSS(),
		Scrollbars: e.view.Scrollbars(),
		Drawing:    e.recorder.State() == stroke.Drawing,
		Version:    e.view.Version(),
	}
}

// SnapshotJSON returns the snapshot as JSON.
func (e *Engine) SnapshotJSON() string {
	data, err := json.Marshal(e.Snapshot())
	if err != nil {
		return "{}"
	}
	return string(data)
}

func (e *Engine) Transform() viewport.Transform {
	return e.view.Transform()
}

func (e *Engine) Scrollbars() viewport.Scrollbars {
	return e.view.Scrollbars()
}

// DrawCommands returns the stroke segments committed since the last call.
func (e *Engine) DrawCommands() []stroke.DrawCommand {
	return e.commands.Drain()
}

// DrawCommandsJSON drains the draw commands as JSON.
func (e *Engine) DrawCommandsJSON() string {
	result, _ := stroke.DrawCommandsToJSON(e.commands.Drain())
	return result
}

// Surface is the raster every stroke is painted on.
func (e *Engine) Surface() *image.RGBA {
	return e.raster.Image()
}

// ClearSurface wipes the raster.
func (e *Engine) ClearSurface() {
	e.raster.Clear()
}

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool {
	return e.recorder.State() == stroke.Drawing
}
