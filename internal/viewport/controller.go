package viewport

import (
	"math"
	"sync"
	"time"

	"github.com/pyotruk/artboard/internal/geom"
)

// ZoomStep is the scale change of the zoom in/out controls.
const ZoomStep = 0.25

type Options struct {
	ZoomMin float64
	ZoomMax float64
	// Window is the throttle window; zero applies every update at once.
	Window time.Duration
	// Artboard is the logical artboard size, used when no layout is known.
	Artboard geom.Size
	Now      func() time.Time
}

func DefaultOptions() Options {
	return Options{
		ZoomMin:  0.25,
		ZoomMax:  5,
		Window:   DefaultWindow,
		Artboard: geom.Size{Width: 400, Height: 400},
	}
}

// Controller holds the view transform and enforces its constraints: scale
// stays within [ZoomMin, ZoomMax] at two decimals, translation is zero
// whenever scale <= 1 and otherwise keeps part of the artboard in the pane,
// rotation is free. Pan, Zoom and Rotate go through a Throttle; the Apply
// variants bypass it.
type Controller struct {
	opts     Options
	throttle *Throttle

	mu      sync.Mutex
	t       Transform
	layout  Layout
	version uint64
}

// NewController falls back to the default zoom range when opts carries an
// empty one.
func NewController(opts Options) *Controller {
	if opts.ZoomMin <= 0 || opts.ZoomMax < opts.ZoomMin {
		def := DefaultOptions()
		opts.ZoomMin, opts.ZoomMax = def.ZoomMin, def.ZoomMax
	}
	return &Controller{
		opts:     opts,
		throttle: NewThrottle(opts.Window, opts.Now),
		t:        IdentityTransform(),
	}
}

// Pan, Zoom and Rotate make the controller a gesture.ViewHandler.

func (c *Controller) Zoom(candidate float64) {
	if math.IsNaN(candidate) {
		return
	}
	c.apply(c.throttle.Offer(Op{Kind: OpZoom, Zoom: candidate}))
}

func (c *Controller) Pan(dx, dy float64) {
	c.apply(c.throttle.Offer(Op{Kind: OpPan, Pan: geom.Pt(dx, dy)}))
}

func (c *Controller) Rotate(degrees float64) {
	c.apply(c.throttle.Offer(Op{Kind: OpRotate, Rotate: degrees}))
}

// Flush applies queued updates once the throttle window has passed.
func (c *Controller) Flush() {
	c.apply(c.throttle.Flush())
}

// FlushAll applies every queued update now.
func (c *Controller) FlushAll() {
	c.apply(c.throttle.FlushAll())
}

// Pending is the number of queued updates.
func (c *Controller) Pending() int {
	return c.throttle.Pending()
}

func (c *Controller) apply(ops []Op) {
	if len(ops) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, op := range ops {
		switch op.Kind {
		case OpZoom:
			c.zoomLocked(op.Zoom)
		case OpPan:
			c.panLocked(op.Pan.X, op.Pan.Y)
		case OpRotate:
			c.rotateLocked(op.Rotate)
		}
	}
}

func (c *Controller) ApplyZoom(candidate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoomLocked(candidate)
}

func (c *Controller) ApplyPan(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panLocked(dx, dy)
}

func (c *Controller) ApplyRotate(degrees float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotateLocked(degrees)
}

// zoomLocked ignores NaN candidates; infinities clamp to the range ends.
func (c *Controller) zoomLocked(candidate float64) {
	if math.IsNaN(candidate) {
		return
	}
	s := round2(clamp(candidate, c.opts.ZoomMin, c.opts.ZoomMax))
	c.t.Scale = s
	if s <= 1 {
		c.t.Translate = geom.Point{}
	}
	c.version++
}

// panLocked moves the artboard against the gesture delta, in unscaled units,
// keeping the translation within renderedSize / (2.5 * scale) per axis.
func (c *Controller) panLocked(dx, dy float64) {
	s := c.t.Scale
	if s <= 1 {
		return
	}
	r := c.renderedLocked()
	xMax := r.Width / (2.5 * s)
	yMax := r.Height / (2.5 * s)
	c.t.Translate = geom.Point{
		X: clamp(c.t.Translate.X-dx/s, -xMax, xMax),
		Y: clamp(c.t.Translate.Y-dy/s, -yMax, yMax),
	}
	c.version++
}

func (c *Controller) rotateLocked(degrees float64) {
	if degrees == 0 {
		return
	}
	c.t.Rotate += degrees
	c.version++
}

// Scale makes the controller a gesture.ScaleReader.
func (c *Controller) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t.Scale
}

func (c *Controller) Transform() Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// Version increases on every change of the transform or the layout.
func (c *Controller) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// SetLayout stores freshly measured layout boxes. A pane that changed size
// recenters the artboard.
func (c *Controller) SetLayout(l Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l.Pane.Size() != c.layout.Pane.Size() {
		c.t.Translate = geom.Point{}
	}
	c.layout = l
	c.version++
}

func (c *Controller) Layout() Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout
}

// Rendered is the screen bounding box of the artboard under the transform.
func (c *Controller) Rendered() geom.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderedLocked()
}

// Matrix is the screen matrix of the artboard.
func (c *Controller) Matrix() geom.Matrix2D {
	c.mu.Lock()
	defer c.mu.Unlock()
	box := c.artboardLocked()
	return c.t.Matrix(box.Center())
}

func (c *Controller) renderedLocked() geom.Rect {
	box := c.artboardLocked()
	return c.t.Matrix(box.Center()).TransformRect(box)
}

func (c *Controller) artboardLocked() geom.Rect {
	if !c.layout.Artboard.IsEmpty() {
		return c.layout.Artboard
	}
	return geom.Rect{Width: c.opts.Artboard.Width, Height: c.opts.Artboard.Height}
}

// Scrollbars computes the scrollbar geometry for the current state.
func (c *Controller) Scrollbars() Scrollbars {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ComputeScrollbars(c.t.Scale, c.layout.Pane, c.renderedLocked())
}

func (c *Controller) ZoomIn() {
	c.ApplyZoom(c.Scale() + ZoomStep)
}

func (c *Controller) ZoomOut() {
	c.ApplyZoom(c.Scale() - ZoomStep)
}

func (c *Controller) percentRange() (core, ui geom.Range) {
	core = geom.Range{c.opts.ZoomMin, c.opts.ZoomMax}
	ui = geom.Range{c.opts.ZoomMin * 100, c.opts.ZoomMax * 100}
	return core, ui
}

// Percent is the scale as shown in the zoom input.
func (c *Controller) Percent() float64 {
	core, ui := c.percentRange()
	return math.Round(geom.Lerp(c.Scale(), core, ui))
}

// SetPercent zooms to a percentage typed into the zoom input. Values outside
// the percent range are clamped first; NaN, as from a cleared input, is
// ignored.
func (c *Controller) SetPercent(p float64) {
	if math.IsNaN(p) {
		return
	}
	core, ui := c.percentRange()
	p = clamp(p, ui[0], ui[1])
	c.ApplyZoom(geom.Lerp(p, ui, core))
}
