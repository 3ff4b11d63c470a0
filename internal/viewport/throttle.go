package viewport

import (
	"sync"
	"time"

	"github.com/pyotruk/artboard/internal/geom"
)

// DefaultWindow is the minimum time between two applied view updates.
const DefaultWindow = 10 * time.Millisecond

type OpKind int

const (
	OpZoom OpKind = iota
	OpPan
	OpRotate
)

// Op is one view update waiting to be applied.
type Op struct {
	Kind   OpKind
	Zoom   float64
	Pan    geom.Point
	Rotate float64
}

// Throttle rate-limits view updates without losing any of them. The first
// update after a quiet window passes straight through; later ones queue and
// are merged with the update queued right before them when it has the same
// kind: zooms keep the latest candidate, pans and rotations add up. The queue
// is drained by Flush once the window has passed, or by FlushAll.
type Throttle struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time

	last  time.Time
	queue []Op
}

// NewThrottle creates a throttle. A nil now uses time.Now.
func NewThrottle(window time.Duration, now func() time.Time) *Throttle {
	if now == nil {
		now = time.Now
	}
	return &Throttle{window: window, now: now}
}

// Offer submits op and returns the ops to apply right away, if any.
func (t *Throttle) Offer(op Op) []Op {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if len(t.queue) == 0 && t.elapsed(now) {
		t.last = now
		return []Op{op}
	}

	if n := len(t.queue); n > 0 && t.queue[n-1].Kind == op.Kind {
		prev := &t.queue[n-1]
		switch op.Kind {
		case OpZoom:
			prev.Zoom = op.Zoom
		case OpPan:
			prev.Pan = prev.Pan.Add(op.Pan)
		case OpRotate:
			prev.Rotate += op.Rotate
		}
		return nil
	}
	t.queue = append(t.queue, op)
	return nil
}

// Flush drains the queue if the window has passed since the last update.
func (t *Throttle) Flush() []Op {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if len(t.queue) == 0 || !t.elapsed(now) {
		return nil
	}
	return t.drain(now)
}

// FlushAll drains the queue regardless of the window.
func (t *Throttle) FlushAll() []Op {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.queue) == 0 {
		return nil
	}
	return t.drain(t.now())
}

// Pending is the number of queued ops.
func (t *Throttle) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

func (t *Throttle) elapsed(now time.Time) bool {
	return t.last.IsZero() || now.Sub(t.last) >= t.window
}

func (t *Throttle) drain(now time.Time) []Op {
	out := t.queue
	t.queue = nil
	t.last = now
	return out
}
