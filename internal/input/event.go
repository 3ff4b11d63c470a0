// Package input defines the raw events the engine consumes. The JSON shape is
// what the browser bridge and the session protocol send; adapters in this
// package convert other host event vocabularies into it.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/pyotruk/artboard/internal/geom"
)

var (
	ErrUnknownKind  = errors.New("unknown event kind")
	ErrUnknownPhase = errors.New("unknown event phase")
)

type Kind string

const (
	KindMouse Kind = "mouse"
	KindTouch Kind = "touch"
	KindWheel Kind = "wheel"
)

type Phase string

const (
	PhaseStart  Phase = "start"
	PhaseMove   Phase = "move"
	PhaseEnd    Phase = "end"
	PhaseCancel Phase = "cancel"
)

// Target tells where the host listener that produced the event sits. Mouse
// releases are listened for on the window so that a drag leaving the
// canvas still ends.
type Target string

const (
	TargetCanvas Target = "canvas"
	TargetWindow Target = "window"
)

// ButtonPrimary is the DOM MouseEvent.button value of the main button.
const ButtonPrimary = 0

// Touch is one active touch point in client coordinates.
type Touch struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (t Touch) Point() geom.Point {
	return geom.Point{X: t.X, Y: t.Y}
}

// Event is a single raw input sample.
type Event struct {
	Kind   Kind   `json:"kind"`
	Phase  Phase  `json:"phase,omitempty"`
	Target Target `json:"target,omitempty"`

	// Mouse: client position and DOM button number.
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Button int     `json:"button,omitempty"`

	// Touch: points still on the surface, and the points that changed in
	// this event (on end, the lifted finger is only in Changed).
	Touches []Touch `json:"touches,omitempty"`
	Changed []Touch `json:"changed,omitempty"`

	// Wheel.
	DeltaX float64 `json:"deltaX,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`

	Ctrl bool `json:"ctrl,omitempty"`
}

// Position returns the representative screen position of the event: the
// first active touch, then the first changed touch, then the client
// position. ok is false for a touch event that carries no points at all.
func (e Event) Position() (p geom.Point, ok bool) {
	if e.Kind == KindTouch {
		if len(e.Touches) > 0 {
			return e.Touches[0].Point(), true
		}
		if len(e.Changed) > 0 {
			return e.Changed[0].Point(), true
		}
		return geom.Point{}, false
	}
	return geom.Point{X: e.X, Y: e.Y}, true
}

// SortTouches orders active touches by id so the same finger keeps the
// same index between frames.
func (e *Event) SortTouches() {
	sort.SliceStable(e.Touches, func(i, j int) bool { return e.Touches[i].ID < e.Touches[j].ID })
}

func (e Event) Validate() error {
	switch e.Kind {
	case KindMouse, KindTouch:
		switch e.Phase {
		case PhaseStart, PhaseMove, PhaseEnd, PhaseCancel:
		default:
			return fmt.Errorf("%s event: %w %q", e.Kind, ErrUnknownPhase, e.Phase)
		}
	case KindWheel:
	default:
		return fmt.Errorf("%w %q", ErrUnknownKind, e.Kind)
	}
	return nil
}

// Decode parses and validates one JSON event.
func Decode(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	e.SortTouches()
	return e, nil
}
