package input

import (
	"sort"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"
)

// WheelStep is the pixel delta reported for one wheel notch, close to what
// browsers report in DOM_DELTA_PIXEL mode.
const WheelStep = 100

// FromMouse converts an x/mobile (shiny) mouse event. Presses of buttons
// other than the main one are passed through with their DOM button number so
// the pointer source can ignore them. x/mobile delivers every event of the
// window the canvas fills, so all of them target the canvas.
func FromMouse(e mouse.Event) Event {
	ctrl := e.Modifiers&key.ModControl != 0

	if e.Button.IsWheel() {
		ev := Event{Kind: KindWheel, X: float64(e.X), Y: float64(e.Y), Ctrl: ctrl}
		switch e.Button {
		case mouse.ButtonWheelUp:
			ev.DeltaY = -WheelStep
		case mouse.ButtonWheelDown:
			ev.DeltaY = WheelStep
		case mouse.ButtonWheelLeft:
			ev.DeltaX = -WheelStep
		case mouse.ButtonWheelRight:
			ev.DeltaX = WheelStep
		}
		return ev
	}

	ev := Event{
		Kind:   KindMouse,
		X:      float64(e.X),
		Y:      float64(e.Y),
		Button: domButton(e.Button),
		Ctrl:   ctrl,
		Target: TargetCanvas,
	}
	switch e.Direction {
	case mouse.DirPress:
		ev.Phase = PhaseStart
	case mouse.DirRelease:
		ev.Phase = PhaseEnd
	default:
		ev.Phase = PhaseMove
	}
	return ev
}

func domButton(b mouse.Button) int {
	switch b {
	case mouse.ButtonMiddle:
		return 1
	case mouse.ButtonRight:
		return 2
	default:
		return ButtonPrimary
	}
}

// TouchTracker turns x/mobile touch events, which arrive one finger at a
// time, into multi-touch frames carrying every active point.
type TouchTracker struct {
	active map[touch.Sequence]Touch
}

func NewTouchTracker() *TouchTracker {
	return &TouchTracker{active: make(map[touch.Sequence]Touch)}
}

func (tt *TouchTracker) Convert(e touch.Event) Event {
	t := Touch{ID: int(e.Sequence), X: float64(e.X), Y: float64(e.Y)}

	ev := Event{Kind: KindTouch, Target: TargetCanvas, Changed: []Touch{t}}
	switch e.Type {
	case touch.TypeBegin:
		tt.active[e.Sequence] = t
		ev.Phase = PhaseStart
	case touch.TypeMove:
		tt.active[e.Sequence] = t
		ev.Phase = PhaseMove
	case touch.TypeEnd:
		delete(tt.active, e.Sequence)
		ev.Phase = PhaseEnd
	}

	ev.Touches = make([]Touch, 0, len(tt.active))
	for _, a := range tt.active {
		ev.Touches = append(ev.Touches, a)
	}
	sort.Slice(ev.Touches, func(i, j int) bool { return ev.Touches[i].ID < ev.Touches[j].ID })
	return ev
}

// Active reports how many fingers are down.
func (tt *TouchTracker) Active() int {
	return len(tt.active)
}
