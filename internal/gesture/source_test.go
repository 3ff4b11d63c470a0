package gesture

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyotruk/artboard/internal/input"
)

type recorded struct {
	calls []string
}

func (r *recorded) pointer() PointerFuncs {
	return PointerFuncs{
		Start: func(ev input.Event) error {
			p, _ := ev.Position()
			r.calls = append(r.calls, fmt.Sprintf("start %g,%g", p.X, p.Y))
			return nil
		},
		Move: func(ev input.Event) error {
			p, _ := ev.Position()
			r.calls = append(r.calls, fmt.Sprintf("move %g,%g", p.X, p.Y))
			return nil
		},
		End: func(ev input.Event) error {
			p, _ := ev.Position()
			r.calls = append(r.calls, fmt.Sprintf("end %g,%g", p.X, p.Y))
			return nil
		},
		Cancel: func() { r.calls = append(r.calls, "cancel") },
	}
}

func (r *recorded) view() ViewFuncs {
	return ViewFuncs{
		PanFunc:    func(dx, dy float64) { r.calls = append(r.calls, fmt.Sprintf("pan %g,%g", dx, dy)) },
		ZoomFunc:   func(s float64) { r.calls = append(r.calls, fmt.Sprintf("zoom %.2f", s)) },
		RotateFunc: func(d float64) { r.calls = append(r.calls, fmt.Sprintf("rotate %g", d)) },
	}
}

func mouse(phase input.Phase, target input.Target, x, y float64) input.Event {
	return input.Event{Kind: input.KindMouse, Phase: phase, Target: target, X: x, Y: y}
}

func touches(phase input.Phase, pts ...float64) input.Event {
	ev := input.Event{Kind: input.KindTouch, Phase: phase}
	for i := 0; i+1 < len(pts); i += 2 {
		ev.Touches = append(ev.Touches, input.Touch{ID: i / 2, X: pts[i], Y: pts[i+1]})
	}
	return ev
}

func TestPointerSourceMouseDrag(t *testing.T) {
	rec := &recorded{}
	src := NewPointerSource(nil, nil)
	src.Attach(rec.pointer())

	events := []input.Event{
		mouse(input.PhaseMove, input.TargetCanvas, 1, 1), // button up, ignored
		mouse(input.PhaseStart, input.TargetCanvas, 10, 10),
		mouse(input.PhaseMove, input.TargetCanvas, 20, 10),
		mouse(input.PhaseEnd, input.TargetCanvas, 30, 10),
		mouse(input.PhaseEnd, input.TargetWindow, 30, 10), // bubbled, latch already released
		mouse(input.PhaseMove, input.TargetCanvas, 40, 10),
	}
	for _, ev := range events {
		if _, err := src.Mouse(ev); err != nil {
			t.Fatalf("Mouse(%v): %v", ev.Phase, err)
		}
	}

	want := []string{"start 10,10", "move 20,10", "end 30,10"}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerSourceWindowReleaseCancels(t *testing.T) {
	rec := &recorded{}
	latch := &ButtonLatch{}
	src := NewPointerSource(latch, nil)
	src.Attach(rec.pointer())

	_, _ = src.Mouse(mouse(input.PhaseStart, input.TargetCanvas, 10, 10))
	if !latch.Down() {
		t.Fatal("latch not pressed")
	}
	_, _ = src.Mouse(mouse(input.PhaseEnd, input.TargetWindow, 500, 500))
	if latch.Down() {
		t.Error("latch still down after window release")
	}

	want := []string{"start 10,10", "cancel"}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerSourceIgnoresSecondaryButton(t *testing.T) {
	rec := &recorded{}
	src := NewPointerSource(nil, nil)
	src.Attach(rec.pointer())

	ev := mouse(input.PhaseStart, input.TargetCanvas, 10, 10)
	ev.Button = 2
	res, _ := src.Mouse(ev)
	if res.Consumed || len(rec.calls) != 0 {
		t.Errorf("right button started a gesture: %+v %v", res, rec.calls)
	}
}

func TestPointerSourceSingleTouch(t *testing.T) {
	rec := &recorded{}
	src := NewPointerSource(nil, nil)
	src.Attach(rec.pointer())

	_, _ = src.Touch(touches(input.PhaseStart, 5, 5))
	_, _ = src.Touch(touches(input.PhaseMove, 6, 7))
	end := input.Event{Kind: input.KindTouch, Phase: input.PhaseEnd, Changed: []input.Touch{{X: 8, Y: 9}}}
	res, err := src.Touch(end)
	if err != nil {
		t.Fatal(err)
	}
	if !res.StopPropagation {
		t.Error("touch end should stop propagation")
	}

	want := []string{"start 5,5", "move 6,7", "end 8,9"}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerSourceSecondFingerCancels(t *testing.T) {
	rec := &recorded{}
	src := NewPointerSource(nil, nil)
	src.Attach(rec.pointer())

	_, _ = src.Touch(touches(input.PhaseStart, 5, 5))
	_, _ = src.Touch(touches(input.PhaseStart, 5, 5, 50, 50))
	_, _ = src.Touch(touches(input.PhaseMove, 6, 6, 60, 60))

	want := []string{"start 5,5", "cancel"}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if src.Touching() {
		t.Error("still touching after cancel")
	}
}

func TestPointerSourceHandlerError(t *testing.T) {
	boom := errors.New("boom")
	src := NewPointerSource(nil, nil)
	src.Attach(PointerFuncs{Start: func(input.Event) error { return boom }})

	if _, err := src.Mouse(mouse(input.PhaseStart, input.TargetCanvas, 0, 0)); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestSourcesWarnWhenDetached(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ps := NewPointerSource(nil, logger)
	if res, err := ps.Mouse(mouse(input.PhaseStart, input.TargetCanvas, 0, 0)); err != nil || res.Consumed {
		t.Errorf("detached pointer source: %+v, %v", res, err)
	}
	ws := NewWheelSource(StaticScale(1), logger)
	ws.Wheel(input.Event{Kind: input.KindWheel, DeltaY: 1})
	ts := NewTouchSource(DefaultClassifier(), StaticScale(1), logger)
	ts.Move(touches(input.PhaseMove, 0, 0, 10, 10))

	if n := strings.Count(buf.String(), "level=WARN"); n != 3 {
		t.Errorf("got %d warnings, want 3:\n%s", n, buf.String())
	}
}

func TestTouchSourceFrames(t *testing.T) {
	rec := &recorded{}
	src := NewTouchSource(DefaultClassifier(), StaticScale(1), nil)
	src.Attach(rec.view())

	src.Handle(touches(input.PhaseStart, 0, 0, 100, 0))
	src.Handle(touches(input.PhaseMove, 0, 0, 100, 0))     // primes
	src.Handle(touches(input.PhaseMove, -20, 0, 120, 0))   // pinch 100 -> 140
	src.Handle(touches(input.PhaseMove, -10, 0, 130, 0))   // pan by the midpoint
	src.Handle(touches(input.PhaseMove, 0, 0))             // one finger, ignored
	src.Handle(touches(input.PhaseMove, 0, 0, 1, 1, 2, 2)) // three fingers, ignored
	src.Handle(touches(input.PhaseStart, 0, 0, 100, 0))    // resets
	src.Handle(touches(input.PhaseMove, 50, 0, 100, 0))    // primes again

	want := []string{"zoom 1.40", "pan -10,0"}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWheelSource(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		ev    input.Event
		want  []string
	}{
		{"ctrl up zooms in", 1, input.Event{Ctrl: true, DeltaY: -100}, []string{"zoom 1.10"}},
		{"ctrl down zooms out", 2, input.Event{Ctrl: true, DeltaY: 100}, []string{"zoom 1.90"}},
		{"small step below 1", 0.5, input.Event{Ctrl: true, DeltaY: 3}, []string{"zoom 0.45"}},
		{"ctrl without delta", 1, input.Event{Ctrl: true}, nil},
		{"plain wheel scrolls", 2, input.Event{DeltaX: 4, DeltaY: -7}, []string{"pan 4,-7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorded{}
			src := NewWheelSource(StaticScale(tt.scale), nil)
			src.Attach(rec.view())

			tt.ev.Kind = input.KindWheel
			res := src.Wheel(tt.ev)
			if !res.PreventDefault {
				t.Error("wheel should prevent default")
			}
			if diff := cmp.Diff(tt.want, rec.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
