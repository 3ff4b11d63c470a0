package coords

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/pyotruk/artboard/internal/geom"
)

var (
	approx  = cmpopts.EquateApprox(0, 1e-9)
	logical = geom.Size{Width: 400, Height: 400}
)

func TestToLogical(t *testing.T) {
	bounds := geom.Rect{X: 100, Y: 50, Width: 800, Height: 800}
	tests := []struct {
		name string
		pos  geom.Point
		want geom.Point
	}{
		{"top left", geom.Pt(100, 50), geom.Pt(0, 0)},
		{"bottom right", geom.Pt(900, 850), geom.Pt(400, 400)},
		{"center", geom.Pt(500, 450), geom.Pt(200, 200)},
		{"quarter", geom.Pt(300, 250), geom.Pt(100, 100)},
	}
	for _, strict := range []bool{false, true} {
		m := Mapper{Strict: strict}
		for _, tt := range tests {
			got, err := m.ToLogical(tt.pos, bounds, logical)
			if err != nil {
				t.Fatalf("strict=%v %s: %v", strict, tt.name, err)
			}
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("strict=%v %s (-want +got):\n%s", strict, tt.name, diff)
			}
		}
	}
}

func TestToLogicalIndependentAxes(t *testing.T) {
	bounds := geom.Rect{Width: 200, Height: 100}
	got, err := Mapper{}.ToLogical(geom.Pt(50, 50), bounds, logical)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(geom.Pt(100, 200), got, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestToLogicalStrictOutside(t *testing.T) {
	bounds := geom.Rect{X: 10, Y: 10, Width: 100, Height: 100}

	_, err := Mapper{Strict: true}.ToLogical(geom.Pt(5, 50), bounds, logical)
	if !errors.Is(err, geom.ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
	var de *geom.DomainError
	if !errors.As(err, &de) || de.Value != -5 {
		t.Errorf("got %#v, want DomainError for -5", err)
	}

	got, err := Mapper{}.ToLogical(geom.Pt(5, 50), bounds, logical)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(geom.Pt(-20, 160), got, approx); diff != "" {
		t.Errorf("lenient extrapolation (-want +got):\n%s", diff)
	}
}

func TestToLogicalDegenerate(t *testing.T) {
	for _, strict := range []bool{false, true} {
		_, err := Mapper{Strict: strict}.ToLogical(geom.Pt(0, 0), geom.Rect{Width: 0, Height: 10}, logical)
		if !errors.Is(err, ErrDegenerateBounds) {
			t.Errorf("strict=%v: got %v, want ErrDegenerateBounds", strict, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	bounds := geom.Rect{X: 37.5, Y: -12, Width: 613.25, Height: 401}
	points := []geom.Point{geom.Pt(37.5, -12), geom.Pt(100.1, 200.2), geom.Pt(650.75, 389), geom.Pt(333, 0)}

	m := Mapper{Strict: true}
	for _, p := range points {
		l, err := m.ToLogical(p, bounds, logical)
		if err != nil {
			t.Fatalf("ToLogical(%v): %v", p, err)
		}
		back, err := m.ToScreen(l, bounds, logical)
		if err != nil {
			t.Fatalf("ToScreen(%v): %v", l, err)
		}
		if diff := cmp.Diff(p, back, approx); diff != "" {
			t.Errorf("round trip of %v (-want +got):\n%s", p, diff)
		}
	}
}

func TestToLogicalTransformedMatchesUnrotated(t *testing.T) {
	layout := geom.Rect{X: 100, Y: 100, Width: 400, Height: 400}
	view := geom.CSSTransform(layout.Center(), 2, 15, -10, 0)
	rendered := view.TransformRect(layout)
	pos := geom.Pt(420, 310)

	m := Mapper{}
	want, err := m.ToLogical(pos, rendered, logical)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.ToLogicalTransformed(pos, layout, view, logical)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestToLogicalTransformedRotated(t *testing.T) {
	layout := geom.Rect{Width: 400, Height: 400}
	view := geom.CSSTransform(layout.Center(), 1, 0, 0, 90)

	// Rotating 90deg clockwise puts the logical top-left corner at the
	// screen top-right corner.
	got, err := Mapper{}.ToLogicalTransformed(geom.Pt(400, 0), layout, view, logical)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(geom.Pt(0, 0), got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
