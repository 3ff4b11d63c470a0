package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestCSSTransformScaleOnly(t *testing.T) {
	layout := Rect{X: 100, Y: 50, Width: 400, Height: 400}
	m := CSSTransform(layout.Center(), 2, 0, 0, 0)

	got := m.TransformRect(layout)
	want := Rect{X: -100, Y: -150, Width: 800, Height: 800}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("TransformRect mismatch (-want +got):\n%s", diff)
	}
}

func TestCSSTransformTranslateIsScaled(t *testing.T) {
	layout := Rect{Width: 100, Height: 100}
	m := CSSTransform(layout.Center(), 2, 10, -5, 0)

	// translate() sits inside scale(), so it moves by 2x its value.
	got := m.Apply(layout.Center())
	want := Point{X: 70, Y: 40}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("center mismatch (-want +got):\n%s", diff)
	}
}

func TestCSSTransformRotatedBounds(t *testing.T) {
	layout := Rect{Width: 100, Height: 100}
	m := CSSTransform(layout.Center(), 1, 0, 0, 90)

	got := m.TransformRect(layout)
	if diff := cmp.Diff(layout, got, approx); diff != "" {
		t.Errorf("square rotated by 90deg should keep its bounds (-want +got):\n%s", diff)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := CSSTransform(Pt(200, 200), 1.5, 12, -7, 30)
	p := Pt(33, 71)

	got := m.Invert().Apply(m.Apply(p))
	if diff := cmp.Diff(p, got, approx); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Identity(), m.Multiply(m.Invert()), approx); diff != "" {
		t.Errorf("m * m^-1 is not identity (-want +got):\n%s", diff)
	}
}

func TestInvertSingular(t *testing.T) {
	if got := Scale(0).Invert(); got != Identity() {
		t.Errorf("singular matrix inverted to %v, want identity", got)
	}
}
