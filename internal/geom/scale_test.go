package geom

import (
	"errors"
	"math"
	"testing"
)

func TestScaleValue(t *testing.T) {
	tests := []struct {
		value            float64
		original, target Range
		want             float64
	}{
		{5, Range{0, 10}, Range{100, 200}, 150},
		{7, Range{5, 10}, Range{0, 100}, 40},
		{7, Range{5, 10}, Range{100, 200}, 140},
		{7, Range{5, 10}, Range{200, 300}, 240},
		{-5, Range{-10, 10}, Range{0, 100}, 25},
		{3.14, Range{0, 10}, Range{100, 200}, 131.4},
		{7.89, Range{5, 10}, Range{0, 100}, 57.8},
		{0, Range{0, 10}, Range{100, 200}, 100},
		{10, Range{0, 10}, Range{100, 200}, 200},
		{1, Range{0.25, 5}, Range{25, 500}, 100},
	}
	for _, tt := range tests {
		got, err := ScaleValue(tt.value, tt.original, tt.target)
		if err != nil {
			t.Errorf("ScaleValue(%g, %v, %v): unexpected error %v", tt.value, tt.original, tt.target, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ScaleValue(%g, %v, %v) = %g, want %g", tt.value, tt.original, tt.target, got, tt.want)
		}
	}
}

func TestScaleValueOutOfRange(t *testing.T) {
	_, err := ScaleValue(1, Range{5, 10}, Range{0, 100})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("got %T, want *DomainError", err)
	}
	if de.Value != 1 {
		t.Errorf("DomainError.Value = %g, want 1", de.Value)
	}
	if want := "wrong value provided, 1 is not in originalRange [5, 10]"; err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestScaleValueDegenerate(t *testing.T) {
	if _, err := ScaleValue(0, Range{3, 3}, Range{0, 100}); !errors.Is(err, ErrDegenerateRange) {
		t.Fatalf("got %v, want ErrDegenerateRange", err)
	}
}

func TestScaleValueReversedRange(t *testing.T) {
	got, err := ScaleValue(2, Range{10, 0}, Range{0, 100})
	if err != nil {
		t.Fatal(err)
	}
	if got != 80 {
		t.Errorf("got %g, want 80", got)
	}
}

func TestLerpExtrapolates(t *testing.T) {
	if got := Lerp(-10, Range{0, 100}, Range{0, 400}); got != -40 {
		t.Errorf("Lerp = %g, want -40", got)
	}
	if got := Lerp(5, Range{1, 1}, Range{7, 9}); got != 7 {
		t.Errorf("Lerp on zero width = %g, want 7", got)
	}
}
