package geom

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *DomainError.
	ErrOutOfRange = errors.New("value not in original range")

	ErrDegenerateRange = errors.New("original range has zero width")
)

// Range is a closed interval given as [from, to]. from may be greater than to.
type Range [2]float64

func (r Range) Width() float64 {
	return r[1] - r[0]
}

func (r Range) contains(v float64) bool {
	lo, hi := min(r[0], r[1]), max(r[0], r[1])
	return v >= lo && v <= hi
}

// DomainError reports a value handed to ScaleValue outside its source range.
// It signals stale or mismatched bounds at the call site.
type DomainError struct {
	Value    float64
	Original Range
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("wrong value provided, %g is not in originalRange [%g, %g]", e.Value, e.Original[0], e.Original[1])
}

func (e *DomainError) Is(target error) bool {
	return target == ErrOutOfRange
}

// ScaleValue maps value from the original range onto the target range with the
// affine function that sends original[0] to target[0] and original[1] to
// target[1]. It fails with a *DomainError when value lies outside original.
func ScaleValue(value float64, original, target Range) (float64, error) {
	if original.Width() == 0 {
		return 0, ErrDegenerateRange
	}
	if !original.contains(value) {
		return 0, &DomainError{Value: value, Original: original}
	}
	return Lerp(value, original, target), nil
}

// Lerp is ScaleValue without the domain check; values outside original are
// extrapolated. A zero-width original range yields target[0].
func Lerp(value float64, original, target Range) float64 {
	w := original.Width()
	if w == 0 {
		return target[0]
	}
	return (value-original[0])*target.Width()/w + target[0]
}
