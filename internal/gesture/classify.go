package gesture

import (
	"math"

	"github.com/pyotruk/artboard/internal/geom"
)

// DefaultEpsilon is the finger distance change, in screen pixels, below which
// a two-finger frame counts as a pan.
const DefaultEpsilon = 3

// Pair is a two-finger sample, fingers ordered by touch identifier.
type Pair [2]geom.Point

func (p Pair) Distance() float64 {
	return p[0].Dist(p[1])
}

func (p Pair) Midpoint() geom.Point {
	return geom.Midpoint(p[0], p[1])
}

// Angle is the direction of the first finger as seen from the midpoint, in
// degrees.
func (p Pair) Angle() float64 {
	d := p[0].Sub(p.Midpoint())
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

type FrameKind int

const (
	FramePan FrameKind = iota
	FramePinch
)

func (k FrameKind) String() string {
	if k == FramePinch {
		return "pinch"
	}
	return "pan"
}

// Frame is the outcome of classifying one pair of consecutive samples.
type Frame struct {
	Kind FrameKind
	// Pan is previous midpoint minus current midpoint; set for FramePan.
	Pan geom.Point
	// Zoom is the candidate absolute scale; set for FramePinch.
	Zoom float64
	// Rotate is the twist between the samples in (-180, 180].
	Rotate float64
}

// Classifier decides between pan and pinch for a two-finger frame.
type Classifier struct {
	Epsilon  float64
	Rotation bool
}

func DefaultClassifier() Classifier {
	return Classifier{Epsilon: DefaultEpsilon, Rotation: true}
}

// ZoomIntensity is the distance change that moves the scale by 1. Zooming
// below 1 is half as sensitive.
func ZoomIntensity(scale float64) float64 {
	if scale >= 1 {
		return 100
	}
	return 200
}

func (c Classifier) Classify(cur, prev Pair, scale float64) Frame {
	var f Frame

	distance, prevDistance := cur.Distance(), prev.Distance()
	delta := math.Abs(distance - prevDistance)
	if delta < c.Epsilon {
		f.Kind = FramePan
		f.Pan = prev.Midpoint().Sub(cur.Midpoint())
	} else {
		f.Kind = FramePinch
		step := delta / ZoomIntensity(scale)
		if distance > prevDistance {
			f.Zoom = scale + step
		} else {
			f.Zoom = scale - step
		}
	}

	if c.Rotation {
		f.Rotate = NormalizeDegrees(cur.Angle() - prev.Angle())
	}
	return f
}

// NormalizeDegrees wraps an angle into (-180, 180].
func NormalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
