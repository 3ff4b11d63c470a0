// Package viewport owns the view transform of the artboard: clamped zoom,
// pan and rotation, the throttle that coalesces gesture updates, and the
// scrollbar geometry derived from the transform.
package viewport

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pyotruk/artboard/internal/geom"
)

// Transform is what the artboard element is rendered with:
//
//	transform: scale(Scale) translate(Translate.X px, Translate.Y px) rotate(Rotate deg)
type Transform struct {
	Scale     float64    `json:"scale"`
	Translate geom.Point `json:"translate"`
	Rotate    float64    `json:"rotate"`
}

func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Matrix returns the screen matrix of the transform applied about origin,
// normally the center of the untransformed artboard box.
func (t Transform) Matrix(origin geom.Point) geom.Matrix2D {
	return geom.CSSTransform(origin, t.Scale, t.Translate.X, t.Translate.Y, t.Rotate)
}

// CSS renders the transform as a CSS transform value.
func (t Transform) CSS() string {
	return fmt.Sprintf("scale(%s) translate(%spx, %spx) rotate(%sdeg)",
		num(t.Scale), num(t.Translate.X), num(t.Translate.Y), num(t.Rotate))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Layout is the measured geometry of the view: the scroll pane and the
// untransformed artboard box, both in client coordinates.
type Layout struct {
	Pane     geom.Rect `json:"pane"`
	Artboard geom.Rect `json:"artboard"`
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// round2 rounds to two decimals, the precision scale is stored with.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// jsRound rounds half up like Math.round, so -12.5 becomes -12.
func jsRound(v float64) float64 {
	return math.Floor(v + 0.5)
}
