// Package coords maps screen positions onto the logical drawing surface and
// back. Bounds are taken per call; nothing is cached, so the mapping stays
// right across zoom, pan and layout changes.
package coords

import (
	"errors"
	"fmt"

	"github.com/pyotruk/artboard/internal/geom"
)

// ErrDegenerateBounds is returned for a reference box with no area, which
// is what an element reports before it has been laid out.
var ErrDegenerateBounds = errors.New("reference bounds have no area")

// Mapper converts between screen space and logical surface space.
//
// A strict Mapper rejects positions outside the reference bounds with a
// *geom.DomainError. A lenient one extrapolates, which is what a drag that
// leaves the canvas needs: the raster clips the part outside.
type Mapper struct {
	Strict bool
}

// ToLogical maps a screen position onto the logical surface whose on-screen
// box is bounds.
func (m Mapper) ToLogical(pos geom.Point, bounds geom.Rect, logical geom.Size) (geom.Point, error) {
	if bounds.IsEmpty() {
		return geom.Point{}, ErrDegenerateBounds
	}

	rel := pos.Sub(bounds.Min())
	if !m.Strict {
		return geom.Point{
			X: geom.Lerp(rel.X, geom.Range{0, bounds.Width}, geom.Range{0, logical.Width}),
			Y: geom.Lerp(rel.Y, geom.Range{0, bounds.Height}, geom.Range{0, logical.Height}),
		}, nil
	}

	x, err := geom.ScaleValue(rel.X, geom.Range{0, bounds.Width}, geom.Range{0, logical.Width})
	if err != nil {
		return geom.Point{}, fmt.Errorf("map x: %w", err)
	}
	y, err := geom.ScaleValue(rel.Y, geom.Range{0, bounds.Height}, geom.Range{0, logical.Height})
	if err != nil {
		return geom.Point{}, fmt.Errorf("map y: %w", err)
	}
	return geom.Point{X: x, Y: y}, nil
}

// ToScreen is the inverse of ToLogical for the same bounds.
func (m Mapper) ToScreen(p geom.Point, bounds geom.Rect, logical geom.Size) (geom.Point, error) {
	if logical.Width <= 0 || logical.Height <= 0 {
		return geom.Point{}, ErrDegenerateBounds
	}

	if !m.Strict {
		return geom.Point{
			X: geom.Lerp(p.X, geom.Range{0, logical.Width}, geom.Range{0, bounds.Width}) + bounds.X,
			Y: geom.Lerp(p.Y, geom.Range{0, logical.Height}, geom.Range{0, bounds.Height}) + bounds.Y,
		}, nil
	}

	x, err := geom.ScaleValue(p.X, geom.Range{0, logical.Width}, geom.Range{0, bounds.Width})
	if err != nil {
		return geom.Point{}, fmt.Errorf("map x: %w", err)
	}
	y, err := geom.ScaleValue(p.Y, geom.Range{0, logical.Height}, geom.Range{0, bounds.Height})
	if err != nil {
		return geom.Point{}, fmt.Errorf("map y: %w", err)
	}
	return geom.Point{X: x + bounds.X, Y: y + bounds.Y}, nil
}

// ToLogicalTransformed maps through the inverse of the view matrix instead
// of the on-screen bounding box. layout is the untransformed element box and
// view the matrix the element is rendered with. For an unrotated view this
// gives the same result as ToLogical on the rendered bounds; under rotation
// the bounding box no longer matches the surface, and only this stays exact.
func (m Mapper) ToLogicalTransformed(pos geom.Point, layout geom.Rect, view geom.Matrix2D, logical geom.Size) (geom.Point, error) {
	if view.Determinant() == 0 {
		return geom.Point{}, ErrDegenerateBounds
	}
	return m.ToLogical(view.Invert().Apply(pos), layout, logical)
}
