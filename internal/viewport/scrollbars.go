package viewport

import (
	"math"

	"github.com/pyotruk/artboard/internal/geom"
)

// Scrollbar is one scrollbar in percent of its track.
type Scrollbar struct {
	// Position is where the artboard center sits, 0..100, 50 when centered.
	Position float64 `json:"position"`
	// Size is the thumb length.
	Size float64 `json:"size"`
	// Offset is the thumb start (top or left).
	Offset float64 `json:"offset"`
}

type Scrollbars struct {
	Hidden     bool      `json:"hidden"`
	Vertical   Scrollbar `json:"vertical"`
	Horizontal Scrollbar `json:"horizontal"`
}

// ComputeScrollbars derives the scrollbars from the scale, the pane box and
// the rendered artboard box. They are hidden while the artboard fits, at
// scale <= 1. Positions stay at 50 until both boxes are known.
func ComputeScrollbars(scale float64, pane, rendered geom.Rect) Scrollbars {
	size := jsRound(100 / scale)
	sb := Scrollbars{
		Hidden:     scale <= 1,
		Vertical:   Scrollbar{Position: 50, Size: size},
		Horizontal: Scrollbar{Position: 50, Size: size},
	}

	if !pane.IsEmpty() && !rendered.IsEmpty() {
		centerY := rendered.Y - pane.Y + rendered.Height/2
		dy := pane.Height/2 - centerY
		dyMax := rendered.Height / 2
		sb.Vertical.Position = 50 + sign(dy)*jsRound(math.Min(dyMax, math.Abs(dy))/dyMax*50)

		centerX := rendered.X - pane.X + rendered.Width/2
		dx := pane.Width/2 - centerX
		dxMax := rendered.Width / 2
		sb.Horizontal.Position = 50 + jsRound(clamp(dx, -dxMax, dxMax)/(2*dxMax)*100)
	}

	sb.Vertical.Offset = thumbOffset(sb.Vertical.Position, size)
	sb.Horizontal.Offset = thumbOffset(sb.Horizontal.Position, size)
	return sb
}

func thumbOffset(pos, size float64) float64 {
	return math.Min(98.5-size, math.Max(0, pos-size/2))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
