package stroke

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/pyotruk/artboard/internal/geom"
)

// arcSteps is the number of chords used for each half circle of a round cap.
const arcSteps = 16

// Raster is an in-memory RGBA surface. Each committed segment is filled as a
// capsule (a rectangle with half discs on both ends) using vector.Rasterizer,
// which is what a round-capped, round-joined Canvas2D stroke of one segment
// covers. Consecutive capsules overlap at the joints, which gives round joins.
type Raster struct {
	img *image.RGBA
	z   vector.Rasterizer

	style   Style
	open    bool
	pen     geom.Point
	pending [][2]geom.Point
}

// NewRaster allocates a transparent surface of the logical size.
func NewRaster(width, height int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) BeginPath(_ string, p geom.Point, style Style) {
	r.style = style
	r.open = true
	r.pen = p
	r.pending = r.pending[:0]
}

func (r *Raster) LineTo(p geom.Point) {
	if !r.open {
		return
	}
	r.pending = append(r.pending, [2]geom.Point{r.pen, p})
	r.pen = p
}

func (r *Raster) Stroke() {
	if len(r.pending) == 0 {
		return
	}

	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	radius := r.style.Width / 2
	for _, seg := range r.pending {
		r.capsule(seg[0], seg[1], radius)
	}
	r.z.Draw(r.img, b, image.NewUniform(r.style.Color), image.Point{})
	r.pending = r.pending[:0]
}

func (r *Raster) ClosePath() {
	r.open = false
	r.pending = r.pending[:0]
}

// Clear wipes the surface back to transparent.
func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) capsule(a, b geom.Point, radius float64) {
	if radius <= 0 {
		return
	}

	// Heading of the segment; a zero-length segment is a dot.
	heading := 0.0
	if a != b {
		heading = math.Atan2(b.Y-a.Y, b.X-a.X)
	}
	n := geom.Pt(-math.Sin(heading), math.Cos(heading)).Mul(radius)

	start := a.Add(n)
	r.z.MoveTo(float32(start.X), float32(start.Y))
	end := b.Add(n)
	r.z.LineTo(float32(end.X), float32(end.Y))
	r.arc(b, radius, heading+math.Pi/2, heading-math.Pi/2)
	back := a.Sub(n)
	r.z.LineTo(float32(back.X), float32(back.Y))
	r.arc(a, radius, heading+3*math.Pi/2, heading+math.Pi/2)
	r.z.ClosePath()
}

// arc walks from angle `from` to `to` around c; the first point is assumed to
// be the current pen position.
func (r *Raster) arc(c geom.Point, radius, from, to float64) {
	for i := 1; i <= arcSteps; i++ {
		t := from + (to-from)*float64(i)/arcSteps
		r.z.LineTo(float32(c.X+radius*math.Cos(t)), float32(c.Y+radius*math.Sin(t)))
	}
}
