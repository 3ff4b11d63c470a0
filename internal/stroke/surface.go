package stroke

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/pyotruk/artboard/internal/geom"
)

var ErrBadColor = errors.New("unrecognized color")

// Surface is the persistent drawing target. The call sequence mirrors a
// Canvas2D context: BeginPath, then LineTo/Stroke pairs, then ClosePath.
// Stroke commits every segment added since the previous Stroke.
type Surface interface {
	BeginPath(id string, p geom.Point, style Style)
	LineTo(p geom.Point)
	Stroke()
	ClosePath()
}

type LineCap string

const (
	CapButt  LineCap = "butt"
	CapRound LineCap = "round"
)

// Style is fixed per recorder.
type Style struct {
	Color    color.RGBA
	CSSColor string
	Width    float64
	Cap      LineCap
}

func DefaultStyle() Style {
	return Style{
		Color:    colornames.Lightblue,
		CSSColor: "lightblue",
		Width:    10,
		Cap:      CapRound,
	}
}

// NewStyle builds a round-capped style from a CSS color name or #rrggbb.
// A non-positive width takes the default one.
func NewStyle(css string, width float64) (Style, error) {
	if width <= 0 {
		width = DefaultStyle().Width
	}
	c, err := ParseColor(css)
	if err != nil {
		return Style{}, err
	}
	return Style{Color: c, CSSColor: css, Width: width, Cap: CapRound}, nil
}

// ParseColor accepts CSS color keywords and #rgb / #rrggbb hex.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Tee fans every call out to several surfaces.
func Tee(surfaces ...Surface) Surface {
	return tee(surfaces)
}

type tee []Surface

func (t tee) BeginPath(id string, p geom.Point, style Style) {
	for _, s := range t {
		s.BeginPath(id, p, style)
	}
}

func (t tee) LineTo(p geom.Point) {
	for _, s := range t {
		s.LineTo(p)
	}
}

func (t tee) Stroke() {
	for _, s := range t {
		s.Stroke()
	}
}

func (t tee) ClosePath() {
	for _, s := range t {
		s.ClosePath()
	}
}
