package stroke

import (
	"encoding/json"

	"github.com/pyotruk/artboard/internal/geom"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and replays them on the Canvas2D
// context of the drawing canvas, in logical coordinates.
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "path"
	ObjectID    string        `json:"objectId,omitempty"`    // Stroke the segment belongs to
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	LineCap     string        `json:"lineCap,omitempty"`     // "round" or "butt"
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y].
type PathCommand []interface{}

// CommandBuffer is a Surface that records committed segments as draw
// commands instead of pixels. Each Stroke emits one "path" command covering
// the segments since the previous Stroke, so the frontend draws exactly the
// increment. The buffer is drained once per frame.
type CommandBuffer struct {
	id      string
	style   Style
	open    bool
	path    []PathCommand
	pen     geom.Point
	pending []DrawCommand
}

func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

func (b *CommandBuffer) BeginPath(id string, p geom.Point, style Style) {
	b.id = id
	b.style = style
	b.open = true
	b.pen = p
	b.path = []PathCommand{{"M", p.X, p.Y}}
}

func (b *CommandBuffer) LineTo(p geom.Point) {
	if !b.open {
		return
	}
	b.path = append(b.path, PathCommand{"L", p.X, p.Y})
	b.pen = p
}

func (b *CommandBuffer) Stroke() {
	if !b.open || len(b.path) < 2 {
		return
	}
	b.pending = append(b.pending, DrawCommand{
		Op:          "path",
		ObjectID:    b.id,
		Path:        b.path,
		Stroke:      b.style.CSSColor,
		StrokeWidth: b.style.Width,
		LineCap:     string(b.style.Cap),
	})
	b.path = []PathCommand{{"M", b.pen.X, b.pen.Y}}
}

func (b *CommandBuffer) ClosePath() {
	b.open = false
	b.path = nil
}

// Drain returns and forgets the commands recorded since the last Drain.
func (b *CommandBuffer) Drain() []DrawCommand {
	out := b.pending
	b.pending = nil
	return out
}

// Len is the number of commands waiting to be drained.
func (b *CommandBuffer) Len() int {
	return len(b.pending)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
