package session

import (
	"encoding/json"

	"github.com/pyotruk/artboard/internal/engine"
	"github.com/pyotruk/artboard/internal/stroke"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	// Client → server
	TypeInputEvent = "input.event"
	TypeViewLayout = "view.layout"
	TypeViewZoom   = "view.zoom"

	// Server → client
	TypeWelcome      = "welcome"
	TypeViewState    = "view.state"
	TypeDrawCommands = "draw.commands"
	TypeInputResult  = "input.result"
	TypeError        = "error"
)

// ZoomPayload drives the zoom controls. Action is "in", "out" or "percent".
type ZoomPayload struct {
	Action  string  `json:"action"`
	Percent float64 `json:"percent,omitempty"`
}

type WelcomePayload struct {
	SessionID string          `json:"sessionId"`
	ClientID  string          `json:"clientId"`
	State     engine.Snapshot `json:"state"`
}

type DrawCommandsPayload struct {
	Commands []stroke.DrawCommand `json:"commands"`
}

type ErrorPayload struct {
	Seq     int64  `json:"seq,omitempty"`
	Message string `json:"message"`
}

func newMessage(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: typ, Payload: data}, nil
}
