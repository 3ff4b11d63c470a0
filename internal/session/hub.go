// Package session hosts remote artboard views: each session owns one engine,
// clients stream raw input to it over a websocket and receive the view state
// and draw commands it produces.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pyotruk/artboard/internal/config"
	"github.com/pyotruk/artboard/internal/engine"
	"github.com/pyotruk/artboard/internal/input"
	"github.com/pyotruk/artboard/internal/typeid"
	"github.com/pyotruk/artboard/internal/viewport"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownMessage  = errors.New("unknown message type")
)

// Session is one engine and the clients watching it.
type Session struct {
	ID        string
	ExpiresAt time.Time

	mu          sync.Mutex
	engine      *engine.Engine
	lastVersion uint64

	clients map[string]*Client // clientID -> client, owned by the hub loop
}

// Snapshot returns the current view state.
func (s *Session) Snapshot() engine.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

type Hub struct {
	cfg    config.Engine
	tick   time.Duration
	logger *slog.Logger

	mu         sync.RWMutex
	sessions   map[string]*Session // sessionID -> session
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(cfg config.Engine, tick time.Duration, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		cfg:        cfg,
		tick:       tick,
		logger:     logger,
		sessions:   make(map[string]*Session),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Create starts a new session with a fresh engine.
func (h *Hub) Create(expiresAt time.Time) (*Session, error) {
	eng, err := engine.New(h.cfg, h.logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	s := &Session{
		ID:        typeid.NewSessionID(),
		ExpiresAt: expiresAt,
		engine:    eng,
		clients:   make(map[string]*Client),
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	h.logger.Info("session created", "session", s.ID)
	return s, nil
}

func (h *Hub) Get(sessionID string) (*Session, error) {
	if err := typeid.Validate(sessionID, typeid.PrefixSession); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionNotFound, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return s, nil
}

// Run owns client registration and the frame tick until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case now := <-ticker.C:
			h.tickAll(now)
		case <-ctx.Done():
			return
		}
	}
}

// Register hands a connected client to the hub loop. It reports false when
// the hub is no longer running.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	s := client.session
	s.clients[client.ClientID] = client

	welcome, err := newMessage(TypeWelcome, WelcomePayload{
		SessionID: s.ID,
		ClientID:  client.ClientID,
		State:     s.Snapshot(),
	})
	if err == nil {
		client.Send(welcome)
	}

	h.logger.Info("client joined", "client", client.ClientID, "session", s.ID)
}

func (h *Hub) removeClient(client *Client) {
	s := client.session
	if _, ok := s.clients[client.ClientID]; !ok {
		return
	}
	delete(s.clients, client.ClientID)
	close(client.send)

	h.logger.Info("client left", "client", client.ClientID, "session", s.ID)
}

// tickAll flushes every engine, pushes new draw commands and, when the view
// changed, the new state. Expired sessions with nobody connected are
// dropped.
func (h *Hub) tickAll(now time.Time) {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for id, s := range h.sessions {
		if len(s.clients) == 0 && now.After(s.ExpiresAt) {
			delete(h.sessions, id)
			h.logger.Info("session expired", "session", id)
			continue
		}
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		if len(s.clients) == 0 {
			continue
		}

		s.mu.Lock()
		snap := s.engine.Tick()
		commands := s.engine.DrawCommands()
		changed := snap.Version != s.lastVersion
		s.lastVersion = snap.Version
		s.mu.Unlock()

		if len(commands) > 0 {
			if msg, err := newMessage(TypeDrawCommands, DrawCommandsPayload{Commands: commands}); err == nil {
				h.broadcast(s, msg)
			}
		}
		if changed {
			if msg, err := newMessage(TypeViewState, snap); err == nil {
				h.broadcast(s, msg)
			}
		}
	}
}

func (h *Hub) broadcast(s *Session, msg *Message) {
	msg.SessionID = s.ID
	for _, c := range s.clients {
		c.Send(msg)
	}
}

// handleMessage runs on the sender's read goroutine.
func (h *Hub) handleMessage(sender *Client, msg *Message) {
	var err error
	switch msg.Type {
	case TypeInputEvent:
		err = h.handleInput(sender, msg)
	case TypeViewLayout:
		err = h.handleLayout(sender, msg)
	case TypeViewZoom:
		err = h.handleZoom(sender, msg)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownMessage, msg.Type)
	}

	if err != nil {
		h.logger.Warn("message rejected", "error", err, "type", msg.Type, "client", sender.ClientID)
		if out, mErr := newMessage(TypeError, ErrorPayload{Seq: msg.Seq, Message: err.Error()}); mErr == nil {
			sender.Send(out)
		}
	}
}

func (h *Hub) handleInput(sender *Client, msg *Message) error {
	ev, err := input.Decode(msg.Payload)
	if err != nil {
		return err
	}

	s := sender.session
	s.mu.Lock()
	res, err := s.engine.HandleEvent(ev)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if msg.Seq != 0 {
		if out, mErr := newMessage(TypeInputResult, res); mErr == nil {
			out.Seq = msg.Seq
			sender.Send(out)
		}
	}
	return nil
}

func (h *Hub) handleLayout(sender *Client, msg *Message) error {
	var layout viewport.Layout
	if err := json.Unmarshal(msg.Payload, &layout); err != nil {
		return fmt.Errorf("decode layout: %w", err)
	}

	s := sender.session
	s.mu.Lock()
	s.engine.SetLayout(layout)
	s.mu.Unlock()
	return nil
}

func (h *Hub) handleZoom(sender *Client, msg *Message) error {
	var zoom ZoomPayload
	if err := json.Unmarshal(msg.Payload, &zoom); err != nil {
		return fmt.Errorf("decode zoom: %w", err)
	}

	s := sender.session
	s.mu.Lock()
	defer s.mu.Unlock()
	switch zoom.Action {
	case "in":
		s.engine.ZoomIn()
	case "out":
		s.engine.ZoomOut()
	case "percent":
		s.engine.SetZoomPercent(zoom.Percent)
	default:
		return fmt.Errorf("unknown zoom action %q", zoom.Action)
	}
	return nil
}
