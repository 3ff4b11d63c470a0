package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	hub     *Hub
	tokens  *Tokens
	origins []string
}

// NewHandler creates the HTTP side of the session service. origins are the
// allowed browser origins, full URLs or bare hosts.
func NewHandler(hub *Hub, tokens *Tokens, origins []string) *Handler {
	return &Handler{hub: hub, tokens: tokens, origins: originPatterns(origins)}
}

type createResponse struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Create opens a session and returns its id with an access token.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.hub.Create(h.tokens.Expiry())
	if err != nil {
		h.hub.logger.Error("create session failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	token, exp, err := h.tokens.Issue(s.ID)
	if err != nil {
		h.hub.logger.Error("issue token failed", "error", err, "session", s.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{ID: s.ID, Token: token, ExpiresAt: exp})
}

// State returns the current view state of a session.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorize(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// Connect upgrades to a websocket bound to the session in the path.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	s, ok := h.authorize(w, r)
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.hub.logger.Error("websocket accept", "error", err)
		return
	}

	client := NewClient(h.hub, s, conn, uuid.New().String())
	if !h.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// authorize checks the token against the session id in the path. The token
// comes from the query string, since browsers cannot set headers on a
// websocket handshake, or from a bearer header.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sessionID := mux.Vars(r)["sessionId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
			token = auth[7:]
		}
	}
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return nil, false
	}

	subject, err := h.tokens.Validate(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return nil, false
	}
	if subject != sessionID {
		http.Error(w, "token not valid for this session", http.StatusForbidden)
		return nil, false
	}

	s, err := h.hub.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
		} else {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return s, true
}

// originPatterns turns configured origins into the host patterns
// websocket.Accept matches against.
func originPatterns(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			out = append(out, u.Host)
			continue
		}
		out = append(out, o)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
