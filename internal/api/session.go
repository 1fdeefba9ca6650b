package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/harshala334/virtual-office/internal/deeplink"
	"github.com/harshala334/virtual-office/internal/meetingcode"
	"github.com/harshala334/virtual-office/internal/service"
)

// SessionHandler exposes the single active-room session over HTTP
type SessionHandler struct {
	session *service.SessionController
}

// NewSessionHandler creates a session handler over the controller
func NewSessionHandler(session *service.SessionController) *SessionHandler {
	return &SessionHandler{
		session: session,
	}
}

// sessionState is the JSON view of the session
type sessionState struct {
	ActiveRoomID string `json:"activeRoomId,omitempty"`
	MeetingCode  string `json:"meetingCode,omitempty"`
	InviteLink   string `json:"inviteLink,omitempty"`
}

// joinRequest carries the body of POST /api/session/join
type joinRequest struct {
	RoomID string `json:"roomId"`
}

// codeRequest carries the body of POST /api/session/code
type codeRequest struct {
	Code string `json:"code"`
}

// ServeHTTP routes session requests
// Path format: /api/session or /api/session/{action}
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	pathParts := strings.Split(r.URL.Path, "/")
	var action string
	if len(pathParts) >= 4 {
		action = pathParts[3]
	}

	switch {
	case r.Method == http.MethodGet && action == "":
		h.getSession(w, r)
	case r.Method == http.MethodPost && action == "join":
		h.join(w, r)
	case r.Method == http.MethodPost && action == "code":
		h.joinByCode(w, r)
	case r.Method == http.MethodPost && action == "leave":
		h.leave(w, r)
	default:
		http.NotFound(w, r)
	}
}

// getSession handles GET /api/session
func (h *SessionHandler) getSession(w http.ResponseWriter, r *http.Request) {
	state := sessionState{ActiveRoomID: h.session.ActiveRoomID()}
	if state.ActiveRoomID != "" {
		state.MeetingCode = meetingcode.Generate(state.ActiveRoomID)
		state.InviteLink = deeplink.Build(requestOrigin(r), state.ActiveRoomID, state.MeetingCode)
	}
	json.NewEncoder(w).Encode(state)
}

// requestOrigin reconstructs the scheme and host the client used
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// join handles POST /api/session/join
func (h *SessionHandler) join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding join request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	room, err := h.session.Join(r.Context(), req.RoomID)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(room)
}

// joinByCode handles POST /api/session/code
func (h *SessionHandler) joinByCode(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding code request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	room, err := h.session.JoinByCode(r.Context(), req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(room)
}

// leave handles POST /api/session/leave
func (h *SessionHandler) leave(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Leave(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(sessionState{})
}
