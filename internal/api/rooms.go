package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/harshala334/virtual-office/internal/service"
)

// RoomHandler handles HTTP requests for the room directory
type RoomHandler struct {
	store *service.RoomStore
}

// NewRoomHandler creates a new room handler over the given store
func NewRoomHandler(store *service.RoomStore) *RoomHandler {
	return &RoomHandler{
		store: store,
	}
}

// ServeHTTP handles HTTP requests for room management
func (h *RoomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Set common headers
	w.Header().Set("Content-Type", "application/json")

	// Extract room ID from path if present
	// Path format: /api/rooms/{roomID}
	pathParts := strings.Split(r.URL.Path, "/")
	var roomID string
	if len(pathParts) >= 4 && pathParts[3] != "" {
		roomID = pathParts[3]
	}

	switch {
	case r.Method == http.MethodGet && roomID == "":
		h.listRooms(w, r)
	case r.Method == http.MethodGet:
		h.getRoom(w, r, roomID)
	case r.Method == http.MethodPost && roomID == "":
		h.createRoom(w, r)
	default:
		http.NotFound(w, r)
	}
}

// listRooms handles GET /api/rooms
func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(h.store.Rooms())
}

// getRoom handles GET /api/rooms/{roomID}
func (h *RoomHandler) getRoom(w http.ResponseWriter, r *http.Request, roomID string) {
	room, err := h.store.FindByID(roomID)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(room)
}

// createRoom handles POST /api/rooms
func (h *RoomHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	var input service.CreateRoomInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Printf("Error decoding room request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	room, err := h.store.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(room)
}
