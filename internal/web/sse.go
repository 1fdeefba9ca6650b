package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/harshala334/virtual-office/internal/models"
	"github.com/harshala334/virtual-office/internal/utils"
	"github.com/r3labs/sse/v2"
)

// roomStreamID is the stream clients subscribe to for directory updates
const roomStreamID = "rooms"

// SSEManager pushes room directory updates to connected browsers
type SSEManager struct {
	server    *sse.Server
	directory RoomDirectory
}

// NewSSEManager creates a new server-sent events manager
func NewSSEManager(directory RoomDirectory) *SSEManager {
	server := sse.New()
	// Every event carries the full directory, so replaying history is useless
	server.AutoReplay = false
	server.CreateStream(roomStreamID)

	return &SSEManager{
		server:    server,
		directory: directory,
	}
}

// ServeHTTP implements the http.Handler interface for SSE connections
func (sm *SSEManager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers to make SSE work in various environments
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

	// Handle CORS preflight
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Default to the rooms stream so plain EventSource URLs work
	if r.URL.Query().Get("stream") == "" {
		q := r.URL.Query()
		q.Set("stream", roomStreamID)
		r.URL.RawQuery = q.Encode()
	}

	sm.server.ServeHTTP(w, r)
}

// NotifyRoomUpdate publishes the current directory state to all clients.
// The room argument is the one that changed and is only used for logging.
func (sm *SSEManager) NotifyRoomUpdate(room *models.Room) {
	log.Printf("Publishing SSE update event for room %s", utils.SanitizeLogString(room.ID))

	rooms := sm.directory.Rooms()
	data, err := json.Marshal(rooms)
	if err != nil {
		log.Printf("Error encoding room directory for SSE: %v", err)
		return
	}

	sm.server.Publish(roomStreamID, &sse.Event{
		Event: []byte("update"),
		Data:  data,
	})
}

// Close shuts down the SSE server and disconnects all clients
func (sm *SSEManager) Close() {
	sm.server.Close()
}
