package api

import (
	"net/http"

	"github.com/harshala334/virtual-office/internal/repository"
	"github.com/harshala334/virtual-office/internal/service"
)

// SetupRoutes configures the HTTP routes for the API
func SetupRoutes(repo repository.Repository, store *service.RoomStore, session *service.SessionController, meeting *service.MeetingState) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check endpoints for Kubernetes
	mux.HandleFunc("/health/live", HealthLiveHandler)
	mux.Handle("/health/ready", NewHealthReadyHandler(repo))

	// Room directory endpoints
	roomHandler := NewRoomHandler(store)
	mux.Handle("/api/rooms", roomHandler)
	mux.Handle("/api/rooms/", roomHandler)

	// Session lifecycle endpoints
	sessionHandler := NewSessionHandler(session)
	mux.Handle("/api/session", sessionHandler)
	mux.Handle("/api/session/", sessionHandler)

	// Meeting screen media controls
	meetingHandler := NewMeetingHandler(meeting, session)
	mux.Handle("/api/meeting", meetingHandler)
	mux.Handle("/api/meeting/", meetingHandler)

	// Invitation deep links
	mux.Handle("/join", NewInviteHandler(session))

	return mux
}
