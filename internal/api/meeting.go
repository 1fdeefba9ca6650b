package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/harshala334/virtual-office/internal/models"
	"github.com/harshala334/virtual-office/internal/service"
)

// MeetingHandler exposes the meeting screen's media state over HTTP
type MeetingHandler struct {
	meeting *service.MeetingState
	session *service.SessionController
}

// NewMeetingHandler creates a meeting handler
func NewMeetingHandler(meeting *service.MeetingState, session *service.SessionController) *MeetingHandler {
	return &MeetingHandler{
		meeting: meeting,
		session: session,
	}
}

// meetingView is the JSON view of the meeting screen state
type meetingView struct {
	Local             models.Participant   `json:"local"`
	Roster            []models.Participant `json:"roster"`
	CameraUnavailable bool                 `json:"cameraUnavailable"`
}

// ServeHTTP routes meeting requests
// Path format: /api/meeting or /api/meeting/{control}
func (h *MeetingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	pathParts := strings.Split(r.URL.Path, "/")
	var control string
	if len(pathParts) >= 4 {
		control = pathParts[3]
	}

	switch {
	case r.Method == http.MethodGet && control == "":
		h.getMeeting(w, r)
	case r.Method == http.MethodPost && control == "camera":
		// Acquisition outlives the request: the 202 response cancels
		// r.Context() long before a real device answers, so the detached
		// goroutine must not inherit it. The SSE stream carries the result.
		h.meeting.StartCamera(context.WithoutCancel(r.Context()))
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status": "acquiring"})
	case r.Method == http.MethodPost && control == "audio":
		h.meeting.ToggleAudio()
		h.announceAndRender(w, r)
	case r.Method == http.MethodPost && control == "video":
		h.meeting.ToggleVideo()
		h.announceAndRender(w, r)
	case r.Method == http.MethodPost && control == "screen":
		<-h.meeting.ToggleScreenShare(r.Context())
		h.announceAndRender(w, r)
	default:
		http.NotFound(w, r)
	}
}

// getMeeting handles GET /api/meeting
func (h *MeetingHandler) getMeeting(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(meetingView{
		Local:             h.meeting.Local(),
		Roster:            h.meeting.Roster(),
		CameraUnavailable: h.meeting.CameraUnavailable(),
	})
}

// announceAndRender propagates the media change to other contexts and
// returns the updated view
func (h *MeetingHandler) announceAndRender(w http.ResponseWriter, r *http.Request) {
	h.session.AnnouncePresence(r.Context())
	h.getMeeting(w, r)
}
