package models

import "fmt"

// Presence update actions
const (
	ActionJoin  = "join"
	ActionLeave = "leave"
	ActionMedia = "media"
)

// PresenceUpdate is the message exchanged between browser contexts on the
// presence channel. It mirrors the payload written under the
// meeting-sync-<roomID> storage key.
type PresenceUpdate struct {
	Timestamp    int64         `json:"timestamp"`
	Sender       string        `json:"sender"`
	RoomID       string        `json:"roomId"`
	Action       string        `json:"action,omitempty"`
	Participants []Participant `json:"participants"`
}

// SyncTopic returns the presence channel topic for a room
func SyncTopic(roomID string) string {
	return fmt.Sprintf("meeting-sync-%s", roomID)
}
