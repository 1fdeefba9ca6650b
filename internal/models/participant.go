package models

import "github.com/google/uuid"

// LocalParticipantName is the display name the local user appears under
// in a room's participant list. At most one participant per room may
// carry it from the perspective of a single browser context.
const LocalParticipantName = "You"

// Participant is the richer identity used on the meeting screen. Remote
// contexts announce themselves with their own stable ID, which is what
// de-duplication keys on; the display name is not an identity.
type Participant struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IsVideoOn      bool   `json:"isVideoOn"`
	IsAudioOn      bool   `json:"isAudioOn"`
	HasScreenShare bool   `json:"hasScreenShare"`
}

// NewLocalParticipant creates the local user's participant with a fresh
// session-stable ID. Video and audio start enabled; acquisition failures
// degrade them later.
func NewLocalParticipant() Participant {
	return Participant{
		ID:        uuid.NewString(),
		Name:      LocalParticipantName,
		IsVideoOn: true,
		IsAudioOn: true,
	}
}

// NewRemoteParticipant creates a participant announced by another context
func NewRemoteParticipant(name string) Participant {
	return Participant{
		ID:        uuid.NewString(),
		Name:      name,
		IsVideoOn: true,
		IsAudioOn: true,
	}
}
