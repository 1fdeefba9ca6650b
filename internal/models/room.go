package models

import "fmt"

// DefaultRoomID is the identifier of the reserved room that is always
// present in the directory and never written to storage.
const DefaultRoomID = "lobby"

// Room represents a conference room in the virtual office
type Room struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	Description  string   `json:"description,omitempty"`
	IsOccupied   bool     `json:"isOccupied"`
	MeetingID    string   `json:"meetingId"`
	Participants []string `json:"participants"`
}

// IsDefault returns true for the reserved always-present room
func (r *Room) IsDefault() bool {
	return r.ID == DefaultRoomID
}

// HasParticipant reports whether name is already in the room
func (r *Room) HasParticipant(name string) bool {
	for _, p := range r.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// AddParticipant appends name to the room's participant list and
// recomputes occupancy. Adding a name that is already present is a no-op.
func (r *Room) AddParticipant(name string) {
	if !r.HasParticipant(name) {
		r.Participants = append(r.Participants, name)
	}
	r.IsOccupied = len(r.Participants) > 0
}

// RemoveParticipant removes name from the room's participant list and
// recomputes occupancy. Returns true if the name was present.
func (r *Room) RemoveParticipant(name string) bool {
	for i, p := range r.Participants {
		if p == name {
			r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
			r.IsOccupied = len(r.Participants) > 0
			return true
		}
	}
	r.IsOccupied = len(r.Participants) > 0
	return false
}

// IsFull reports whether the room is at or over capacity
func (r *Room) IsFull() bool {
	return r.Capacity > 0 && len(r.Participants) >= r.Capacity
}

// Clone returns a deep copy so callers cannot mutate store state
func (r *Room) Clone() *Room {
	c := *r
	c.Participants = append([]string(nil), r.Participants...)
	return &c
}

// NewDefaultRoom builds the reserved room. It is synthesized on every
// load and must never appear in the persisted snapshot.
func NewDefaultRoom() *Room {
	return &Room{
		ID:           DefaultRoomID,
		Name:         "Main Lobby",
		Capacity:     50,
		Description:  "Always-open public room",
		MeetingID:    fmt.Sprintf("meet-%s", DefaultRoomID),
		Participants: []string{},
	}
}

// SeedRooms returns the curated directory used when storage is empty
func SeedRooms() []*Room {
	return []*Room{
		{
			ID:           "1",
			Name:         "Main Conference Room",
			Capacity:     20,
			Description:  "Main meeting space for company-wide meetings",
			MeetingID:    "meet-123",
			Participants: []string{},
		},
		{
			ID:           "2",
			Name:         "Team Huddle Room",
			Capacity:     8,
			Description:  "Perfect for small team discussions",
			MeetingID:    "meet-456",
			Participants: []string{},
		},
	}
}
