package service

import (
	"errors"
	"fmt"
)

var (
	// ErrRoomNotFound is returned when a lookup references an unknown room
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomFull is returned on join when capacity enforcement is enabled
	// and the room is at its participant bound
	ErrRoomFull = errors.New("room is at capacity")
)

// ValidationError names the room-creation field that is missing or invalid.
// It causes no state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
