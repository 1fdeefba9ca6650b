// Package media defines the device-acquisition capability used by the
// meeting screen. Real camera, microphone, and screen capture belong to the
// embedding front end; the state layer only sees stream handles and errors.
package media

import (
	"context"
	"fmt"
)

// Error reports a failed device acquisition. Acquisition failures are
// terminal for that attempt and are never retried automatically.
type Error struct {
	Device string // "camera" or "screen"
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("media: %s unavailable: %s", e.Device, e.Reason)
}

// Stream is a handle to an acquired media stream
type Stream interface {
	// EnableAudio toggles the audio tracks without releasing the stream
	EnableAudio(enabled bool)
	// EnableVideo toggles the video tracks without releasing the stream
	EnableVideo(enabled bool)
	// Stop releases the stream and its tracks
	Stop()
	// OnEnded registers a handler invoked when the stream is terminated
	// externally (for screen capture, the browser or OS ending the share)
	OnEnded(fn func())
}

// Provider acquires media streams. Acquisition is long-latency and
// fallible; callers run it off the state-mutation path and apply exactly
// one state update when it completes.
type Provider interface {
	AcquireCamera(ctx context.Context) (Stream, error)
	AcquireScreen(ctx context.Context) (Stream, error)
}
