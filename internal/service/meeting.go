package service

import (
	"context"
	"sync"

	"github.com/harshala334/virtual-office/internal/media"
	"github.com/harshala334/virtual-office/internal/models"
	"github.com/harshala334/virtual-office/internal/notify"
)

// MeetingState tracks the local participant's media flags and the merged
// remote roster for the meeting screen. Device acquisition runs off the
// mutation path: each attempt posts exactly one state update when it
// completes and is never retried automatically.
type MeetingState struct {
	provider media.Provider
	notifier notify.Notifier

	mu                sync.Mutex
	local             models.Participant
	remotes           []models.Participant
	camera            media.Stream
	screen            media.Stream
	cameraUnavailable bool
	onChange          func()
}

// NewMeetingState creates meeting state over the given media provider
func NewMeetingState(provider media.Provider, notifier notify.Notifier) *MeetingState {
	return &MeetingState{
		provider: provider,
		notifier: notifier,
		local:    models.NewLocalParticipant(),
	}
}

// OnChange registers a callback fired after every state update
func (m *MeetingState) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

func (m *MeetingState) changed() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Reset prepares a fresh meeting: streams released, remote roster cleared,
// local flags back to their defaults. Returns the local participant.
func (m *MeetingState) Reset() models.Participant {
	m.mu.Lock()
	if m.camera != nil {
		m.camera.Stop()
		m.camera = nil
	}
	if m.screen != nil {
		m.screen.Stop()
		m.screen = nil
	}
	m.remotes = nil
	m.cameraUnavailable = false
	m.local.IsVideoOn = true
	m.local.IsAudioOn = true
	m.local.HasScreenShare = false
	local := m.local
	m.mu.Unlock()

	return local
}

// Local returns the local participant's current state
func (m *MeetingState) Local() models.Participant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.local
}

// CameraUnavailable reports whether the last camera acquisition failed
func (m *MeetingState) CameraUnavailable() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cameraUnavailable
}

// Roster returns the local participant followed by the merged remotes
func (m *MeetingState) Roster() []models.Participant {
	m.mu.Lock()
	defer m.mu.Unlock()

	roster := make([]models.Participant, 0, len(m.remotes)+1)
	roster = append(roster, m.local)
	roster = append(roster, m.remotes...)
	return roster
}

// MergeRemote appends remotely announced participants. The synchronizer
// has already de-duplicated them by ID.
func (m *MeetingState) MergeRemote(added []models.Participant) {
	if len(added) == 0 {
		return
	}

	m.mu.Lock()
	m.remotes = append(m.remotes, added...)
	m.mu.Unlock()

	m.notifier.Notify(notify.KindSuccess, "New participants have joined the meeting")
	m.changed()
}

// StartCamera acquires camera and microphone in its own goroutine. The
// returned channel closes once the single resulting state update has been
// applied: either a live stream, or audio/video degraded to off with the
// unavailable flag set.
func (m *MeetingState) StartCamera(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		stream, err := m.provider.AcquireCamera(ctx)

		m.mu.Lock()
		if err != nil {
			m.cameraUnavailable = true
			m.local.IsVideoOn = false
			m.local.IsAudioOn = false
			m.mu.Unlock()

			m.notifier.Notify(notify.KindError, "Could not access camera or microphone")
			m.changed()
			return
		}

		if m.camera != nil {
			m.camera.Stop()
		}
		m.camera = stream
		m.cameraUnavailable = false
		m.local.IsVideoOn = true
		m.local.IsAudioOn = true
		m.mu.Unlock()

		m.notifier.Notify(notify.KindSuccess, "Connected to camera and microphone")
		m.changed()
	}()

	return done
}

// ToggleAudio flips the local mute state and applies it to the camera
// stream's audio tracks when one is live
func (m *MeetingState) ToggleAudio() bool {
	m.mu.Lock()
	m.local.IsAudioOn = !m.local.IsAudioOn
	if m.camera != nil {
		m.camera.EnableAudio(m.local.IsAudioOn)
	}
	on := m.local.IsAudioOn
	m.mu.Unlock()

	m.changed()
	return on
}

// ToggleVideo flips the local video state and applies it to the camera
// stream's video tracks when one is live
func (m *MeetingState) ToggleVideo() bool {
	m.mu.Lock()
	m.local.IsVideoOn = !m.local.IsVideoOn
	if m.camera != nil {
		m.camera.EnableVideo(m.local.IsVideoOn)
	}
	on := m.local.IsVideoOn
	m.mu.Unlock()

	m.changed()
	return on
}

// ToggleScreenShare starts or stops screen sharing. Starting runs the
// acquisition asynchronously like StartCamera; an acquisition failure
// leaves the flag off. Both the explicit stop here and the stream ending
// externally converge on stopScreenShare.
func (m *MeetingState) ToggleScreenShare(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	m.mu.Lock()
	if m.screen != nil {
		m.mu.Unlock()
		m.stopScreenShare(true)
		close(done)
		return done
	}
	m.mu.Unlock()

	go func() {
		defer close(done)

		stream, err := m.provider.AcquireScreen(ctx)
		if err != nil {
			m.notifier.Notify(notify.KindError, "Could not share screen")
			m.changed()
			return
		}

		stream.OnEnded(func() {
			m.stopScreenShare(false)
		})

		m.mu.Lock()
		m.screen = stream
		m.local.HasScreenShare = true
		m.mu.Unlock()

		m.notifier.Notify(notify.KindSuccess, "Screen sharing started")
		m.changed()
	}()

	return done
}

// stopScreenShare is the single convergence point for ending a share,
// whether by user action or by the stream terminating externally
func (m *MeetingState) stopScreenShare(explicit bool) {
	m.mu.Lock()
	stream := m.screen
	if stream == nil {
		m.mu.Unlock()
		return
	}
	m.screen = nil
	m.local.HasScreenShare = false
	m.mu.Unlock()

	stream.Stop()

	if explicit {
		m.notifier.Notify(notify.KindSuccess, "Screen sharing ended")
	} else {
		m.notifier.Notify(notify.KindInfo, "Screen sharing ended")
	}
	m.changed()
}
