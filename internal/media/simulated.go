package media

import (
	"context"
	"sync"
)

// SimulatedProvider stands in for browser devices. Streams are plain state
// holders; failures are injected per device for testing degraded paths.
type SimulatedProvider struct {
	mu         sync.Mutex
	failCamera bool
	failScreen bool
	lastCamera *SimulatedStream
	lastScreen *SimulatedStream
}

// NewSimulatedProvider creates a provider whose acquisitions succeed
func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

// FailCamera makes subsequent camera acquisitions fail
func (p *SimulatedProvider) FailCamera(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failCamera = fail
}

// FailScreen makes subsequent screen acquisitions fail
func (p *SimulatedProvider) FailScreen(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failScreen = fail
}

// AcquireCamera implements Provider
func (p *SimulatedProvider) AcquireCamera(ctx context.Context) (Stream, error) {
	p.mu.Lock()
	fail := p.failCamera
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fail {
		return nil, &Error{Device: "camera", Reason: "permission denied"}
	}

	stream := newSimulatedStream()
	p.mu.Lock()
	p.lastCamera = stream
	p.mu.Unlock()
	return stream, nil
}

// AcquireScreen implements Provider
func (p *SimulatedProvider) AcquireScreen(ctx context.Context) (Stream, error) {
	p.mu.Lock()
	fail := p.failScreen
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fail {
		return nil, &Error{Device: "screen", Reason: "capture cancelled"}
	}

	stream := newSimulatedStream()
	p.mu.Lock()
	p.lastScreen = stream
	p.mu.Unlock()
	return stream, nil
}

// LastCameraStream returns the most recently acquired camera stream
func (p *SimulatedProvider) LastCameraStream() *SimulatedStream {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastCamera
}

// LastScreenStream returns the most recently acquired screen stream
func (p *SimulatedProvider) LastScreenStream() *SimulatedStream {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastScreen
}

// SimulatedStream tracks enabled state and supports external termination
type SimulatedStream struct {
	mu         sync.Mutex
	audioOn    bool
	videoOn    bool
	stopped    bool
	endedHooks []func()
}

func newSimulatedStream() *SimulatedStream {
	return &SimulatedStream{audioOn: true, videoOn: true}
}

// EnableAudio implements Stream
func (s *SimulatedStream) EnableAudio(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audioOn = enabled
}

// EnableVideo implements Stream
func (s *SimulatedStream) EnableVideo(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoOn = enabled
}

// AudioEnabled reports the current audio track state
func (s *SimulatedStream) AudioEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audioOn
}

// VideoEnabled reports the current video track state
func (s *SimulatedStream) VideoEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoOn
}

// Stop implements Stream
func (s *SimulatedStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// Stopped reports whether the stream has been released
func (s *SimulatedStream) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// OnEnded implements Stream
func (s *SimulatedStream) OnEnded(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endedHooks = append(s.endedHooks, fn)
}

// EndExternally simulates the browser or OS terminating the stream, as
// happens when the user stops a screen share from system UI
func (s *SimulatedStream) EndExternally() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	hooks := append([]func(){}, s.endedHooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
