package presence

import (
	"context"
	"sync"
	"time"

	"github.com/harshala334/virtual-office/internal/models"
)

// MergeFunc receives remote participants that were not previously known.
// It is only invoked when the set difference is non-empty.
type MergeFunc func(added []models.Participant)

// Synchronizer propagates local participant state to other contexts and
// merges remotely announced participants without duplication. One
// synchronizer tracks at most one room at a time.
type Synchronizer struct {
	bus      Bus
	senderID string

	mu          sync.Mutex
	roomID      string
	known       map[string]struct{}
	unsubscribe func()
	onMerge     MergeFunc
}

// NewSynchronizer creates a synchronizer identified by senderID on the
// presence channel. Updates carrying that sender are dropped as echoes.
func NewSynchronizer(bus Bus, senderID string) *Synchronizer {
	return &Synchronizer{
		bus:      bus,
		senderID: senderID,
		known:    make(map[string]struct{}),
	}
}

// OnMerge registers the callback invoked when remote participants are
// merged into local state
func (s *Synchronizer) OnMerge(fn MergeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMerge = fn
}

// Track subscribes to the given room's channel. Any previous subscription
// is cancelled first. The participants already present locally seed the
// de-duplication set.
func (s *Synchronizer) Track(ctx context.Context, roomID string, existing []models.Participant) error {
	s.mu.Lock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.roomID = roomID
	s.known = make(map[string]struct{}, len(existing))
	for _, p := range existing {
		s.known[p.ID] = struct{}{}
	}
	s.mu.Unlock()

	unsubscribe, err := s.bus.Subscribe(ctx, models.SyncTopic(roomID), s.handle)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
	return nil
}

// Stop cancels the current subscription, if any
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.roomID = ""
	s.known = make(map[string]struct{})
}

// Announce publishes the local participant snapshot for the tracked room
func (s *Synchronizer) Announce(ctx context.Context, action string, participants []models.Participant) error {
	s.mu.Lock()
	roomID := s.roomID
	for _, p := range participants {
		s.known[p.ID] = struct{}{}
	}
	s.mu.Unlock()

	if roomID == "" {
		return nil
	}

	update := models.PresenceUpdate{
		Timestamp:    time.Now().UnixMilli(),
		Sender:       s.senderID,
		RoomID:       roomID,
		Action:       action,
		Participants: participants,
	}
	return s.bus.Publish(ctx, models.SyncTopic(roomID), update)
}

// handle applies an inbound update in receipt order. Echoes from this
// context and updates for other rooms are ignored; the merge is keyed on
// participant ID, so redelivering the same snapshot is a no-op.
func (s *Synchronizer) handle(update models.PresenceUpdate) {
	s.mu.Lock()
	if update.Sender == s.senderID || update.RoomID != s.roomID {
		s.mu.Unlock()
		return
	}

	var added []models.Participant
	for _, p := range update.Participants {
		if _, ok := s.known[p.ID]; ok {
			continue
		}
		s.known[p.ID] = struct{}{}
		added = append(added, p)
	}
	onMerge := s.onMerge
	s.mu.Unlock()

	if len(added) > 0 && onMerge != nil {
		onMerge(added)
	}
}
