package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/harshala334/virtual-office/internal/config"
	"github.com/harshala334/virtual-office/internal/models"
	"github.com/harshala334/virtual-office/internal/repository"
)

// RoomUpdateCallback is a function type for room update callbacks
type RoomUpdateCallback func(*models.Room)

// CreateRoomInput carries the user-supplied fields for a new room
type CreateRoomInput struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description,omitempty"`
}

// RoomStore is the single source of truth for the room directory. It keeps
// the authoritative list in memory, persists a snapshot through the
// repository after every mutation, and reconciles the reserved default room
// which always exists regardless of storage contents.
type RoomStore struct {
	repo   repository.Repository
	policy config.PolicyConfig

	mu              sync.RWMutex
	rooms           []*models.Room
	updateCallbacks []RoomUpdateCallback

	// now is swapped in tests to pin generated identifiers
	now func() time.Time
}

// NewRoomStore creates a room store over the given repository
func NewRoomStore(repo repository.Repository, policy config.PolicyConfig) *RoomStore {
	return &RoomStore{
		repo:   repo,
		policy: policy,
		now:    time.Now,
	}
}

// RegisterUpdateCallback registers a callback invoked whenever a room changes
func (s *RoomStore) RegisterUpdateCallback(callback RoomUpdateCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCallbacks = append(s.updateCallbacks, callback)
}

func (s *RoomStore) notifyUpdate(room *models.Room) {
	s.mu.RLock()
	callbacks := append([]RoomUpdateCallback(nil), s.updateCallbacks...)
	s.mu.RUnlock()

	for _, callback := range callbacks {
		callback(room.Clone())
	}
}

// Load reads the persisted snapshot into memory. An empty snapshot gets
// the curated seed set when the policy asks for it, and the reserved
// default room is prepended on every load; it is never read from storage.
func (s *RoomStore) Load(ctx context.Context) error {
	persisted, err := s.repo.LoadRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}

	// A stale snapshot could contain the default room; drop it rather than
	// ending up with two.
	rooms := make([]*models.Room, 0, len(persisted)+1)
	for _, r := range persisted {
		if !r.IsDefault() {
			rooms = append(rooms, r)
		}
	}

	if len(rooms) == 0 && s.policy.SeedRooms {
		rooms = models.SeedRooms()
	}

	s.mu.Lock()
	s.rooms = append([]*models.Room{models.NewDefaultRoom()}, rooms...)
	s.mu.Unlock()
	return nil
}

// save persists every room except the reserved default one. Callers must
// hold the write lock.
func (s *RoomStore) save(ctx context.Context) error {
	snapshot := make([]*models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		if !r.IsDefault() {
			snapshot = append(snapshot, r)
		}
	}
	if err := s.repo.SaveRooms(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save rooms: %w", err)
	}
	return nil
}

// Rooms returns a copy of the current room list, default room first
func (s *RoomStore) Rooms() []*models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r.Clone())
	}
	return rooms
}

// FindByID returns a copy of the room with the given id
func (s *RoomStore) FindByID(id string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return nil, ErrRoomNotFound
}

// Create validates the input, assigns fresh identifiers, appends the room
// and persists the updated set before returning.
func (s *RoomStore) Create(ctx context.Context, input CreateRoomInput) (*models.Room, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if input.Capacity <= 0 {
		return nil, &ValidationError{Field: "capacity", Reason: "must be a positive integer"}
	}

	stamp := s.now().UnixMilli()
	room := &models.Room{
		ID:           fmt.Sprintf("room-%d", stamp),
		Name:         strings.TrimSpace(input.Name),
		Capacity:     input.Capacity,
		Description:  input.Description,
		MeetingID:    fmt.Sprintf("meet-%d", stamp),
		Participants: []string{},
	}

	s.mu.Lock()
	s.rooms = append(s.rooms, room)
	if err := s.save(ctx); err != nil {
		s.rooms = s.rooms[:len(s.rooms)-1]
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.notifyUpdate(room)
	return room.Clone(), nil
}

// Insert adds an externally constructed room, used when a valid join code
// references a room this context has never seen.
func (s *RoomStore) Insert(ctx context.Context, room *models.Room) error {
	s.mu.Lock()
	for _, r := range s.rooms {
		if r.ID == room.ID {
			s.mu.Unlock()
			return nil
		}
	}
	s.rooms = append(s.rooms, room.Clone())
	if err := s.save(ctx); err != nil {
		s.rooms = s.rooms[:len(s.rooms)-1]
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notifyUpdate(room)
	return nil
}

// Mutate applies fn to the identified room under the store lock, persists
// the updated set and notifies listeners. It is the single serialized
// entry point for join/leave mutations.
func (s *RoomStore) Mutate(ctx context.Context, id string, fn func(*models.Room)) (*models.Room, error) {
	s.mu.Lock()
	var target *models.Room
	for _, r := range s.rooms {
		if r.ID == id {
			target = r
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return nil, ErrRoomNotFound
	}

	backup := target.Clone()
	fn(target)
	if err := s.save(ctx); err != nil {
		*target = *backup
		s.mu.Unlock()
		return nil, err
	}
	result := target.Clone()
	s.mu.Unlock()

	s.notifyUpdate(result)
	return result, nil
}
