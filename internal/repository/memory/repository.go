// Package memory provides an in-memory implementation of the repository interface
package memory

import (
	"context"
	"sync"

	"github.com/harshala334/virtual-office/internal/models"
)

// Repository implements the repository interface with in-memory storage.
// Snapshots are copied on the way in and out so callers never share slices
// with the stored state.
type Repository struct {
	rooms []*models.Room
	mu    sync.RWMutex
}

// NewRepository creates a new in-memory repository
func NewRepository() *Repository {
	return &Repository{}
}

// LoadRooms returns a copy of the stored room snapshot
func (r *Repository) LoadRooms(ctx context.Context) ([]*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room.Clone())
	}
	return rooms, nil
}

// SaveRooms replaces the stored snapshot
func (r *Repository) SaveRooms(ctx context.Context, rooms []*models.Room) error {
	copied := make([]*models.Room, 0, len(rooms))
	for _, room := range rooms {
		copied = append(copied, room.Clone())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = copied
	return nil
}
