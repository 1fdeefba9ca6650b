// Package repository defines interfaces for data storage
package repository

import (
	"context"

	"github.com/harshala334/virtual-office/internal/models"
)

// Repository is the persistence seam behind the room store. The room
// collection is persisted as a single snapshot, mirroring the browser's
// conferenceRooms storage key: the store loads the full list on startup
// and writes the full list after every mutation.
type Repository interface {
	// LoadRooms reads the persisted room snapshot. A missing snapshot is
	// not an error; it returns an empty slice.
	LoadRooms(ctx context.Context) ([]*models.Room, error)

	// SaveRooms replaces the persisted snapshot with the given rooms.
	SaveRooms(ctx context.Context, rooms []*models.Room) error
}
