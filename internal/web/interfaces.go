package web

import "github.com/harshala334/virtual-office/internal/models"

// RoomDirectory defines the contract for the room directory used by web handlers
type RoomDirectory interface {
	Rooms() []*models.Room
}
