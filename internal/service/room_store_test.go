package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/harshala334/virtual-office/internal/config"
	"github.com/harshala334/virtual-office/internal/models"
	"github.com/harshala334/virtual-office/internal/repository/memory"
	"github.com/harshala334/virtual-office/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, policy config.PolicyConfig) (*service.RoomStore, *memory.Repository) {
	repo := memory.NewRepository()
	store := service.NewRoomStore(repo, policy)
	require.NoError(t, store.Load(context.Background()))
	return store, repo
}

func TestLoadSeedsWhenEmpty(t *testing.T) {
	store, _ := newStore(t, config.PolicyConfig{SeedRooms: true})

	rooms := store.Rooms()
	require.Len(t, rooms, 3)
	assert.Equal(t, models.DefaultRoomID, rooms[0].ID, "default room comes first")
	assert.Equal(t, "Main Conference Room", rooms[1].Name)
	assert.Equal(t, "Team Huddle Room", rooms[2].Name)
}

func TestLoadWithoutSeeds(t *testing.T) {
	store, _ := newStore(t, config.PolicyConfig{SeedRooms: false})

	rooms := store.Rooms()
	require.Len(t, rooms, 1)
	assert.True(t, rooms[0].IsDefault())
}

func TestDefaultRoomNeverPersisted(t *testing.T) {
	ctx := context.Background()
	store, repo := newStore(t, config.PolicyConfig{SeedRooms: true})

	_, err := store.Create(ctx, service.CreateRoomInput{Name: "Lobby", Capacity: 2})
	require.NoError(t, err)

	persisted, err := repo.LoadRooms(ctx)
	require.NoError(t, err)
	for _, r := range persisted {
		assert.False(t, r.IsDefault(), "reserved room must not reach storage")
	}

	// A second load re-synthesizes the default room exactly once
	require.NoError(t, store.Load(ctx))
	defaults := 0
	for _, r := range store.Rooms() {
		if r.IsDefault() {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestLoadDropsStaleDefaultRoom(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	// A buggy previous writer persisted the default room
	require.NoError(t, repo.SaveRooms(ctx, []*models.Room{
		models.NewDefaultRoom(),
		{ID: "room-1", Name: "Kept", Capacity: 5, Participants: []string{}},
	}))

	store := service.NewRoomStore(repo, config.PolicyConfig{})
	require.NoError(t, store.Load(ctx))

	rooms := store.Rooms()
	require.Len(t, rooms, 2)
	assert.True(t, rooms[0].IsDefault())
	assert.Equal(t, "Kept", rooms[1].Name)
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()
	store, repo := newStore(t, config.PolicyConfig{})

	room, err := store.Create(ctx, service.CreateRoomInput{
		Name:        "Lobby",
		Capacity:    2,
		Description: "small room",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, room.ID)
	assert.Contains(t, room.ID, "room-")
	assert.Equal(t, "Lobby", room.Name)
	assert.Equal(t, 2, room.Capacity)
	assert.Empty(t, room.Participants)
	assert.False(t, room.IsOccupied)
	assert.NotEmpty(t, room.MeetingID)

	// Mutation persisted before returning
	persisted, err := repo.LoadRooms(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, room.ID, persisted[0].ID)
}

func TestCreateRoomValidation(t *testing.T) {
	ctx := context.Background()
	store, repo := newStore(t, config.PolicyConfig{})

	cases := []struct {
		name  string
		input service.CreateRoomInput
		field string
	}{
		{"MissingName", service.CreateRoomInput{Capacity: 5}, "name"},
		{"BlankName", service.CreateRoomInput{Name: "   ", Capacity: 5}, "name"},
		{"ZeroCapacity", service.CreateRoomInput{Name: "Lobby"}, "capacity"},
		{"NegativeCapacity", service.CreateRoomInput{Name: "Lobby", Capacity: -1}, "capacity"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Create(ctx, tc.input)
			require.Error(t, err)

			var verr *service.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	// Failed validations persist nothing
	persisted, err := repo.LoadRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
}

func TestFindByID(t *testing.T) {
	store, _ := newStore(t, config.PolicyConfig{SeedRooms: true})

	room, err := store.FindByID("1")
	require.NoError(t, err)
	assert.Equal(t, "Main Conference Room", room.Name)

	_, err = store.FindByID("nope")
	assert.ErrorIs(t, err, service.ErrRoomNotFound)
}

func TestMutatePersistsAndNotifies(t *testing.T) {
	ctx := context.Background()
	store, repo := newStore(t, config.PolicyConfig{SeedRooms: true})

	var updated []*models.Room
	store.RegisterUpdateCallback(func(r *models.Room) {
		updated = append(updated, r)
	})

	room, err := store.Mutate(ctx, "1", func(r *models.Room) {
		r.AddParticipant("You")
	})
	require.NoError(t, err)
	assert.True(t, room.IsOccupied)

	require.Len(t, updated, 1)
	assert.Equal(t, "1", updated[0].ID)

	persisted, err := repo.LoadRooms(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	assert.Equal(t, []string{"You"}, persisted[0].Participants)

	_, err = store.Mutate(ctx, "nope", func(r *models.Room) {})
	assert.ErrorIs(t, err, service.ErrRoomNotFound)
}

func TestInsertIsIdempotentPerID(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, config.PolicyConfig{})

	room := &models.Room{ID: "room-x", Name: "X", Capacity: 4, Participants: []string{}}
	require.NoError(t, store.Insert(ctx, room))
	require.NoError(t, store.Insert(ctx, room))

	count := 0
	for _, r := range store.Rooms() {
		if r.ID == "room-x" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

// flakyRepo fails SaveRooms on demand
type flakyRepo struct {
	*memory.Repository
	failSaves bool
}

func (r *flakyRepo) SaveRooms(ctx context.Context, rooms []*models.Room) error {
	if r.failSaves {
		return errors.New("quota exceeded")
	}
	return r.Repository.SaveRooms(ctx, rooms)
}

func TestMutateRollsBackOnSaveFailure(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepo{Repository: memory.NewRepository()}
	store := service.NewRoomStore(repo, config.PolicyConfig{})
	require.NoError(t, store.Load(ctx))

	room, err := store.Create(ctx, service.CreateRoomInput{Name: "Lobby", Capacity: 2})
	require.NoError(t, err)

	var updated []*models.Room
	store.RegisterUpdateCallback(func(r *models.Room) {
		updated = append(updated, r)
	})

	repo.failSaves = true
	_, err = store.Mutate(ctx, room.ID, func(r *models.Room) {
		r.AddParticipant("You")
	})
	require.Error(t, err)
	assert.Empty(t, updated, "no update callback for a failed mutation")

	// In-memory state still matches the last persisted snapshot
	current, err := store.FindByID(room.ID)
	require.NoError(t, err)
	assert.Empty(t, current.Participants)
	assert.False(t, current.IsOccupied)

	// The mutation goes through once the backend recovers
	repo.failSaves = false
	mutated, err := store.Mutate(ctx, room.ID, func(r *models.Room) {
		r.AddParticipant("You")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"You"}, mutated.Participants)
}
