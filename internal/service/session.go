package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/harshala334/virtual-office/internal/config"
	"github.com/harshala334/virtual-office/internal/meetingcode"
	"github.com/harshala334/virtual-office/internal/models"
	"github.com/harshala334/virtual-office/internal/notify"
	"github.com/harshala334/virtual-office/internal/presence"
	"github.com/harshala334/virtual-office/internal/utils"
)

// SynthesizedCapacity is the capacity assigned to rooms created implicitly
// by joining with a code that references an unknown room
const SynthesizedCapacity = 10

// SessionController tracks the single active room for this context and
// mediates all join/leave transitions. There are exactly two states: Idle
// (no active room) and Active(roomID); joining while Active leaves the
// previous room first.
type SessionController struct {
	store     *RoomStore
	meeting   *MeetingState
	presence  *presence.Synchronizer
	notifier  notify.Notifier
	policy    config.PolicyConfig
	simulator *presence.Simulator

	mu           sync.Mutex
	activeRoomID string
	cancelSim    context.CancelFunc
}

// NewSessionController wires a session controller over its collaborators.
// simulator may be nil when fabricated peers are disabled.
func NewSessionController(store *RoomStore, meeting *MeetingState, syncer *presence.Synchronizer, notifier notify.Notifier, policy config.PolicyConfig, simulator *presence.Simulator) *SessionController {
	c := &SessionController{
		store:     store,
		meeting:   meeting,
		presence:  syncer,
		notifier:  notifier,
		policy:    policy,
		simulator: simulator,
	}
	syncer.OnMerge(meeting.MergeRemote)
	return c
}

// ActiveRoomID returns the active room identifier, or "" when idle
func (c *SessionController) ActiveRoomID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeRoomID
}

// Join adds the local user to the room and makes it the active room.
// Joining the active room again is idempotent; joining a different room
// leaves the current one first. With capacity enforcement on, a full room
// rejects with ErrRoomFull and nothing changes.
func (c *SessionController) Join(ctx context.Context, roomID string) (*models.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.joinLocked(ctx, roomID)
}

func (c *SessionController) joinLocked(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := c.store.FindByID(roomID)
	if err != nil {
		return nil, err
	}

	if c.policy.EnforceCapacity && room.IsFull() && !room.HasParticipant(models.LocalParticipantName) {
		return nil, ErrRoomFull
	}

	if c.activeRoomID != "" && c.activeRoomID != roomID {
		if err := c.leaveLocked(ctx); err != nil {
			return nil, err
		}
	}

	room, err = c.store.Mutate(ctx, roomID, func(r *models.Room) {
		r.AddParticipant(models.LocalParticipantName)
	})
	if err != nil {
		return nil, err
	}

	rejoining := c.activeRoomID == roomID
	c.activeRoomID = roomID

	if !rejoining {
		local := c.meeting.Reset()
		if err := c.presence.Track(ctx, roomID, []models.Participant{local}); err != nil {
			log.Printf("Error tracking presence for room %s: %v", utils.SanitizeLogString(roomID), err)
		}
		if err := c.presence.Announce(ctx, models.ActionJoin, c.meeting.Roster()); err != nil {
			log.Printf("Error announcing join for room %s: %v", utils.SanitizeLogString(roomID), err)
		}

		if c.simulator != nil {
			simCtx, cancel := context.WithCancel(context.Background())
			c.cancelSim = cancel
			c.simulator.Start(simCtx, roomID)
		}
	}

	return room, nil
}

// JoinByCode verifies a join code and joins the room it references. A valid
// code for a room this context has never seen synthesizes a placeholder
// room before joining.
func (c *SessionController) JoinByCode(ctx context.Context, code string) (*models.Room, error) {
	roomID, err := meetingcode.Verify(strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.store.FindByID(roomID); err != nil {
		synthesized := &models.Room{
			ID:           roomID,
			Name:         fmt.Sprintf("Meeting %s", roomID),
			Capacity:     SynthesizedCapacity,
			Description:  "Joined via meeting code",
			MeetingID:    fmt.Sprintf("meet-%s", roomID),
			Participants: []string{},
		}
		if err := c.store.Insert(ctx, synthesized); err != nil {
			return nil, err
		}
	}

	return c.joinLocked(ctx, roomID)
}

// Leave removes the local user from the active room and returns to Idle.
// Leaving while idle is a no-op, so double-leave is safe.
func (c *SessionController) Leave(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leaveLocked(ctx)
}

func (c *SessionController) leaveLocked(ctx context.Context) error {
	if c.activeRoomID == "" {
		return nil
	}
	roomID := c.activeRoomID

	if _, err := c.store.Mutate(ctx, roomID, func(r *models.Room) {
		r.RemoveParticipant(models.LocalParticipantName)
	}); err != nil {
		return err
	}

	if err := c.presence.Announce(ctx, models.ActionLeave, nil); err != nil {
		log.Printf("Error announcing leave for room %s: %v", utils.SanitizeLogString(roomID), err)
	}
	c.presence.Stop()

	if c.cancelSim != nil {
		c.cancelSim()
		c.cancelSim = nil
	}

	c.meeting.Reset()
	c.activeRoomID = ""
	return nil
}

// AnnouncePresence publishes the current roster on the presence channel.
// Called after local media-state changes so other contexts converge.
func (c *SessionController) AnnouncePresence(ctx context.Context) {
	c.mu.Lock()
	active := c.activeRoomID != ""
	c.mu.Unlock()
	if !active {
		return
	}

	if err := c.presence.Announce(ctx, models.ActionMedia, c.meeting.Roster()); err != nil {
		log.Printf("Error announcing presence: %v", err)
	}
}

// ResolveDeepLink handles the roomId/code pair from an invitation link,
// invoked once at startup. Failures are reported through the Notifier and
// cause no state change.
func (c *SessionController) ResolveDeepLink(ctx context.Context, roomID, code string) (*models.Room, error) {
	if !strings.HasPrefix(code, meetingcode.Prefix+"-") {
		c.notifier.Notify(notify.KindError, "Invalid meeting code")
		return nil, meetingcode.ErrInvalidFormat
	}

	room, err := c.store.FindByID(roomID)
	if err != nil {
		c.notifier.Notify(notify.KindError, "Invalid meeting room. The room may have been deleted.")
		return nil, err
	}

	joined, err := c.Join(ctx, roomID)
	if err != nil {
		c.notifier.Notify(notify.KindError, "Could not join meeting room")
		return nil, err
	}

	c.notifier.Notify(notify.KindSuccess, fmt.Sprintf("Joining meeting room: %s", room.Name))
	return joined, nil
}
