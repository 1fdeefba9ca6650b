package presence

import (
	"context"
	"log"
	"time"

	"github.com/harshala334/virtual-office/internal/models"
	"github.com/harshala334/virtual-office/internal/utils"
)

// simulatorSender identifies fabricated announcements on the channel
const simulatorSender = "peer-simulator"

// Simulator fabricates remote participants in place of real signaling.
// Shortly after a meeting starts it announces a small roster on the room's
// channel, taking the exact path a real second context would.
type Simulator struct {
	bus   Bus
	delay time.Duration
	names []string
}

// NewSimulator creates a simulator publishing on bus after delay
func NewSimulator(bus Bus, delay time.Duration) *Simulator {
	return &Simulator{
		bus:   bus,
		delay: delay,
		names: []string{"Pratima", "Pratima@gmail.com"},
	}
}

// Start schedules a fabricated announcement for roomID. Cancelling ctx
// before the delay elapses suppresses it.
func (s *Simulator) Start(ctx context.Context, roomID string) {
	go func() {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		roster := make([]models.Participant, 0, len(s.names))
		for _, name := range s.names {
			roster = append(roster, models.NewRemoteParticipant(name))
		}

		update := models.PresenceUpdate{
			Timestamp:    time.Now().UnixMilli(),
			Sender:       simulatorSender,
			RoomID:       roomID,
			Action:       models.ActionJoin,
			Participants: roster,
		}
		if err := s.bus.Publish(ctx, models.SyncTopic(roomID), update); err != nil {
			log.Printf("Error publishing simulated presence for room %s: %v", utils.SanitizeLogString(roomID), err)
		}
	}()
}
