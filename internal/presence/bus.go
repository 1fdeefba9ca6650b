// Package presence propagates participant state between browser contexts.
// In a browser this rides on cross-tab storage events; here the channel is
// an explicit pub/sub abstraction so it can be backed by any transport.
package presence

import (
	"context"

	"github.com/harshala334/virtual-office/internal/models"
)

// Handler receives presence updates published to a subscribed topic
type Handler func(models.PresenceUpdate)

// Bus is a publish/subscribe channel keyed by room topic
// (meeting-sync-<roomID>).
type Bus interface {
	// Publish delivers an update to all subscribers of the topic
	Publish(ctx context.Context, topic string, update models.PresenceUpdate) error

	// Subscribe registers a handler for a topic and returns a function
	// that cancels the subscription
	Subscribe(ctx context.Context, topic string, handler Handler) (func(), error)
}
