package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/harshala334/virtual-office/internal/config"
	"github.com/harshala334/virtual-office/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisBus backs the presence channel with Redis PUBLISH/SUBSCRIBE, letting
// separate processes stand in for separate browser contexts. Payloads are
// the same JSON the storage-event channel would carry.
type RedisBus struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisBus connects a presence bus to Redis
func NewRedisBus(cfg config.RedisConfig) (*RedisBus, error) {
	var client *redis.Client

	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBus{client: client, keyPrefix: cfg.KeyPrefix}, nil
}

// Close closes the Redis connection
func (b *RedisBus) Close() error {
	return b.client.Close()
}

func (b *RedisBus) channel(topic string) string {
	return b.keyPrefix + topic
}

// Publish implements Bus
func (b *RedisBus) Publish(ctx context.Context, topic string, update models.PresenceUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal presence update: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel(topic), data).Err(); err != nil {
		return fmt.Errorf("failed to publish presence update: %w", err)
	}
	return nil
}

// Subscribe implements Bus. The handler runs on a dedicated goroutine in
// receipt order; malformed payloads are logged and dropped.
func (b *RedisBus) Subscribe(ctx context.Context, topic string, handler Handler) (func(), error) {
	pubsub := b.client.Subscribe(ctx, b.channel(topic))

	// Wait for the subscription to be confirmed so callers never miss
	// updates published right after Subscribe returns.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	go func() {
		for msg := range pubsub.Channel() {
			var update models.PresenceUpdate
			if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
				log.Printf("Dropping malformed presence update on %s: %v", topic, err)
				continue
			}
			handler(update)
		}
	}()

	unsubscribe := func() {
		if err := pubsub.Close(); err != nil {
			log.Printf("Error closing presence subscription for %s: %v", topic, err)
		}
	}
	return unsubscribe, nil
}
