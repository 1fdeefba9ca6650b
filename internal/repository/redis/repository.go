// Package redis provides a Redis/Valkey implementation of the repository interface
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harshala334/virtual-office/internal/config"
	"github.com/harshala334/virtual-office/internal/models"
	"github.com/redis/go-redis/v9"
)

// snapshotKey is the storage key the browser reference uses for the room
// directory; the Redis backend keeps the same name under its key prefix.
const snapshotKey = "conferenceRooms"

// Repository implements the repository interface with Redis storage
type Repository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRepository creates a new Redis repository
func NewRepository(cfg config.RedisConfig) (*Repository, error) {
	var client *redis.Client

	// Use URI if provided, otherwise build connection from individual parameters
	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}

		if opt.DB == 0 {
			opt.DB = cfg.DB
		}
		if opt.Password == "" && cfg.Password != "" {
			opt.Password = cfg.Password
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

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Repository{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.SnapshotTTL,
	}, nil
}

// Close closes the Redis connection
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) key() string {
	return r.keyPrefix + snapshotKey
}

// LoadRooms reads the persisted room snapshot. A missing key yields an
// empty slice, not an error.
func (r *Repository) LoadRooms(ctx context.Context) ([]*models.Room, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*models.Room{}, nil
		}
		return nil, fmt.Errorf("failed to load room snapshot: %w", err)
	}

	var rooms []*models.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room snapshot: %w", err)
	}
	return rooms, nil
}

// SaveRooms replaces the persisted snapshot with the given rooms
func (r *Repository) SaveRooms(ctx context.Context, rooms []*models.Room) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal room snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save room snapshot: %w", err)
	}
	return nil
}
