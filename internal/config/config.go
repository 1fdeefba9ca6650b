// Package config provides configuration management for the application
package config

import (
	"os"
	"strconv"
	"time"
)

// RedisConfig holds Redis/Valkey configuration for the room snapshot store
// and the presence channel
type RedisConfig struct {
	Enabled bool
	// URI is prioritized if provided, otherwise individual connection parameters are used
	URI       string
	Host      string
	Port      string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
	// TTL for the persisted room snapshot (0 means no expiration)
	SnapshotTTL time.Duration
}

// PolicyConfig holds the explicit policy knobs the state layer exposes
// instead of hard-coding reference behavior
type PolicyConfig struct {
	// EnforceCapacity rejects joins into full rooms when set. The reference
	// behavior is to allow them, so the default is off.
	EnforceCapacity bool
	// SeedRooms installs the curated directory when storage is empty
	SeedRooms bool
	// SimulatePeers announces fabricated remote participants shortly after
	// a meeting starts, standing in for real signaling
	SimulatePeers bool
	// PeerDelay is how long the simulator waits before announcing
	PeerDelay time.Duration
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// GetRedisConfig loads Redis/Valkey configuration from environment variables
func GetRedisConfig() RedisConfig {
	ttlHours, _ := strconv.Atoi(getEnv("REDIS_SNAPSHOT_TTL_HOURS", "0"))
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:     getEnvBool("REDIS_ENABLED", false),
		URI:         getEnv("REDIS_URI", ""),
		Host:        getEnv("REDIS_HOST", "localhost"),
		Port:        getEnv("REDIS_PORT", "6379"),
		Username:    getEnv("REDIS_USERNAME", ""),
		Password:    getEnv("REDIS_PASSWORD", ""),
		DB:          db,
		KeyPrefix:   getEnv("REDIS_KEY_PREFIX", "vo:"),
		SnapshotTTL: time.Duration(ttlHours) * time.Hour,
	}
}

// GetPolicyConfig loads policy flags from environment variables
func GetPolicyConfig() PolicyConfig {
	delaySeconds, _ := strconv.Atoi(getEnv("PEER_SIMULATION_DELAY_SECONDS", "3"))

	return PolicyConfig{
		EnforceCapacity: getEnvBool("ENFORCE_CAPACITY", false),
		SeedRooms:       getEnvBool("SEED_ROOMS", true),
		SimulatePeers:   getEnvBool("SIMULATE_PEERS", true),
		PeerDelay:       time.Duration(delaySeconds) * time.Second,
	}
}

// GetServerConfig loads HTTP server settings from environment variables
func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnv("PORT", "8080"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool retrieves a boolean environment variable
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
