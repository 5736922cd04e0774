// Package state provides persistent key-value storage with multiple backend support.
package state

import (
	"context"
)

// KV is the interface for key-value storage backends.
type KV interface {
	// Get retrieves a value from the store.
	Get(ctx context.Context, key string) (interface{}, bool, error)

	// GetString retrieves a string value.
	GetString(ctx context.Context, key string) (string, bool, error)

	// GetMap retrieves a map value.
	GetMap(ctx context.Context, key string) (map[string]interface{}, bool, error)

	// Set stores a value.
	Set(ctx context.Context, key string, value interface{}) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Keys returns all keys in the store.
	Keys(ctx context.Context) ([]string, error)

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)

	// Clear removes all data from the store.
	Clear(ctx context.Context) error

	// Close closes the store and performs cleanup.
	Close() error
}

// BackendType represents the storage backend type.
type BackendType string

const (
	BackendFile  BackendType = "file"
	BackendRedis BackendType = "redis"
)

// Config configures the state store.
type Config struct {
	Backend BackendType // Storage backend (file or redis)

	// File backend config
	FilePath string // Path to state file

	// Redis backend config
	RedisAddr     string // Redis address (host:port)
	RedisPassword string // Redis password
	RedisDB       int    // Redis database number
	RedisPrefix   string // Key prefix for namespacing
}
