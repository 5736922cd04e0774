// Package config provides configuration management for hookcord.
// It uses Viper for flexible configuration loading with support for:
// - Multiple formats (JSON, YAML, TOML)
// - Environment variables
// - Hot-reload
// - Default values
package config

import (
	"os"
	"sync"
)

// Config represents the complete hookcord configuration.
type Config struct {
	App     AppConfig     `mapstructure:"app" json:"app"`
	Gateway GatewayConfig `mapstructure:"gateway" json:"gateway"`
	Bus     BusConfig     `mapstructure:"bus" json:"bus"`
	State   StateConfig   `mapstructure:"state" json:"state"`
	Redis   RedisConfig   `mapstructure:"redis" json:"redis"`
	Log     LogConfig     `mapstructure:"log" json:"log"`
	mu      sync.RWMutex
}

// AppConfig holds the application credentials used for the
// client-credentials grant against the platform token endpoint.
type AppConfig struct {
	ClientID     string `mapstructure:"client_id" json:"client_id"`
	ClientSecret string `mapstructure:"client_secret" json:"client_secret"`
	Scope        string `mapstructure:"scope" json:"scope"`
	APIBase      string `mapstructure:"api_base" json:"api_base"`
}

// GatewayConfig for the inbound callback server.
type GatewayConfig struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`

	// PublicKey is the hex-encoded Ed25519 key used to verify
	// incoming callback signatures.
	PublicKey string `mapstructure:"public_key" json:"public_key"`

	// AckTimeout is the number of seconds an interaction handler has
	// to acknowledge before the request is failed.
	AckTimeout int `mapstructure:"ack_timeout" json:"ack_timeout"`
}

// BusConfig for the internal event bus.
type BusConfig struct {
	Type       string `mapstructure:"type" json:"type"` // "local" or "redis"
	BufferSize int    `mapstructure:"buffer_size" json:"buffer_size"`
}

// StateConfig for the key-value state store.
type StateConfig struct {
	Backend string `mapstructure:"backend" json:"backend"` // "file" or "redis"
	Dir     string `mapstructure:"dir" json:"dir"`
}

// RedisConfig is shared by the redis bus and the redis state backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" json:"addr"`
	Password string `mapstructure:"password" json:"password"`
	DB       int    `mapstructure:"db" json:"db"`
	Prefix   string `mapstructure:"prefix" json:"prefix"`
}

// LogConfig for logger setup.
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
	Path  string `mapstructure:"path" json:"path"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		App: AppConfig{
			Scope:   "applications.commands.update",
			APIBase: "https://discord.com/api",
		},
		Gateway: GatewayConfig{
			Host:       "0.0.0.0",
			Port:       18600,
			AckTimeout: 3,
		},
		Bus: BusConfig{
			Type:       "local",
			BufferSize: 100,
		},
		State: StateConfig{
			Backend: "file",
			Dir:     homeDir + "/.hookcord/state",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "hookcord:",
		},
		Log: LogConfig{
			Level: "info",
			Path:  homeDir + "/.hookcord/logs/hookcord.log",
		},
	}
}

// StateDir returns the expanded state directory path.
func (c *Config) StateDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return expandPath(c.State.Dir)
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
