package config

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// Validate validates the entire configuration.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = make(ValidationErrors, 0)

	v.validateApp(&cfg.App)
	v.validateGateway(&cfg.Gateway)
	v.validateBus(&cfg.Bus, &cfg.Redis)
	v.validateState(&cfg.State, &cfg.Redis)

	if len(v.errors) > 0 {
		return v.errors
	}

	return nil
}

// validateApp validates application credentials. Credentials are
// optional, but must be supplied as a pair.
func (v *Validator) validateApp(cfg *AppConfig) {
	hasID := strings.TrimSpace(cfg.ClientID) != ""
	hasSecret := strings.TrimSpace(cfg.ClientSecret) != ""
	if hasID != hasSecret {
		v.addError("app.client_id", "client_id and client_secret must be set together")
	}

	if cfg.APIBase != "" && !strings.HasPrefix(cfg.APIBase, "http://") && !strings.HasPrefix(cfg.APIBase, "https://") {
		v.addError("app.api_base", "api_base must be an http(s) URL")
	}
}

// validateGateway validates gateway server configuration.
func (v *Validator) validateGateway(cfg *GatewayConfig) {
	if cfg.Port < 1 || cfg.Port > 65535 {
		v.addError("gateway.port", "port must be between 1 and 65535")
	}

	key := strings.TrimSpace(cfg.PublicKey)
	if key == "" {
		v.addError("gateway.public_key", "public_key is required")
	} else {
		raw, err := hex.DecodeString(key)
		if err != nil {
			v.addError("gateway.public_key", "public_key must be hex-encoded")
		} else if len(raw) != 32 {
			v.addError("gateway.public_key", "public_key must decode to 32 bytes")
		}
	}

	if cfg.AckTimeout < 1 {
		v.addError("gateway.ack_timeout", "ack_timeout must be at least 1 second")
	}
}

// validateBus validates bus configuration.
func (v *Validator) validateBus(cfg *BusConfig, redis *RedisConfig) {
	switch cfg.Type {
	case "", "local":
		if cfg.BufferSize < 0 {
			v.addError("bus.buffer_size", "buffer_size must be non-negative")
		}
	case "redis":
		if strings.TrimSpace(redis.Addr) == "" {
			v.addError("redis.addr", "addr is required for redis bus")
		}
	default:
		v.addError("bus.type", "type must be one of: local, redis")
	}
}

// validateState validates state store configuration.
func (v *Validator) validateState(cfg *StateConfig, redis *RedisConfig) {
	switch cfg.Backend {
	case "", "file":
		if strings.TrimSpace(cfg.Dir) == "" {
			v.addError("state.dir", "dir is required for file backend")
		}
	case "redis":
		if strings.TrimSpace(redis.Addr) == "" {
			v.addError("redis.addr", "addr is required for redis state backend")
		}
	default:
		v.addError("state.backend", "backend must be one of: file, redis")
	}
}

// addError adds a validation error.
func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidateConfig is a convenience function to validate a config.
func ValidateConfig(cfg *Config) error {
	return NewValidator().Validate(cfg)
}
