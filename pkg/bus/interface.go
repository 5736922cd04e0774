// Package bus provides event routing between the gateway and interaction handlers.
package bus

import (
	"context"
	"encoding/json"
	"time"
)

// Kind represents the type of event flowing through the bus.
type Kind string

const (
	KindCommand     Kind = "command_interaction"
	KindContextMenu Kind = "context_menu_interaction"
	KindButton      Kind = "button_interaction"
	KindError       Kind = "error"
)

// Event represents an event flowing through the bus.
//
// Interaction carries the live typed interaction and is only available
// to in-process subscribers. Payload carries the raw callback body and
// survives serialization, so redis subscribers can still inspect the
// full interaction data.
type Event struct {
	ID        string          `json:"id"`        // Unique event ID
	Kind      Kind            `json:"kind"`      // Event kind
	Timestamp time.Time       `json:"timestamp"` // Event timestamp
	Payload   json.RawMessage `json:"payload"`   // Raw callback body
	Error     string          `json:"error"`     // Error description for KindError

	Interaction interface{} `json:"-"`
}

// Handler is a function that processes events.
type Handler func(ctx context.Context, evt *Event) error

// Bus is the interface for event routing.
type Bus interface {
	// Start starts the event bus.
	Start() error

	// Stop stops the event bus.
	Stop() error

	// Subscribe registers a handler for a specific event kind.
	Subscribe(kind Kind, handler Handler)

	// Unsubscribe removes all handlers for an event kind.
	Unsubscribe(kind Kind)

	// Publish sends an event to subscribers.
	Publish(evt *Event) error

	// GetMetrics returns current bus metrics.
	GetMetrics() map[string]uint64
}
