package handlers

import (
	"fmt"
	"strings"
	"sync"
)

// Registry manages handler registration and lookup. Commands and
// context menus are keyed by command name, buttons by custom ID.
type Registry struct {
	commands     map[string]CommandHandler
	contextMenus map[string]ContextMenuHandler
	buttons      map[string]ButtonHandler
	mu           sync.RWMutex
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:     make(map[string]CommandHandler),
		contextMenus: make(map[string]ContextMenuHandler),
		buttons:      make(map[string]ButtonHandler),
	}
}

// RegisterCommand registers a handler for a slash command name.
func (r *Registry) RegisterCommand(name string, handler CommandHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	name = normalizeName(name)
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	r.commands[name] = handler
	return nil
}

// RegisterContextMenu registers a handler for a context menu command name.
func (r *Registry) RegisterContextMenu(name string, handler ContextMenuHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	name = normalizeName(name)
	if name == "" {
		return fmt.Errorf("context menu name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.contextMenus[name]; exists {
		return fmt.Errorf("context menu %s already registered", name)
	}

	r.contextMenus[name] = handler
	return nil
}

// RegisterButton registers a handler for a button custom ID.
func (r *Registry) RegisterButton(customID string, handler ButtonHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	if customID == "" {
		return fmt.Errorf("button custom ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.buttons[customID]; exists {
		return fmt.Errorf("button %s already registered", customID)
	}

	r.buttons[customID] = handler
	return nil
}

// GetCommand retrieves a command handler by name.
func (r *Registry) GetCommand(name string) (CommandHandler, bool) {
	name = normalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	h, exists := r.commands[name]
	return h, exists
}

// GetContextMenu retrieves a context menu handler by name.
func (r *Registry) GetContextMenu(name string) (ContextMenuHandler, bool) {
	name = normalizeName(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	h, exists := r.contextMenus[name]
	return h, exists
}

// GetButton retrieves a button handler by custom ID.
func (r *Registry) GetButton(customID string) (ButtonHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, exists := r.buttons[customID]
	return h, exists
}

// CommandNames returns the registered command names.
func (r *Registry) CommandNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
}
