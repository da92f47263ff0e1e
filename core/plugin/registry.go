package plugin

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when no plugin is registered for a key.
var ErrUnknownKey = errors.New("unknown configuration key")

// Registry holds plugins keyed by their configuration key, preserving
// registration order.
type Registry struct {
	order   []string
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin. Keys must be unique.
func (r *Registry) Register(p Plugin) error {
	key := p.Key()
	if key == "" {
		return fmt.Errorf("plugin for %s has an empty key", p.File())
	}
	if _, exists := r.plugins[key]; exists {
		return fmt.Errorf("plugin key %q already registered", key)
	}
	r.plugins[key] = p
	r.order = append(r.order, key)
	return nil
}

// Get returns the plugin registered for key.
func (r *Registry) Get(key string) (Plugin, error) {
	p, ok := r.plugins[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return p, nil
}

// All returns every plugin in registration order.
func (r *Registry) All() []Plugin {
	out := make([]Plugin, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.plugins[key])
	}
	return out
}

// Select returns the plugins for the given keys, or all plugins when no
// keys are given.
func (r *Registry) Select(keys ...string) ([]Plugin, error) {
	if len(keys) == 0 {
		return r.All(), nil
	}
	out := make([]Plugin, 0, len(keys))
	for _, key := range keys {
		p, err := r.Get(key)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.order)
}
