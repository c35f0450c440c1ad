package settings

import (
	"fmt"
	"sync"
)

// DefaultProfileName is always registered and loaded at start.
const DefaultProfileName = "default"

// Registry manages named settings profiles and tracks which one is loaded.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]Settings
	current  string
}

// NewRegistry returns a registry with the default profile registered and
// loaded.
func NewRegistry() *Registry {
	return &Registry{
		profiles: map[string]Settings{DefaultProfileName: Default()},
		current:  DefaultProfileName,
	}
}

// Register stores a profile under name, replacing any previous registration.
func (r *Registry) Register(name string, s Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[name] = s
}

// RegisterOverrides registers a new profile that is a copy of the base
// profile with the given overrides applied. The base profile itself is
// never mutated.
func (r *Registry) RegisterOverrides(name, base string, o Overrides) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.profiles[base]
	if !ok {
		return fmt.Errorf("unknown base profile %q", base)
	}
	r.profiles[name] = o.applyTo(b)
	return nil
}

// Get returns the profile registered under name.
func (r *Registry) Get(name string) (Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.profiles[name]
	if !ok {
		return Settings{}, fmt.Errorf("unknown settings profile %q", name)
	}
	return s, nil
}

// Load makes the named profile current.
func (r *Registry) Load(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[name]; !ok {
		return fmt.Errorf("unknown settings profile %q", name)
	}
	r.current = name
	return nil
}

// Current returns the currently loaded profile.
func (r *Registry) Current() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[r.current]
}

// CurrentName returns the name of the currently loaded profile.
func (r *Registry) CurrentName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}
