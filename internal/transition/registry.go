package transition

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrMissingTransition is returned when a transition name is not registered.
var ErrMissingTransition = errors.New("transition: missing transition")

// DefaultName is the transition used when settings name none.
const DefaultName = "FadeIn"

// DefaultDuration is the transition length used when settings give none.
const DefaultDuration = time.Second

// Factory creates a transition running in dir for d.
type Factory func(dir Direction, d time.Duration) Transition

// Info describes a registered transition.
type Info struct {
	Name        string
	Description string
}

type entry struct {
	info    Info
	factory Factory
}

// Registry maps transition names to factories. Lookups ignore case.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Builtin returns a registry holding every transition shipped with the package.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(DefaultName, "uniform dithered fade", func(dir Direction, d time.Duration) Transition {
		return NewFade(dir, d)
	})
	r.Register("Wipe", "left-to-right sweep", func(dir Direction, d time.Duration) Transition {
		return NewWipe(dir, d)
	})
	r.Register("Dissolve", "scattered cell reveal", func(dir Direction, d time.Duration) Transition {
		return NewDissolve(dir, d)
	})
	r.Register("Cut", "instant switch at the end of the duration", func(dir Direction, d time.Duration) Transition {
		return NewCut(dir, d)
	})
	return r
}

// Register adds a factory under name.
// Panics if the name is already registered.
func (r *Registry) Register(name, description string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := r.entries[key]; exists {
		panic(fmt.Sprintf("transition: %q already registered", name))
	}
	r.entries[key] = entry{info: Info{Name: name, Description: description}, factory: f}
}

// List returns all registered transitions sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates the transition registered under name.
func (r *Registry) Create(name string, dir Direction, d time.Duration) (Transition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingTransition, name)
	}
	return e.factory(dir, d), nil
}

// Exists reports whether name is registered.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[strings.ToLower(name)]
	return ok
}
