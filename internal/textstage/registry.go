// Package textstage provides the named string stages the onion CLI composes
// from its configuration.
package textstage

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kbukum/onion/errors"
	"github.com/kbukum/onion/pipeline"
)

// Stage is a pipeline stage over text.
type Stage = pipeline.Stage[string, string]

// Factory builds a stage from the argument following the colon in a spec.
// arg is empty when the spec has no colon.
type Factory func(arg string) (Stage, error)

// Registry maps stage names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a Registry holding the built-in stages.
func Default() *Registry {
	r := NewRegistry()
	registerBuiltins(r)
	return r
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Create parses a "name[:arg]" spec and builds the stage.
func (r *Registry) Create(spec string) (Stage, error) {
	name, arg, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)

	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.InvalidInput("stage", fmt.Sprintf("unknown stage %q", name)).
			WithDetail("known", r.List())
	}

	s, err := f(arg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Build creates one stage per spec, in order. It stops at the first spec that
// fails and reports its position.
func (r *Registry) Build(specs []string) ([]Stage, error) {
	out := make([]Stage, 0, len(specs))
	for i, spec := range specs {
		s, err := r.Create(spec)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i+1, spec, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// List returns the sorted names of all registered stages.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
