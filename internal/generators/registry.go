package generators

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mmrzaf/earthgen/internal/domain"
)

// Constructor builds a fresh generator instance; resolving twice with
// the same config restarts the sequence from the beginning.
type Constructor func(cfg Config) Generator

// Registry is the generator factory. New entity types register a
// constructor at startup; resolution is a pure lookup.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

func (r *Registry) Register(entityType string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[entityType] = ctor
}

func (r *Registry) Resolve(entityType string, cfg Config) (Generator, error) {
	r.mu.RLock()
	ctor, ok := r.constructors[entityType]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", domain.ErrUnknownEntityType, entityType, r.Types())
	}
	return ctor(cfg), nil
}

func (r *Registry) Known(entityType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[entityType]
	return ok
}

func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.constructors))
	for t := range r.constructors {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Default returns a registry with all built-in entity types.
func Default() *Registry {
	r := NewRegistry()
	r.Register(EntityPerson, func(cfg Config) Generator { return NewPersonGenerator(cfg) })
	r.Register(EntityCompany, func(cfg Config) Generator { return NewCompanyGenerator(cfg) })
	r.Register(EntityCareerStep, func(cfg Config) Generator { return NewCareerStepGenerator(cfg) })
	return r
}
