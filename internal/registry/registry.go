// Package registry maps mechanic kinds to their constructors.
// A Registry is built once at startup and handed to the round orchestrator;
// there is no package-level instance.
package registry

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/vovakirdan/keymash/internal/mechanic"
)

// Factory creates a fresh mechanic instance drawing randomness from rng.
type Factory func(rng *rand.Rand) mechanic.Mechanic

// MechanicInfo contains metadata about a registered mechanic.
type MechanicInfo struct {
	Kind    mechanic.Kind
	Name    string
	Title   string
	MinKeys int
}

// Registry holds mechanic factories by kind.
type Registry struct {
	factories map[mechanic.Kind]Factory
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{factories: make(map[mechanic.Kind]Factory)}
}

// Default creates a registry with all five built-in mechanics.
func Default() *Registry {
	r := New()
	r.Register(mechanic.SingleKey, func(rng *rand.Rand) mechanic.Mechanic {
		return mechanic.NewSingle(rng)
	})
	r.Register(mechanic.AlternateKeys, func(rng *rand.Rand) mechanic.Mechanic {
		return mechanic.NewAlternate(rng)
	})
	r.Register(mechanic.SplitKeys, func(rng *rand.Rand) mechanic.Mechanic {
		return mechanic.NewSplit(rng)
	})
	r.Register(mechanic.KeySequence, func(rng *rand.Rand) mechanic.Mechanic {
		return mechanic.NewSequence(rng)
	})
	r.Register(mechanic.CorrectKey, func(rng *rand.Rand) mechanic.Mechanic {
		return mechanic.NewCorrect(rng)
	})
	return r
}

// Register adds a factory for kind.
// Panics if the kind is already registered.
func (r *Registry) Register(kind mechanic.Kind, f Factory) {
	if _, exists := r.factories[kind]; exists {
		panic(fmt.Sprintf("registry: mechanic %q already registered", kind))
	}
	r.factories[kind] = f
}

// List returns information about all registered mechanics, sorted by kind.
func (r *Registry) List() []MechanicInfo {
	result := make([]MechanicInfo, 0, len(r.factories))
	for kind := range r.factories {
		result = append(result, MechanicInfo{
			Kind:    kind,
			Name:    kind.String(),
			Title:   kind.Title(),
			MinKeys: kind.MinKeys(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})

	return result
}

// Create instantiates a new mechanic of the given kind.
// Returns an error wrapping mechanic.ErrConfiguration if kind is not registered.
func (r *Registry) Create(kind mechanic.Kind, rng *rand.Rand) (mechanic.Mechanic, error) {
	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("registry: %w: unknown mechanic %q", mechanic.ErrConfiguration, kind)
	}
	return f(rng), nil
}

// Exists checks if a mechanic kind is registered.
func (r *Registry) Exists(kind mechanic.Kind) bool {
	_, ok := r.factories[kind]
	return ok
}
