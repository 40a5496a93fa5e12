// Package challenges maps curriculum challenges to the generators that
// produce their puzzles.
package challenges

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
)

// ErrChallengeNotFound is returned when no handler is registered for a key.
var ErrChallengeNotFound = errors.New("challenge not found")

// Key identifies one challenge across subjects and years.
type Key struct {
	Subject     string
	Year        int
	TopicID     string
	ChallengeID string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/year%d/%s/%s", k.Subject, k.Year, k.TopicID, k.ChallengeID)
}

// Handler produces puzzles for a single challenge.
type Handler interface {
	Title() string
	Generate(rng *rand.Rand) Puzzle
}

// HandlerFunc adapts a title and a generator function to Handler.
type HandlerFunc struct {
	Name string
	Fn   func(rng *rand.Rand) Puzzle
}

func (h HandlerFunc) Title() string                  { return h.Name }
func (h HandlerFunc) Generate(rng *rand.Rand) Puzzle { return h.Fn(rng) }

// Registry is a concurrency-safe lookup table of challenge handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Key]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Key]Handler)}
}

// Register adds a handler. Registering the same key twice is an error.
func (r *Registry) Register(key Key, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("challenge %s already registered", key)
	}
	r.handlers[key] = h
	return nil
}

// Lookup returns the handler for key or ErrChallengeNotFound.
func (r *Registry) Lookup(key Key) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChallengeNotFound, key)
	}
	return h, nil
}

// Has reports whether a handler is registered for key.
func (r *Registry) Has(key Key) bool {
	_, err := r.Lookup(key)
	return err == nil
}

// Keys returns all registered keys in a stable order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]Key, 0, len(r.handlers))
	for k := range r.handlers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
