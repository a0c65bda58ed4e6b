package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrInvalidPattern rejects breathing patterns with no non-zero phase.
	ErrInvalidPattern = errors.New("breathing pattern has no non-zero phase")
	// ErrInvalidDuration rejects non-positive session durations.
	ErrInvalidDuration = errors.New("session duration must be positive")
	// ErrSessionNotFound is returned for unknown or expired session IDs.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when the registry is at capacity.
	ErrTooManySessions = errors.New("session limit reached")
)

// Registry tracks live sessions by ID. Entries are created with a fresh
// uuid and removed explicitly when the session ends; there is no TTL
// sweep because every transport path (WebSocket close, explicit end)
// removes its session.
type Registry[T any] struct {
	mu       sync.RWMutex
	sessions map[string]T
	maxSize  int
}

// NewRegistry creates a registry. maxSize <= 0 means unbounded.
func NewRegistry[T any](maxSize int) *Registry[T] {
	return &Registry[T]{
		sessions: make(map[string]T),
		maxSize:  maxSize,
	}
}

// Add stores the session under a new ID and returns it.
func (r *Registry[T]) Add(s T) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.maxSize > 0 && len(r.sessions) >= r.maxSize {
		return "", ErrTooManySessions
	}
	id := uuid.NewString()
	r.sessions[id] = s
	return id, nil
}

// Get returns the session for the ID.
func (r *Registry[T]) Get(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		var zero T
		return zero, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops the session. Removing an unknown ID is a no-op.
func (r *Registry[T]) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
