package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// CartLookup persists the cart identifier bound to a session handle.
type CartLookup interface {
	// Get returns the stored cart id and whether one was present.
	Get(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
	Set(ctx context.Context, sessionID string, cartID uuid.UUID) error
}

// MemoryLookup keeps session bindings in process memory.
type MemoryLookup struct {
	mu    sync.RWMutex
	carts map[string]uuid.UUID
}

func NewMemoryLookup() *MemoryLookup {
	return &MemoryLookup{carts: map[string]uuid.UUID{}}
}

func (m *MemoryLookup) Get(_ context.Context, sessionID string) (uuid.UUID, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.carts[sessionID]
	return id, ok, nil
}

func (m *MemoryLookup) Set(_ context.Context, sessionID string, cartID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = cartID
	return nil
}
