// Package session stores per-browsing-session state. The only value a
// session carries is the cart, kept under a single well-known key per
// session ID.
package session

import (
	"context"
	"sync"

	"github.com/RGianluca98/Stycly/internal/models"
)

// Store is the session-scoped key-value boundary the cart lives behind.
// A missing session yields an empty cart, never an error.
type Store interface {
	GetCart(ctx context.Context, sessionID string) (models.Cart, error)
	SetCart(ctx context.Context, sessionID string, cart models.Cart) error
}

// MemoryStore implements Store in process, for tests and single-node runs.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]models.Cart),
	}
}

func (s *MemoryStore) GetCart(ctx context.Context, sessionID string) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		return models.NewCart(), nil
	}

	// Copy so callers never mutate stored state directly.
	copied := models.NewCart()
	for id, q := range cart {
		copied[id] = q
	}
	return copied, nil
}

func (s *MemoryStore) SetCart(ctx context.Context, sessionID string, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := models.NewCart()
	for id, q := range cart {
		stored[id] = q
	}
	s.carts[sessionID] = stored
	return nil
}
