// Package memory keeps the account registry in process memory.
// A Store lives for the lifetime of the process and is never written to disk.
package memory

import (
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// Store is the account registry shared by the repository and the transaction manager.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewStore creates an empty registry.
func NewStore() *Store {
	return &Store{accounts: make(map[string]*domain.Account)}
}

// Len returns the number of registered accounts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}
