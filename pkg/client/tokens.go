package client

import (
	"sync"

	"github.com/naveenspark/backoffice/pkg/domain"
)

// TokenStore persists the session credentials. The client reads it on every
// request, so implementations must return the latest pair each call.
type TokenStore interface {
	Tokens() (domain.TokenPair, error)
	SetTokens(domain.TokenPair) error
	Clear() error
}

// ProfileStore is implemented by stores that also keep the admin profile.
type ProfileStore interface {
	Admin() (*domain.Admin, error)
	SetAdmin(*domain.Admin) error
}

// MemoryTokenStore is an in-process TokenStore.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	pair  domain.TokenPair
	admin *domain.Admin
}

// NewMemoryTokenStore returns a store seeded with pair.
func NewMemoryTokenStore(pair domain.TokenPair) *MemoryTokenStore {
	return &MemoryTokenStore{pair: pair}
}

func (s *MemoryTokenStore) Tokens() (domain.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair, nil
}

func (s *MemoryTokenStore) SetTokens(p domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = p
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = domain.TokenPair{}
	s.admin = nil
	return nil
}

func (s *MemoryTokenStore) Admin() (*domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin, nil
}

func (s *MemoryTokenStore) SetAdmin(a *domain.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = a
	return nil
}

var (
	_ TokenStore   = (*MemoryTokenStore)(nil)
	_ ProfileStore = (*MemoryTokenStore)(nil)
)
