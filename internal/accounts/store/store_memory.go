package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/judydsp/provabruno/internal/accounts/models"
	"github.com/judydsp/provabruno/pkg/platform/sentinel"
)

// InMemoryAccountStore keeps accounts keyed by normalized email.
type InMemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func New() *InMemoryAccountStore {
	return &InMemoryAccountStore{accounts: make(map[string]*models.Account)}
}

// NormalizeEmail is the uniqueness key for accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores account unless its email is taken, in which case it returns
// sentinel.ErrConflict.
func (s *InMemoryAccountStore) Create(_ context.Context, account *models.Account) error {
	key := NormalizeEmail(account.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[key]; exists {
		return fmt.Errorf("account %s: %w", key, sentinel.ErrConflict)
	}
	s.accounts[key] = account
	return nil
}

func (s *InMemoryAccountStore) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[NormalizeEmail(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return account, nil
}

func (s *InMemoryAccountStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts), nil
}
