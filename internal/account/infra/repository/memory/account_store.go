package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/google/uuid"
)

// AccountStore is a thread-safe in-memory account store. Get hands out a
// copy and Save writes one back, so mutations only become visible through an
// explicit Save, matching the persistence-backed implementation.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.Account
	byEmail  map[string]uuid.UUID
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[uuid.UUID]*domain.Account),
		byEmail:  make(map[string]uuid.UUID),
	}
}

func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return domain.ErrAccountAlreadyExist
	}
	if _, exists := s.byEmail[account.Email]; exists {
		return domain.ErrAccountAlreadyExist
	}
	cp := *account
	s.accounts[account.ID] = &cp
	s.byEmail[account.Email] = account.ID
	return nil
}

func (s *AccountStore) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *AccountStore) Save(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	cp := *account
	s.accounts[account.ID] = &cp
	return nil
}

func (s *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		cp := *a
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
