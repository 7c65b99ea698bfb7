package memory

import (
	"context"
	"sync"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/google/uuid"
)

// ChargeStore is a thread-safe in-memory, append-only charge audit trail,
// kept chronological per account.
type ChargeStore struct {
	mu      sync.RWMutex
	charges map[uuid.UUID][]*domain.ChargeRecord // account_id -> records
}

func NewChargeStore() *ChargeStore {
	return &ChargeStore{
		charges: make(map[uuid.UUID][]*domain.ChargeRecord),
	}
}

func (s *ChargeStore) Append(ctx context.Context, record *domain.ChargeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.charges[record.AccountID] = append(s.charges[record.AccountID], &cp)
	return nil
}

func (s *ChargeStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.ChargeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.charges[accountID]
	result := make([]*domain.ChargeRecord, len(records))
	for i, r := range records {
		cp := *r
		result[i] = &cp
	}
	return result, nil
}
