package memory

import (
	"context"
	"sync"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/google/uuid"
)

// BidStore is a thread-safe in-memory bid store, grouped per item.
type BidStore struct {
	mu   sync.RWMutex
	bids map[uuid.UUID][]*domain.Bid // item_id -> bids in placement order
}

func NewBidStore() *BidStore {
	return &BidStore{
		bids: make(map[uuid.UUID][]*domain.Bid),
	}
}

func (s *BidStore) Save(ctx context.Context, bid *domain.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *bid
	s.bids[bid.ItemID] = append(s.bids[bid.ItemID], &cp)
	return nil
}

// FindLeader returns the highest bid on the item, or (nil, nil) when the
// item has no bids. Bids only ever strictly improve, so the highest bid is
// always the most recent one.
func (s *BidStore) FindLeader(ctx context.Context, itemID uuid.UUID) (*domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := s.bids[itemID]
	if len(bids) == 0 {
		return nil, nil
	}
	leader := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > leader.Amount {
			leader = b
		}
	}
	cp := *leader
	return &cp, nil
}

func (s *BidStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bids := s.bids[itemID]
	result := make([]*domain.Bid, len(bids))
	for i, b := range bids {
		cp := *b
		result[i] = &cp
	}
	return result, nil
}

func (s *BidStore) DeleteAllForItem(ctx context.Context, itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bids, itemID)
	return nil
}
