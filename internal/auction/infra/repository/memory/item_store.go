package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/google/btree"
	"github.com/google/uuid"
)

// deadlineEntry orders items by deadline so the expiry sweep only walks the
// prefix of the index that is actually due.
type deadlineEntry struct {
	deadline time.Time
	id       uuid.UUID
}

func deadlineLess(a, b deadlineEntry) bool {
	if a.deadline.Equal(b.deadline) {
		return a.id.String() < b.id.String()
	}
	return a.deadline.Before(b.deadline)
}

// AuctionItemStore is a thread-safe in-memory item store with a btree index
// on deadline backing FindOpenExpired.
type AuctionItemStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*domain.AuctionItem
	byDue *btree.BTreeG[deadlineEntry]
}

func NewAuctionItemStore() *AuctionItemStore {
	return &AuctionItemStore{
		items: make(map[uuid.UUID]*domain.AuctionItem),
		byDue: btree.NewG(8, deadlineLess),
	}
}

func (s *AuctionItemStore) Create(ctx context.Context, item *domain.AuctionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return domain.ErrInvalidItem
	}
	cp := *item
	s.items[item.ID] = &cp
	s.byDue.ReplaceOrInsert(deadlineEntry{deadline: item.Deadline, id: item.ID})
	return nil
}

func (s *AuctionItemStore) Get(ctx context.Context, id uuid.UUID) (*domain.AuctionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *AuctionItemStore) Save(ctx context.Context, item *domain.AuctionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	cp := *item
	s.items[item.ID] = &cp
	return nil
}

// FindOpenExpired walks the deadline index in ascending order and stops at
// the first entry past now, so the sweep cost tracks the number of due items
// rather than the total number of items.
func (s *AuctionItemStore) FindOpenExpired(ctx context.Context, now time.Time) ([]*domain.AuctionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AuctionItem
	s.byDue.Ascend(func(e deadlineEntry) bool {
		if e.deadline.After(now) {
			return false
		}
		item, ok := s.items[e.id]
		if ok && item.Open() {
			cp := *item
			result = append(result, &cp)
		}
		return true
	})
	return result, nil
}

func (s *AuctionItemStore) List(ctx context.Context) ([]*domain.AuctionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.AuctionItem, 0, len(s.items))
	for _, item := range s.items {
		cp := *item
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *AuctionItemStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.AuctionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AuctionItem
	for _, item := range s.items {
		if item.SellerID == sellerID {
			cp := *item
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *AuctionItemStore) ListByWinner(ctx context.Context, winnerID uuid.UUID) ([]*domain.AuctionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.AuctionItem
	for _, item := range s.items {
		if item.WinnerID != nil && *item.WinnerID == winnerID {
			cp := *item
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (s *AuctionItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	s.byDue.Delete(deadlineEntry{deadline: item.Deadline, id: id})
	delete(s.items, id)
	return nil
}
