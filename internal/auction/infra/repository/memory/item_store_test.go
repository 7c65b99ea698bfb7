package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/google/uuid"
)

func newItem(deadline time.Time) *domain.AuctionItem {
	return domain.NewAuctionItem(uuid.New(), "item", "", 100, deadline, uuid.New())
}

func TestAuctionItemStore_FindOpenExpired_OrderedByDeadline(t *testing.T) {
	s := NewAuctionItemStore()
	ctx := context.Background()
	now := time.Now()

	late := newItem(now.Add(-1 * time.Minute))
	early := newItem(now.Add(-3 * time.Minute))
	mid := newItem(now.Add(-2 * time.Minute))
	future := newItem(now.Add(time.Hour))
	for _, item := range []*domain.AuctionItem{late, early, mid, future} {
		if err := s.Create(ctx, item); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	expired, err := s.FindOpenExpired(ctx, now)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(expired) != 3 {
		t.Fatalf("expected 3 expired items, got %d", len(expired))
	}
	// Ascending by deadline: early, mid, late.
	want := []uuid.UUID{early.ID, mid.ID, late.ID}
	for i, item := range expired {
		if item.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], item.ID)
		}
	}
}

func TestAuctionItemStore_FindOpenExpired_SkipsClosed(t *testing.T) {
	s := NewAuctionItemStore()
	ctx := context.Background()
	now := time.Now()

	item := newItem(now.Add(-time.Minute))
	if err := s.Create(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := item.Close(nil); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := s.Save(ctx, item); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	expired, err := s.FindOpenExpired(ctx, now)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(expired) != 0 {
		t.Errorf("expected 0 expired items, got %d", len(expired))
	}
}

func TestAuctionItemStore_GetReturnsCopy(t *testing.T) {
	s := NewAuctionItemStore()
	ctx := context.Background()

	item := newItem(time.Now().Add(time.Hour))
	if err := s.Create(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := s.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	// Mutations are invisible until Save, like a persistence-backed store.
	got.Name = "changed"
	again, err := s.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.Name != "item" {
		t.Errorf("unsaved mutation leaked into the store: %s", again.Name)
	}
}

func TestAuctionItemStore_Delete(t *testing.T) {
	s := NewAuctionItemStore()
	ctx := context.Background()
	now := time.Now()

	item := newItem(now.Add(-time.Minute))
	if err := s.Create(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := s.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := s.Get(ctx, item.ID); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	// The deadline index entry must be gone too.
	expired, err := s.FindOpenExpired(ctx, now)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(expired) != 0 {
		t.Errorf("expected empty sweep after delete, got %d items", len(expired))
	}
}

func TestAuctionItemStore_ListByWinner(t *testing.T) {
	s := NewAuctionItemStore()
	ctx := context.Background()
	winner := uuid.New()

	won := newItem(time.Now().Add(-time.Minute))
	wID := winner
	won.State = domain.StateClosedWinner
	won.WinnerID = &wID
	other := newItem(time.Now().Add(time.Hour))
	for _, item := range []*domain.AuctionItem{won, other} {
		if err := s.Create(ctx, item); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	items, err := s.ListByWinner(ctx, winner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != won.ID {
		t.Errorf("expected only the won item, got %d items", len(items))
	}
}
