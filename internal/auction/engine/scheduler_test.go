package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	accdomain "github.com/cristianortiz/pointAuction/internal/account/domain"
	accmemory "github.com/cristianortiz/pointAuction/internal/account/infra/repository/memory"
	"github.com/cristianortiz/pointAuction/internal/account/ledger"
	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/auction/infra/repository/memory"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
)

func TestScheduler_Tick_ClosesExpiredItems(t *testing.T) {
	e := newTestEngine()
	seller := e.newAccount(t, 0)
	bidder := e.newAccount(t, 500)

	expired1 := e.newOpenItem(t, seller.ID, 100, time.Now().Add(20*time.Millisecond))
	expired2 := e.newOpenItem(t, seller.ID, 100, time.Now().Add(20*time.Millisecond))
	future := e.newOpenItem(t, seller.ID, 100, futureDeadline())

	if _, err := e.book.PlaceBid(context.Background(), expired1.ID, bidder.ID, 200); err != nil {
		t.Fatalf("bid failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	s := NewClosingScheduler(time.Second, e.items, e.registry)
	s.tick(context.Background(), time.Now())

	if got := e.item(t, expired1.ID).State; got != domain.StateClosedWinner {
		t.Errorf("expired1: expected closed_with_winner, got %s", got)
	}
	if got := e.item(t, expired2.ID).State; got != domain.StateClosedNoWinner {
		t.Errorf("expired2: expected closed_no_winner, got %s", got)
	}
	if got := e.item(t, future.ID).State; got != domain.StateOpen {
		t.Errorf("future: expected open, got %s", got)
	}
}

// flakyItemStore fails Get for one item ID, simulating a store error on a
// single item mid-sweep.
type flakyItemStore struct {
	*memory.AuctionItemStore
	failID uuid.UUID
}

func (s *flakyItemStore) Get(ctx context.Context, id uuid.UUID) (*domain.AuctionItem, error) {
	if id == s.failID {
		return nil, errors.New("store unavailable")
	}
	return s.AuctionItemStore.Get(ctx, id)
}

func TestScheduler_Tick_OneFailureDoesNotAbortSweep(t *testing.T) {
	accounts := accmemory.NewAccountStore()
	items := &flakyItemStore{AuctionItemStore: memory.NewAuctionItemStore()}
	bids := memory.NewBidStore()
	l := ledger.New(accounts)
	locks := NewItemLocks()
	book := NewBidBook(locks, items, bids, accounts, l, db.Passthrough)
	registry := NewAuctionRegistry(locks, items, bids, book, l, db.Passthrough)

	seller := accdomain.NewAccount(uuid.New(), "seller@test.dev", "seller")
	if err := accounts.Create(context.Background(), seller); err != nil {
		t.Fatalf("create seller failed: %v", err)
	}

	broken, err := registry.ListItem(context.Background(), seller.ID, "broken", "", 100, time.Now().Add(20*time.Millisecond))
	if err != nil {
		t.Fatalf("list item failed: %v", err)
	}
	healthy, err := registry.ListItem(context.Background(), seller.ID, "healthy", "", 100, time.Now().Add(20*time.Millisecond))
	if err != nil {
		t.Fatalf("list item failed: %v", err)
	}
	items.failID = broken.ID
	time.Sleep(30 * time.Millisecond)

	s := NewClosingScheduler(time.Second, items, registry)
	s.tick(context.Background(), time.Now())

	// The broken item's failure is logged and skipped; the healthy item still
	// gets closed in the same sweep.
	got, err := items.AuctionItemStore.Get(context.Background(), healthy.ID)
	if err != nil {
		t.Fatalf("get healthy item failed: %v", err)
	}
	if got.State != domain.StateClosedNoWinner {
		t.Errorf("healthy item not closed: %s", got.State)
	}
}

func TestScheduler_Tick_OnClosedCallback(t *testing.T) {
	e := newTestEngine()
	seller := e.newAccount(t, 0)
	item := e.newOpenItem(t, seller.ID, 100, time.Now().Add(20*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var mu sync.Mutex
	var closedIDs []uuid.UUID
	s := NewClosingScheduler(time.Second, e.items, e.registry)
	s.OnClosed(func(i *domain.AuctionItem) {
		mu.Lock()
		closedIDs = append(closedIDs, i.ID)
		mu.Unlock()
	})

	s.tick(context.Background(), time.Now())
	// A repeat tick must not fire the callback again: the item is no longer
	// in the open-expired set.
	s.tick(context.Background(), time.Now())

	mu.Lock()
	defer mu.Unlock()
	if len(closedIDs) != 1 || closedIDs[0] != item.ID {
		t.Errorf("expected exactly one callback for %s, got %v", item.ID, closedIDs)
	}
}

// staleSweepStore serves a fixed expired-item snapshot, the way a slow sweep
// holds a listing another sweep has already worked through.
type staleSweepStore struct {
	*memory.AuctionItemStore
	snapshot []*domain.AuctionItem
}

func (s *staleSweepStore) FindOpenExpired(ctx context.Context, now time.Time) ([]*domain.AuctionItem, error) {
	return s.snapshot, nil
}

func TestScheduler_Tick_SkipsItemsClosedByOverlappingSweep(t *testing.T) {
	e := newTestEngine()
	seller := e.newAccount(t, 0)
	item := e.newOpenItem(t, seller.ID, 100, time.Now().Add(20*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	// First sweep closes the item while the second still holds a listing that
	// includes it.
	if _, didClose, err := e.registry.CloseIfExpired(context.Background(), item.ID, time.Now()); err != nil || !didClose {
		t.Fatalf("close failed: didClose=%v err=%v", didClose, err)
	}

	stale := &staleSweepStore{
		AuctionItemStore: e.items,
		snapshot:         []*domain.AuctionItem{item},
	}
	var mu sync.Mutex
	var callbacks int
	s := NewClosingScheduler(time.Second, stale, e.registry)
	s.OnClosed(func(*domain.AuctionItem) {
		mu.Lock()
		callbacks++
		mu.Unlock()
	})

	s.tick(context.Background(), time.Now())

	mu.Lock()
	defer mu.Unlock()
	if callbacks != 0 {
		t.Errorf("already-closed item announced again: %d callbacks", callbacks)
	}
}

func TestScheduler_Start_StopsOnContextCancel(t *testing.T) {
	e := newTestEngine()
	seller := e.newAccount(t, 0)
	item := e.newOpenItem(t, seller.ID, 100, time.Now().Add(20*time.Millisecond))

	s := NewClosingScheduler(30*time.Millisecond, e.items, e.registry)
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	// Wait for at least one tick to close the item.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if !e.item(t, item.ID).Open() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if e.item(t, item.ID).Open() {
		t.Fatal("scheduler never closed the expired item")
	}

	cancel()
	// Give the goroutine time to exit.
	time.Sleep(50 * time.Millisecond)
}
