package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	accdomain "github.com/cristianortiz/pointAuction/internal/account/domain"
	accmemory "github.com/cristianortiz/pointAuction/internal/account/infra/repository/memory"
	"github.com/cristianortiz/pointAuction/internal/account/ledger"
	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	auctmemory "github.com/cristianortiz/pointAuction/internal/auction/infra/repository/memory"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
	"pgregory.net/rapid"
)

// mockNotifier records winner notifications.
type mockNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	winnerID uuid.UUID
	itemID   uuid.UUID
	amount   int64
}

func (m *mockNotifier) NotifyWinner(ctx context.Context, winnerID uuid.UUID, item *domain.AuctionItem, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notifyCall{winnerID: winnerID, itemID: item.ID, amount: amount})
}

func (m *mockNotifier) getCalls() []notifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]notifyCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// testEngine wires the whole engine against in-memory stores.
type testEngine struct {
	accounts   *accmemory.AccountStore
	items      *auctmemory.AuctionItemStore
	bids       *auctmemory.BidStore
	ledger     *ledger.Ledger
	locks      *ItemLocks
	book       *BidBook
	registry   *AuctionRegistry
	settlement *SettlementService
	notifier   *mockNotifier
}

func newTestEngine() *testEngine {
	accounts := accmemory.NewAccountStore()
	items := auctmemory.NewAuctionItemStore()
	bids := auctmemory.NewBidStore()
	l := ledger.New(accounts)
	locks := NewItemLocks()
	book := NewBidBook(locks, items, bids, accounts, l, db.Passthrough)
	registry := NewAuctionRegistry(locks, items, bids, book, l, db.Passthrough)
	notifier := &mockNotifier{}
	settlement := NewSettlementService(locks, items, bids, l, notifier, db.Passthrough)

	return &testEngine{
		accounts:   accounts,
		items:      items,
		bids:       bids,
		ledger:     l,
		locks:      locks,
		book:       book,
		registry:   registry,
		settlement: settlement,
		notifier:   notifier,
	}
}

func (e *testEngine) newAccount(t testing.TB, points int64) *accdomain.Account {
	t.Helper()
	account := accdomain.NewAccount(uuid.New(), uuid.New().String()+"@test.dev", "tester")
	account.Points = points
	if err := e.accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

func (e *testEngine) newOpenItem(t testing.TB, sellerID uuid.UUID, floorPrice int64, deadline time.Time) *domain.AuctionItem {
	t.Helper()
	item, err := e.registry.ListItem(context.Background(), sellerID, "test item", "a thing", floorPrice, deadline)
	if err != nil {
		t.Fatalf("failed to list test item: %v", err)
	}
	return item
}

func (e *testEngine) balance(t rapid.TB, id uuid.UUID) int64 {
	t.Helper()
	account, err := e.accounts.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to get account: %v", err)
	}
	return account.Points
}

func (e *testEngine) item(t testing.TB, id uuid.UUID) *domain.AuctionItem {
	t.Helper()
	item, err := e.items.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to get item: %v", err)
	}
	return item
}

func futureDeadline() time.Time {
	return time.Now().Add(time.Hour)
}
