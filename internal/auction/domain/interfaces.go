package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuctionItemStore abstracts item persistence. Get returns ErrItemNotFound
// for missing IDs.
type AuctionItemStore interface {
	Create(ctx context.Context, item *AuctionItem) error
	Get(ctx context.Context, id uuid.UUID) (*AuctionItem, error)
	Save(ctx context.Context, item *AuctionItem) error
	// FindOpenExpired returns every open item whose deadline is at or before
	// now, for the closing scheduler's sweep.
	FindOpenExpired(ctx context.Context, now time.Time) ([]*AuctionItem, error)
	List(ctx context.Context) ([]*AuctionItem, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*AuctionItem, error)
	ListByWinner(ctx context.Context, winnerID uuid.UUID) ([]*AuctionItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BidStore abstracts bid persistence. FindLeader returns (nil, nil) when the
// item has no bids.
type BidStore interface {
	Save(ctx context.Context, bid *Bid) error
	FindLeader(ctx context.Context, itemID uuid.UUID) (*Bid, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*Bid, error)
	DeleteAllForItem(ctx context.Context, itemID uuid.UUID) error
}

// Notifier informs a winner that their purchase settled. Fire-and-forget:
// implementations log failures, never propagate them.
type Notifier interface {
	NotifyWinner(ctx context.Context, winnerID uuid.UUID, item *AuctionItem, amount int64)
}
