package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemState represents the lifecycle state of an auction item.
type ItemState string

const (
	StateOpen           ItemState = "open"
	StateClosedNoWinner ItemState = "closed_no_winner"
	StateClosedWinner   ItemState = "closed_with_winner"
)

// AuctionItem is a listed item under auction. State transitions are
// open -> closed_no_winner | closed_with_winner, and a closed item with a
// winner can additionally be flagged purchased, exactly once, by the winner.
type AuctionItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	FloorPrice  int64
	Deadline    time.Time
	SellerID    uuid.UUID
	State       ItemState
	WinnerID    *uuid.UUID // set iff State == StateClosedWinner
	Purchased   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewAuctionItem(id uuid.UUID, name, description string, floorPrice int64, deadline time.Time, sellerID uuid.UUID) *AuctionItem {
	return &AuctionItem{
		ID:          id,
		Name:        name,
		Description: description,
		FloorPrice:  floorPrice,
		Deadline:    deadline,
		SellerID:    sellerID,
		State:       StateOpen,
	}
}

// Expired reports whether the deadline has passed at the given instant.
func (i *AuctionItem) Expired(now time.Time) bool {
	return !now.Before(i.Deadline)
}

// Open reports whether the item still accepts bids by state alone; callers
// must additionally check the deadline to reject bids racing the scheduler.
func (i *AuctionItem) Open() bool {
	return i.State == StateOpen
}

// Close transitions the item out of the open state, recording the winning
// bid's bidder or no winner at all. Returns ErrAuctionClosed when the item
// was already closed.
func (i *AuctionItem) Close(leader *Bid) error {
	if i.State != StateOpen {
		return ErrAuctionClosed
	}
	if leader == nil {
		i.State = StateClosedNoWinner
		return nil
	}
	winner := leader.BidderID
	i.WinnerID = &winner
	i.State = StateClosedWinner
	return nil
}

// MarkPurchased flips the purchased flag. The settlement service validates
// caller and state first; this only guards the exactly-once transition.
func (i *AuctionItem) MarkPurchased() error {
	if i.State != StateClosedWinner {
		return ErrNoWinner
	}
	if i.Purchased {
		return ErrAlreadyPurchased
	}
	i.Purchased = true
	return nil
}
