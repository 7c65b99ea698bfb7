package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bid is a single bid on an auction item. Immutable once created. The leader
// of an item is its bid with the greatest amount; ties cannot happen because
// every accepted bid strictly exceeds the previous leader.
type Bid struct {
	ID       uuid.UUID
	ItemID   uuid.UUID
	BidderID uuid.UUID
	Amount   int64
	PlacedAt time.Time
}

// NewBid creates a new Bid stamped with the given time.
func NewBid(id, itemID, bidderID uuid.UUID, amount int64, placedAt time.Time) *Bid {
	return &Bid{
		ID:       id,
		ItemID:   itemID,
		BidderID: bidderID,
		Amount:   amount,
		PlacedAt: placedAt,
	}
}
