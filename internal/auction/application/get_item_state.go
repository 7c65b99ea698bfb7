package application

import (
	"context"
	"time"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/google/uuid"
)

// ItemStateDTO is the outward-facing view of an item: its listing data plus
// the current price and leading bid, for the UI and websocket updates.
type ItemStateDTO struct {
	ItemID          uuid.UUID  `json:"item_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	FloorPrice      int64      `json:"floor_price"`
	CurrentPrice    int64      `json:"current_price"`
	Deadline        time.Time  `json:"deadline"`
	SellerID        uuid.UUID  `json:"seller_id"`
	State           string     `json:"state"`
	WinnerID        *uuid.UUID `json:"winner_id,omitempty"`
	Purchased       bool       `json:"purchased"`
	LeaderID        *uuid.UUID `json:"leader_id,omitempty"`
	LeadingBid      int64      `json:"leading_bid,omitempty"`
	LeadingBidAt    *time.Time `json:"leading_bid_at,omitempty"`
	NumberOfBidders int        `json:"number_of_bids"`
}

func toItemStateDTO(item *domain.AuctionItem, leader *domain.Bid, bidCount int) *ItemStateDTO {
	dto := &ItemStateDTO{
		ItemID:          item.ID,
		Name:            item.Name,
		Description:     item.Description,
		FloorPrice:      item.FloorPrice,
		CurrentPrice:    item.FloorPrice,
		Deadline:        item.Deadline,
		SellerID:        item.SellerID,
		State:           string(item.State),
		WinnerID:        item.WinnerID,
		Purchased:       item.Purchased,
		NumberOfBidders: bidCount,
	}
	if leader != nil {
		dto.CurrentPrice = leader.Amount
		bidder := leader.BidderID
		placedAt := leader.PlacedAt
		dto.LeaderID = &bidder
		dto.LeadingBid = leader.Amount
		dto.LeadingBidAt = &placedAt
	}
	return dto
}

// GetItemStateUseCase retrieves the current state of an auction item.
type GetItemStateUseCase struct {
	items domain.AuctionItemStore
	bids  domain.BidStore
}

func NewGetItemStateUseCase(items domain.AuctionItemStore, bids domain.BidStore) *GetItemStateUseCase {
	return &GetItemStateUseCase{items: items, bids: bids}
}

func (uc *GetItemStateUseCase) Execute(ctx context.Context, itemID uuid.UUID) (*ItemStateDTO, error) {
	item, err := uc.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	leader, err := uc.bids.FindLeader(ctx, itemID)
	if err != nil {
		return nil, err
	}
	bids, err := uc.bids.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return toItemStateDTO(item, leader, len(bids)), nil
}
