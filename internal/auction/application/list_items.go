package application

import (
	"context"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/google/uuid"
)

// ListItemsUseCase lists items: all of them, those listed by a seller, or
// those won by a bidder.
type ListItemsUseCase struct {
	items domain.AuctionItemStore
	bids  domain.BidStore
}

func NewListItemsUseCase(items domain.AuctionItemStore, bids domain.BidStore) *ListItemsUseCase {
	return &ListItemsUseCase{items: items, bids: bids}
}

func (uc *ListItemsUseCase) Execute(ctx context.Context) ([]*ItemStateDTO, error) {
	items, err := uc.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return uc.toDTOs(ctx, items)
}

// BySeller lists the items an account has put up for auction.
func (uc *ListItemsUseCase) BySeller(ctx context.Context, sellerID uuid.UUID) ([]*ItemStateDTO, error) {
	items, err := uc.items.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return uc.toDTOs(ctx, items)
}

// ByWinner lists the items an account has won.
func (uc *ListItemsUseCase) ByWinner(ctx context.Context, winnerID uuid.UUID) ([]*ItemStateDTO, error) {
	items, err := uc.items.ListByWinner(ctx, winnerID)
	if err != nil {
		return nil, err
	}
	return uc.toDTOs(ctx, items)
}

func (uc *ListItemsUseCase) toDTOs(ctx context.Context, items []*domain.AuctionItem) ([]*ItemStateDTO, error) {
	result := make([]*ItemStateDTO, 0, len(items))
	for _, item := range items {
		leader, err := uc.bids.FindLeader(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		bids, err := uc.bids.ListByItem(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, toItemStateDTO(item, leader, len(bids)))
	}
	return result, nil
}
