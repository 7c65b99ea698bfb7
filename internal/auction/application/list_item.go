package application

import (
	"context"
	"time"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/auction/engine"
	"github.com/google/uuid"
)

// ListItemDTO is the input for the ListItem use case.
type ListItemDTO struct {
	SellerID    uuid.UUID
	Name        string
	Description string
	FloorPrice  int64
	Deadline    time.Time
}

// ListItemUseCase puts a new item up for auction.
type ListItemUseCase struct {
	registry *engine.AuctionRegistry
}

func NewListItemUseCase(registry *engine.AuctionRegistry) *ListItemUseCase {
	return &ListItemUseCase{registry: registry}
}

func (uc *ListItemUseCase) Execute(ctx context.Context, cmd ListItemDTO) (*domain.AuctionItem, error) {
	return uc.registry.ListItem(ctx, cmd.SellerID, cmd.Name, cmd.Description, cmd.FloorPrice, cmd.Deadline)
}
