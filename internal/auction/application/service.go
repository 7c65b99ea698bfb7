package application

import (
	"context"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/google/uuid"
)

// AuctionService exposes the auction module's use cases to the infra layer.
type AuctionService interface {
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error)
	ListItem(ctx context.Context, cmd ListItemDTO) (*domain.AuctionItem, error)
	GetItemState(ctx context.Context, itemID uuid.UUID) (*ItemStateDTO, error)
	ListItems(ctx context.Context) ([]*ItemStateDTO, error)
	ItemsBySeller(ctx context.Context, sellerID uuid.UUID) ([]*ItemStateDTO, error)
	ItemsByWinner(ctx context.Context, winnerID uuid.UUID) ([]*ItemStateDTO, error)
	ConfirmPurchase(ctx context.Context, cmd ConfirmPurchaseDTO) (*domain.AuctionItem, error)
	DeleteItem(ctx context.Context, cmd DeleteItemDTO) error
}

type auctionService struct {
	placeBidUC        *PlaceBidUseCase
	listItemUC        *ListItemUseCase
	getItemStateUC    *GetItemStateUseCase
	listItemsUC       *ListItemsUseCase
	confirmPurchaseUC *ConfirmPurchaseUseCase
	deleteItemUC      *DeleteItemUseCase
}

func NewAuctionService(
	placeBidUC *PlaceBidUseCase,
	listItemUC *ListItemUseCase,
	getItemStateUC *GetItemStateUseCase,
	listItemsUC *ListItemsUseCase,
	confirmPurchaseUC *ConfirmPurchaseUseCase,
	deleteItemUC *DeleteItemUseCase,
) AuctionService {
	return &auctionService{
		placeBidUC:        placeBidUC,
		listItemUC:        listItemUC,
		getItemStateUC:    getItemStateUC,
		listItemsUC:       listItemsUC,
		confirmPurchaseUC: confirmPurchaseUC,
		deleteItemUC:      deleteItemUC,
	}
}

func (s *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	return s.placeBidUC.Execute(ctx, cmd)
}

func (s *auctionService) ListItem(ctx context.Context, cmd ListItemDTO) (*domain.AuctionItem, error) {
	return s.listItemUC.Execute(ctx, cmd)
}

func (s *auctionService) GetItemState(ctx context.Context, itemID uuid.UUID) (*ItemStateDTO, error) {
	return s.getItemStateUC.Execute(ctx, itemID)
}

func (s *auctionService) ListItems(ctx context.Context) ([]*ItemStateDTO, error) {
	return s.listItemsUC.Execute(ctx)
}

func (s *auctionService) ItemsBySeller(ctx context.Context, sellerID uuid.UUID) ([]*ItemStateDTO, error) {
	return s.listItemsUC.BySeller(ctx, sellerID)
}

func (s *auctionService) ItemsByWinner(ctx context.Context, winnerID uuid.UUID) ([]*ItemStateDTO, error) {
	return s.listItemsUC.ByWinner(ctx, winnerID)
}

func (s *auctionService) ConfirmPurchase(ctx context.Context, cmd ConfirmPurchaseDTO) (*domain.AuctionItem, error) {
	return s.confirmPurchaseUC.Execute(ctx, cmd)
}

func (s *auctionService) DeleteItem(ctx context.Context, cmd DeleteItemDTO) error {
	return s.deleteItemUC.Execute(ctx, cmd)
}
