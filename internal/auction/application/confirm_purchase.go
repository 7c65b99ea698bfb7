package application

import (
	"context"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/auction/engine"
	"github.com/google/uuid"
)

// ConfirmPurchaseDTO is the input for the ConfirmPurchase use case.
type ConfirmPurchaseDTO struct {
	ItemID   uuid.UUID
	CallerID uuid.UUID
}

// ConfirmPurchaseUseCase settles a won auction. The settlement service runs
// the seller credit and the purchased flag as one unit of work, so they
// commit together or not at all.
type ConfirmPurchaseUseCase struct {
	settlement *engine.SettlementService
}

func NewConfirmPurchaseUseCase(settlement *engine.SettlementService) *ConfirmPurchaseUseCase {
	return &ConfirmPurchaseUseCase{settlement: settlement}
}

func (uc *ConfirmPurchaseUseCase) Execute(ctx context.Context, cmd ConfirmPurchaseDTO) (*domain.AuctionItem, error) {
	return uc.settlement.ConfirmPurchase(ctx, cmd.ItemID, cmd.CallerID)
}
