package application

import (
	"context"
	"fmt"

	accdomain "github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/auction/engine"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeleteItemDTO is the input for the DeleteItem use case.
type DeleteItemDTO struct {
	AdminID uuid.UUID
	ItemID  uuid.UUID
}

// DeleteItemUseCase removes an item through the administrative path. The
// caller must be an administrator; the registry runs the escrow refund, bid
// cascade and item removal as one unit of work.
type DeleteItemUseCase struct {
	accounts accdomain.AccountStore
	registry *engine.AuctionRegistry
}

func NewDeleteItemUseCase(accounts accdomain.AccountStore, registry *engine.AuctionRegistry) *DeleteItemUseCase {
	return &DeleteItemUseCase{
		accounts: accounts,
		registry: registry,
	}
}

func (uc *DeleteItemUseCase) Execute(ctx context.Context, cmd DeleteItemDTO) error {
	admin, err := uc.accounts.Get(ctx, cmd.AdminID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if !admin.IsAdmin {
		log.Warn("Item deletion rejected: caller is not an administrator",
			zap.String("callerID", cmd.AdminID.String()),
			zap.String("itemID", cmd.ItemID.String()),
		)
		return accdomain.ErrNotAdmin
	}

	return uc.registry.DeleteItem(ctx, cmd.ItemID)
}
