package application

import (
	"context"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/auction/engine"
	"github.com/cristianortiz/pointAuction/internal/shared/logger"
	"github.com/google/uuid"
)

var log = logger.GetLogger()

// PlaceBidDTO is the input for the PlaceBid use case.
type PlaceBidDTO struct {
	ItemID   uuid.UUID
	BidderID uuid.UUID
	Amount   int64
}

// PlaceBidUseCase places a bid through the bid book. The book runs the whole
// escrow swap (debit bidder, refund previous leader, record bid) as one unit
// of work under the item's lock, so a partial swap can never be observed
// after a failure.
type PlaceBidUseCase struct {
	book *engine.BidBook
}

func NewPlaceBidUseCase(book *engine.BidBook) *PlaceBidUseCase {
	return &PlaceBidUseCase{book: book}
}

func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (*domain.Bid, error) {
	return uc.book.PlaceBid(ctx, cmd.ItemID, cmd.BidderID, cmd.Amount)
}
