package engine

import (
	"context"
	"fmt"

	"github.com/cristianortiz/pointAuction/internal/account/ledger"
	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettlementService handles winner-confirmed purchase: it validates the
// caller is the recorded winner, credits the seller the winning amount
// exactly once, marks the item purchased and notifies the winner.
type SettlementService struct {
	locks    *ItemLocks
	items    domain.AuctionItemStore
	bids     domain.BidStore
	ledger   *ledger.Ledger
	notifier domain.Notifier
	run      db.Runner
}

func NewSettlementService(
	locks *ItemLocks,
	items domain.AuctionItemStore,
	bids domain.BidStore,
	ledger *ledger.Ledger,
	notifier domain.Notifier,
	run db.Runner,
) *SettlementService {
	return &SettlementService{
		locks:    locks,
		items:    items,
		bids:     bids,
		ledger:   ledger,
		notifier: notifier,
		run:      run,
	}
}

// ConfirmPurchase settles the purchase of itemID by callerID. Safe against
// concurrent duplicate calls: the item lock serializes them across the whole
// unit of work, commit included, and the second caller sees
// ErrAlreadyPurchased, so the seller is credited exactly once.
func (s *SettlementService) ConfirmPurchase(ctx context.Context, itemID, callerID uuid.UUID) (*domain.AuctionItem, error) {
	m := s.locks.Get(itemID)
	m.Lock()
	defer m.Unlock()

	var (
		item    *domain.AuctionItem
		winning *domain.Bid
	)
	err := s.run(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.items.Get(ctx, itemID)
		if err != nil {
			return err
		}
		if item.Purchased {
			return domain.ErrAlreadyPurchased
		}
		if item.State != domain.StateClosedWinner || item.WinnerID == nil {
			return domain.ErrNoWinner
		}
		if *item.WinnerID != callerID {
			log.Warn("Purchase confirmation rejected: caller is not the winner",
				zap.String("itemID", itemID.String()),
				zap.String("callerID", callerID.String()),
			)
			return domain.ErrNotWinner
		}

		winning, err = s.bids.FindLeader(ctx, itemID)
		if err != nil {
			return fmt.Errorf("find winning bid: %w", err)
		}
		if winning == nil {
			return domain.ErrNoWinner
		}

		if err := s.ledger.Credit(ctx, item.SellerID, winning.Amount); err != nil {
			return fmt.Errorf("credit seller: %w", err)
		}
		if err := item.MarkPurchased(); err != nil {
			return err
		}
		if err := s.items.Save(ctx, item); err != nil {
			return fmt.Errorf("save purchased item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Purchase confirmed",
		zap.String("itemID", itemID.String()),
		zap.String("winnerID", callerID.String()),
		zap.String("sellerID", item.SellerID.String()),
		zap.Int64("amount", winning.Amount),
	)

	// Best-effort, and only once the settlement is durable: the notifier
	// backgrounds its own delivery, so a slow or failed notification never
	// delays or fails settlement.
	if s.notifier != nil {
		s.notifier.NotifyWinner(ctx, callerID, item, winning.Amount)
	}

	return item, nil
}
