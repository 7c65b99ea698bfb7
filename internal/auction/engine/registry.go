package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianortiz/pointAuction/internal/account/ledger"
	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuctionRegistry owns auction item records and their lifecycle transitions:
// listing, the one-time close at deadline, and administrative deletion.
type AuctionRegistry struct {
	locks  *ItemLocks
	items  domain.AuctionItemStore
	bids   domain.BidStore
	book   *BidBook
	ledger *ledger.Ledger
	run    db.Runner
}

func NewAuctionRegistry(
	locks *ItemLocks,
	items domain.AuctionItemStore,
	bids domain.BidStore,
	book *BidBook,
	ledger *ledger.Ledger,
	run db.Runner,
) *AuctionRegistry {
	return &AuctionRegistry{
		locks:  locks,
		items:  items,
		bids:   bids,
		book:   book,
		ledger: ledger,
		run:    run,
	}
}

// ListItem creates a new item in the open state.
func (r *AuctionRegistry) ListItem(ctx context.Context, sellerID uuid.UUID, name, description string, floorPrice int64, deadline time.Time) (*domain.AuctionItem, error) {
	if name == "" || floorPrice < 0 {
		return nil, domain.ErrInvalidItem
	}
	if !deadline.After(time.Now()) {
		return nil, domain.ErrInvalidItem
	}

	item := domain.NewAuctionItem(uuid.New(), name, description, floorPrice, deadline, sellerID)
	if err := r.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	log.Info("Item listed",
		zap.String("itemID", item.ID.String()),
		zap.String("sellerID", sellerID.String()),
		zap.Int64("floorPrice", floorPrice),
		zap.Time("deadline", deadline),
	)
	return item, nil
}

// CloseIfExpired closes an open item whose deadline has passed, recording the
// leader at the instant of closing as winner (or no winner when the item has
// no bids). Idempotent: a closed item or an unexpired deadline is a no-op.
// The returned bool reports whether this call performed the transition, so a
// caller reacting to closes (the scheduler's callback) fires exactly once per
// item even when sweeps overlap. Runs under the item's lock, held through the
// commit, so no bid can be accepted once closing begins.
func (r *AuctionRegistry) CloseIfExpired(ctx context.Context, itemID uuid.UUID, now time.Time) (*domain.AuctionItem, bool, error) {
	m := r.locks.Get(itemID)
	m.Lock()
	defer m.Unlock()

	var (
		item   *domain.AuctionItem
		leader *domain.Bid
		closed bool
	)
	err := r.run(ctx, func(ctx context.Context) error {
		var err error
		item, err = r.items.Get(ctx, itemID)
		if err != nil {
			return err
		}
		if !item.Open() || !item.Expired(now) {
			return nil
		}

		leader, err = r.book.Leader(ctx, itemID)
		if err != nil {
			return err
		}
		if err := item.Close(leader); err != nil {
			return err
		}
		if err := r.items.Save(ctx, item); err != nil {
			return fmt.Errorf("save closed item: %w", err)
		}
		closed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if !closed {
		return item, false, nil
	}

	if leader != nil {
		log.Info("Auction closed with winner",
			zap.String("itemID", itemID.String()),
			zap.String("winnerID", leader.BidderID.String()),
			zap.Int64("amount", leader.Amount),
		)
	} else {
		log.Info("Auction closed with no winner",
			zap.String("itemID", itemID.String()),
		)
	}
	return item, true, nil
}

// DeleteItem removes an item through the administrative path, cascading over
// its bids first. If a leader still holds escrowed points (open item, or
// closed-with-winner but never purchased), the escrow is refunded before the
// bids are deleted so no points are lost. Refund, cascade and removal commit
// as one unit of work under the item's lock.
func (r *AuctionRegistry) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	m := r.locks.Get(itemID)
	m.Lock()
	defer m.Unlock()

	err := r.run(ctx, func(ctx context.Context) error {
		item, err := r.items.Get(ctx, itemID)
		if err != nil {
			return err
		}

		leader, err := r.book.Leader(ctx, itemID)
		if err != nil {
			return err
		}
		if leader != nil && !item.Purchased {
			if err := r.ledger.Credit(ctx, leader.BidderID, leader.Amount); err != nil {
				return fmt.Errorf("refund escrow on delete: %w", err)
			}
			log.Info("Escrow refunded on item deletion",
				zap.String("itemID", itemID.String()),
				zap.String("bidderID", leader.BidderID.String()),
				zap.Int64("amount", leader.Amount),
			)
		}

		if err := r.bids.DeleteAllForItem(ctx, itemID); err != nil {
			return fmt.Errorf("delete bids: %w", err)
		}
		if err := r.items.Delete(ctx, itemID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.book.Forget(itemID)

	log.Info("Item deleted", zap.String("itemID", itemID.String()))
	return nil
}
