package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	accdomain "github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/account/ledger"
	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/cristianortiz/pointAuction/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// BidBook owns the per-item record of bids and the current leader. Placing a
// bid is a single unit of work under the item's lock: admissibility check,
// escrow debit of the new bidder, refund of the previous leader and the bid
// record commit together, without interleaving with any other bid, close or
// settlement on the same item. The lock is held through the commit, so a
// request arriving right behind another can never read state the first
// request has not finished committing.
type BidBook struct {
	locks    *ItemLocks
	items    domain.AuctionItemStore
	bids     domain.BidStore
	accounts accdomain.AccountStore
	ledger   *ledger.Ledger
	run      db.Runner

	// leaders indexes each item's current leading bid. Updated only while
	// holding the item's lock and only after the unit of work completed, so
	// it never holds a bid whose write was rolled back.
	lmu     sync.RWMutex
	leaders map[uuid.UUID]*domain.Bid
}

func NewBidBook(
	locks *ItemLocks,
	items domain.AuctionItemStore,
	bids domain.BidStore,
	accounts accdomain.AccountStore,
	ledger *ledger.Ledger,
	run db.Runner,
) *BidBook {
	return &BidBook{
		locks:    locks,
		items:    items,
		bids:     bids,
		accounts: accounts,
		ledger:   ledger,
		run:      run,
		leaders:  make(map[uuid.UUID]*domain.Bid),
	}
}

// PlaceBid attempts to place a bid of amount points by bidderID on itemID.
// On success the new bid is the leader, exactly its amount is escrowed from
// the bidder, and the previous leader (if any) has been fully refunded.
func (b *BidBook) PlaceBid(ctx context.Context, itemID, bidderID uuid.UUID, amount int64) (*domain.Bid, error) {
	if amount <= 0 {
		return nil, accdomain.ErrInvalidAmount
	}

	m := b.locks.Get(itemID)
	m.Lock()
	defer m.Unlock()

	var newBid *domain.Bid
	err := b.run(ctx, func(ctx context.Context) error {
		item, err := b.items.Get(ctx, itemID)
		if err != nil {
			return err
		}

		now := time.Now()
		// A pending-but-unprocessed close counts as closed: once the deadline
		// passes no bid may race the scheduler.
		if !item.Open() || item.Expired(now) {
			log.Warn("Bid rejected: auction closed",
				zap.String("itemID", itemID.String()),
				zap.String("bidderID", bidderID.String()),
				zap.Int64("amount", amount),
			)
			return domain.ErrAuctionClosed
		}

		bidder, err := b.accounts.Get(ctx, bidderID)
		if err != nil {
			return err
		}
		if bidder.IsBanned {
			log.Warn("Bid rejected: account banned",
				zap.String("itemID", itemID.String()),
				zap.String("bidderID", bidderID.String()),
			)
			return accdomain.ErrAccountBanned
		}

		leader, err := b.leaderLocked(ctx, itemID)
		if err != nil {
			return err
		}

		current := item.FloorPrice
		if leader != nil {
			current = leader.Amount
		}
		if amount <= current {
			log.Warn("Bid rejected: amount too low",
				zap.String("itemID", itemID.String()),
				zap.String("bidderID", bidderID.String()),
				zap.Int64("amount", amount),
				zap.Int64("currentPrice", current),
			)
			return domain.ErrBidTooLow
		}

		if bidderID == item.SellerID {
			log.Warn("Bid rejected: self bid",
				zap.String("itemID", itemID.String()),
				zap.String("bidderID", bidderID.String()),
			)
			return domain.ErrSelfBid
		}

		// Escrow swap: debit the new bidder first so an insufficient balance
		// aborts before anything else changed.
		if err := b.ledger.Debit(ctx, bidderID, amount); err != nil {
			return err
		}
		if leader != nil {
			if err := b.ledger.Credit(ctx, leader.BidderID, leader.Amount); err != nil {
				// Undo the debit so a refund failure leaves balances untouched.
				// Under WithTx the rollback covers this as well.
				if cerr := b.ledger.Credit(ctx, bidderID, amount); cerr != nil {
					return fmt.Errorf("refund previous leader: %w (compensation also failed: %v)", err, cerr)
				}
				return fmt.Errorf("refund previous leader: %w", err)
			}
		}

		newBid = domain.NewBid(uuid.New(), itemID, bidderID, amount, now)
		if err := b.bids.Save(ctx, newBid); err != nil {
			// Unwind the whole swap: take the refund back from the previous
			// leader and return the escrow to the bidder, so a store failure
			// leaves every balance where it started.
			if leader != nil {
				if derr := b.ledger.Debit(ctx, leader.BidderID, leader.Amount); derr != nil {
					return fmt.Errorf("save bid: %w (compensation also failed: %v)", err, derr)
				}
			}
			if cerr := b.ledger.Credit(ctx, bidderID, amount); cerr != nil {
				return fmt.Errorf("save bid: %w (compensation also failed: %v)", err, cerr)
			}
			return fmt.Errorf("save bid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	b.setLeader(itemID, newBid)

	log.Info("Bid placed",
		zap.String("itemID", itemID.String()),
		zap.String("bidID", newBid.ID.String()),
		zap.String("bidderID", bidderID.String()),
		zap.Int64("amount", amount),
	)
	return newBid, nil
}

// Leader returns the current leading bid for an item, or nil when the item
// has no bids. The caller must hold the item's lock: close and settlement use
// this to read a leader no in-flight bid is mid-swap on.
func (b *BidBook) Leader(ctx context.Context, itemID uuid.UUID) (*domain.Bid, error) {
	return b.leaderLocked(ctx, itemID)
}

// leaderLocked resolves the leader from the in-memory index, falling back to
// the bid store for items not yet seen by this process.
func (b *BidBook) leaderLocked(ctx context.Context, itemID uuid.UUID) (*domain.Bid, error) {
	b.lmu.RLock()
	leader, ok := b.leaders[itemID]
	b.lmu.RUnlock()
	if ok {
		return leader, nil
	}

	leader, err := b.bids.FindLeader(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("find leader: %w", err)
	}
	if leader != nil {
		b.setLeader(itemID, leader)
	}
	return leader, nil
}

func (b *BidBook) setLeader(itemID uuid.UUID, bid *domain.Bid) {
	b.lmu.Lock()
	b.leaders[itemID] = bid
	b.lmu.Unlock()
}

// Forget drops the leader index entry for an item; used when an item is
// deleted so a stale leader cannot resurface.
func (b *BidBook) Forget(itemID uuid.UUID) {
	b.lmu.Lock()
	delete(b.leaders, itemID)
	b.lmu.Unlock()
}
