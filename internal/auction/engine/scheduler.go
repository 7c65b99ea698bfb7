package engine

import (
	"context"
	"time"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"go.uber.org/zap"
)

// ClosingScheduler periodically sweeps open items whose deadline has passed
// and closes each one through the registry. Because CloseIfExpired is
// idempotent and lock-guarded, a slow sweep overlapping the next tick is
// harmless: the second close of an item is a no-op.
type ClosingScheduler struct {
	interval time.Duration
	items    domain.AuctionItemStore
	registry *AuctionRegistry

	// onClosed, when set, is invoked for every item this scheduler actually
	// transitioned out of the open state. Used to fan out live updates.
	onClosed func(*domain.AuctionItem)
}

func NewClosingScheduler(interval time.Duration, items domain.AuctionItemStore, registry *AuctionRegistry) *ClosingScheduler {
	return &ClosingScheduler{
		interval: interval,
		items:    items,
		registry: registry,
	}
}

// OnClosed registers a callback for items closed by this scheduler. Must be
// called before Start.
func (s *ClosingScheduler) OnClosed(fn func(*domain.AuctionItem)) {
	s.onClosed = fn
}

// Start launches the background sweep goroutine; it stops when ctx is
// cancelled. A close in flight always completes atomically under the item
// lock, so shutdown can only ever abandon a not-yet-started close.
func (s *ClosingScheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Info("Closing scheduler started", zap.Duration("interval", s.interval))
		for {
			select {
			case <-ctx.Done():
				log.Info("Closing scheduler stopped")
				return
			case t := <-ticker.C:
				s.tick(ctx, t)
			}
		}
	}()
}

// tick closes every expired open item. One item failing never aborts the
// sweep; the item is retried on the next tick.
func (s *ClosingScheduler) tick(ctx context.Context, now time.Time) {
	expired, err := s.items.FindOpenExpired(ctx, now)
	if err != nil {
		log.Error("Closing sweep failed to list expired items", zap.Error(err))
		return
	}

	for _, item := range expired {
		closed, didClose, err := s.registry.CloseIfExpired(ctx, item.ID, now)
		if err != nil {
			log.Error("Failed to close expired item",
				zap.String("itemID", item.ID.String()),
				zap.Error(err),
			)
			continue
		}
		// An overlapping sweep may have closed the item after this sweep
		// listed it; only the call that performed the transition announces it.
		if s.onClosed != nil && didClose {
			s.onClosed(closed)
		}
	}
}
