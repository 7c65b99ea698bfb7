package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// balanceAdjuster is implemented by stores that can apply a balance delta
// atomically in the backing store (a relative UPDATE in postgres). When the
// store supports it the ledger delegates instead of read-modify-writing the
// whole account, so two transactions touching the same account from different
// items cannot lose an update across their commit boundaries.
type balanceAdjuster interface {
	AdjustPoints(ctx context.Context, accountID uuid.UUID, delta int64) error
}

// Ledger owns every account's point balance. Debit and Credit are atomic per
// account: a mutex keyed by account ID serializes the read-check-write cycle,
// so two concurrent debits can never both succeed against the same balance.
// An account may be touched from many items at once (previous leader on one,
// bidder on another), which is why the lock lives here and not on the item.
type Ledger struct {
	accounts domain.AccountStore

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func New(accounts domain.AccountStore) *Ledger {
	return &Ledger{
		accounts: accounts,
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// lockFor returns the mutex for an account, creating it on first use. Locks
// live for the process lifetime; accounts are never destroyed.
func (l *Ledger) lockFor(id uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// Debit removes amount points from the account. Returns
// domain.ErrInsufficientFunds without touching the balance when the account
// cannot cover the amount.
func (l *Ledger) Debit(ctx context.Context, accountID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	m := l.lockFor(accountID)
	m.Lock()
	defer m.Unlock()

	if adj, ok := l.accounts.(balanceAdjuster); ok {
		if err := adj.AdjustPoints(ctx, accountID, -amount); err != nil {
			if errors.Is(err, domain.ErrInsufficientFunds) {
				log.Warn("Debit rejected",
					zap.String("accountID", accountID.String()),
					zap.Int64("amount", amount),
				)
				return err
			}
			return fmt.Errorf("ledger debit: %w", err)
		}
		log.Debug("Debit applied",
			zap.String("accountID", accountID.String()),
			zap.Int64("amount", amount),
		)
		return nil
	}

	account, err := l.accounts.Get(ctx, accountID)
	if err != nil {
		return fmt.Errorf("ledger debit: %w", err)
	}
	if err := account.SubtractPoints(amount); err != nil {
		log.Warn("Debit rejected",
			zap.String("accountID", accountID.String()),
			zap.Int64("amount", amount),
			zap.Int64("balance", account.Points),
		)
		return err
	}
	if err := l.accounts.Save(ctx, account); err != nil {
		return fmt.Errorf("ledger debit: %w", err)
	}

	log.Debug("Debit applied",
		zap.String("accountID", accountID.String()),
		zap.Int64("amount", amount),
		zap.Int64("balance", account.Points),
	)
	return nil
}

// Credit adds amount points to the account. It never fails for balance
// reasons; only a missing account or a store failure surfaces as an error.
func (l *Ledger) Credit(ctx context.Context, accountID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}

	m := l.lockFor(accountID)
	m.Lock()
	defer m.Unlock()

	if adj, ok := l.accounts.(balanceAdjuster); ok {
		if err := adj.AdjustPoints(ctx, accountID, amount); err != nil {
			return fmt.Errorf("ledger credit: %w", err)
		}
		log.Debug("Credit applied",
			zap.String("accountID", accountID.String()),
			zap.Int64("amount", amount),
		)
		return nil
	}

	account, err := l.accounts.Get(ctx, accountID)
	if err != nil {
		return fmt.Errorf("ledger credit: %w", err)
	}
	account.AddPoints(amount)
	if err := l.accounts.Save(ctx, account); err != nil {
		return fmt.Errorf("ledger credit: %w", err)
	}

	log.Debug("Credit applied",
		zap.String("accountID", accountID.String()),
		zap.Int64("amount", amount),
		zap.Int64("balance", account.Points),
	)
	return nil
}
