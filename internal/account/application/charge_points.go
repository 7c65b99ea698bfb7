package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/account/ledger"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChargePointsDTO is the input for the ChargePoints use case.
type ChargePointsDTO struct {
	AccountID uuid.UUID
	Amount    int64
}

// ChargePointsUseCase tops up an account's balance and records the charge in
// the audit trail, both inside one unit of work.
type ChargePointsUseCase struct {
	accounts domain.AccountStore
	charges  domain.ChargeStore
	ledger   *ledger.Ledger
	run      db.Runner
}

func NewChargePointsUseCase(accounts domain.AccountStore, charges domain.ChargeStore, ledger *ledger.Ledger, run db.Runner) *ChargePointsUseCase {
	return &ChargePointsUseCase{
		accounts: accounts,
		charges:  charges,
		ledger:   ledger,
		run:      run,
	}
}

func (uc *ChargePointsUseCase) Execute(ctx context.Context, cmd ChargePointsDTO) (*domain.ChargeRecord, error) {
	if cmd.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	record := domain.NewChargeRecord(uuid.New(), cmd.AccountID, cmd.Amount)
	err := uc.run(ctx, func(ctx context.Context) error {
		if err := uc.ledger.Credit(ctx, cmd.AccountID, cmd.Amount); err != nil {
			return err
		}
		return uc.charges.Append(ctx, record)
	})
	if err != nil {
		return nil, fmt.Errorf("charge points: %w", err)
	}

	log.Info("Points charged",
		zap.String("accountID", cmd.AccountID.String()),
		zap.Int64("amount", cmd.Amount),
	)
	return record, nil
}
