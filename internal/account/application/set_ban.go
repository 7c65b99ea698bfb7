package application

import (
	"context"
	"fmt"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SetBanDTO is the input for the SetBan use case.
type SetBanDTO struct {
	AdminID   uuid.UUID
	AccountID uuid.UUID
	Banned    bool
}

// SetBanUseCase bans or unbans an account. Only administrators may call it;
// a banned account keeps its balance but cannot place bids.
type SetBanUseCase struct {
	accounts domain.AccountStore
}

func NewSetBanUseCase(accounts domain.AccountStore) *SetBanUseCase {
	return &SetBanUseCase{accounts: accounts}
}

func (uc *SetBanUseCase) Execute(ctx context.Context, cmd SetBanDTO) (*domain.Account, error) {
	admin, err := uc.accounts.Get(ctx, cmd.AdminID)
	if err != nil {
		return nil, fmt.Errorf("set ban: %w", err)
	}
	if !admin.IsAdmin {
		return nil, domain.ErrNotAdmin
	}

	account, err := uc.accounts.Get(ctx, cmd.AccountID)
	if err != nil {
		return nil, fmt.Errorf("set ban: %w", err)
	}
	account.IsBanned = cmd.Banned
	if err := uc.accounts.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("set ban: %w", err)
	}

	log.Info("Account ban updated",
		zap.String("adminID", cmd.AdminID.String()),
		zap.String("accountID", cmd.AccountID.String()),
		zap.Bool("banned", cmd.Banned),
	)
	return account, nil
}
