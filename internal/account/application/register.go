package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// RegisterDTO is the input for the Register use case.
type RegisterDTO struct {
	Email string
	Name  string
}

// RegisterUseCase creates a new account with a zero balance.
type RegisterUseCase struct {
	accounts domain.AccountStore
}

func NewRegisterUseCase(accounts domain.AccountStore) *RegisterUseCase {
	return &RegisterUseCase{accounts: accounts}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterDTO) (*domain.Account, error) {
	email := strings.TrimSpace(cmd.Email)
	name := strings.TrimSpace(cmd.Name)
	if email == "" || name == "" {
		return nil, domain.ErrInvalidAccount
	}

	account := domain.NewAccount(uuid.New(), email, name)
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}

	log.Info("Account registered",
		zap.String("accountID", account.ID.String()),
		zap.String("email", account.Email),
	)
	return account, nil
}
