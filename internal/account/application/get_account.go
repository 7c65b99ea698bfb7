package application

import (
	"context"
	"time"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/google/uuid"
)

// AccountDTO is the outward-facing view of an account.
type AccountDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Points    int64     `json:"points"`
	IsAdmin   bool      `json:"is_admin"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountDTO(a *domain.Account) *AccountDTO {
	return &AccountDTO{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Points:    a.Points,
		IsAdmin:   a.IsAdmin,
		IsBanned:  a.IsBanned,
		CreatedAt: a.CreatedAt,
	}
}

// GetAccountUseCase retrieves a single account by ID.
type GetAccountUseCase struct {
	accounts domain.AccountStore
}

func NewGetAccountUseCase(accounts domain.AccountStore) *GetAccountUseCase {
	return &GetAccountUseCase{accounts: accounts}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context, accountID uuid.UUID) (*AccountDTO, error) {
	account, err := uc.accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return toAccountDTO(account), nil
}
