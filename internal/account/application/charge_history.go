package application

import (
	"context"
	"time"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/google/uuid"
)

// ChargeDTO is the outward-facing view of one top-up.
type ChargeDTO struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Amount    int64     `json:"amount"`
	ChargedAt time.Time `json:"charged_at"`
}

// ChargeHistoryUseCase lists an account's top-ups in chronological order.
type ChargeHistoryUseCase struct {
	charges domain.ChargeStore
}

func NewChargeHistoryUseCase(charges domain.ChargeStore) *ChargeHistoryUseCase {
	return &ChargeHistoryUseCase{charges: charges}
}

func (uc *ChargeHistoryUseCase) Execute(ctx context.Context, accountID uuid.UUID) ([]*ChargeDTO, error) {
	records, err := uc.charges.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result := make([]*ChargeDTO, len(records))
	for i, r := range records {
		result[i] = &ChargeDTO{
			ID:        r.ID,
			AccountID: r.AccountID,
			Amount:    r.Amount,
			ChargedAt: r.ChargedAt,
		}
	}
	return result, nil
}
