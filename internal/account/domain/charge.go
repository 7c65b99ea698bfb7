package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChargeRecord is the append-only audit entry for a point top-up. It is never
// mutated after creation.
type ChargeRecord struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Amount    int64
	ChargedAt time.Time
}

// NewChargeRecord creates a charge record stamped with the current time.
func NewChargeRecord(id, accountID uuid.UUID, amount int64) *ChargeRecord {
	return &ChargeRecord{
		ID:        id,
		AccountID: accountID,
		Amount:    amount,
		ChargedAt: time.Now(),
	}
}
