package domain

import (
	"context"

	"github.com/google/uuid"
)

// AccountStore abstracts account persistence. Implementations must return
// ErrAccountNotFound for missing IDs and ErrAccountAlreadyExist on duplicate
// creation.
type AccountStore interface {
	Create(ctx context.Context, account *Account) error
	Get(ctx context.Context, id uuid.UUID) (*Account, error)
	Save(ctx context.Context, account *Account) error
	List(ctx context.Context) ([]*Account, error)
}

// ChargeStore is the append-only audit trail for point top-ups.
type ChargeStore interface {
	Append(ctx context.Context, record *ChargeRecord) error
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*ChargeRecord, error)
}
