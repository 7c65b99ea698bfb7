package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered user and their point balance. The balance
// is mutated only through the ledger; everything else reads it.
type Account struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Points    int64
	IsAdmin   bool
	IsBanned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates an account with a zero point balance.
func NewAccount(id uuid.UUID, email, name string) *Account {
	return &Account{
		ID:    id,
		Email: email,
		Name:  name,
	}
}

// AddPoints increases the balance. Amount must be positive; callers validate.
func (a *Account) AddPoints(amount int64) {
	if amount > 0 {
		a.Points += amount
	}
}

// SubtractPoints decreases the balance, failing with ErrInsufficientFunds
// when the balance cannot cover the amount.
func (a *Account) SubtractPoints(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.Points < amount {
		return ErrInsufficientFunds
	}
	a.Points -= amount
	return nil
}
