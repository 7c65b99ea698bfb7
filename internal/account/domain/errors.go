package domain

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountAlreadyExist = errors.New("account already exists")
	ErrAccountBanned       = errors.New("account is banned")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrNotAdmin            = errors.New("account is not an administrator")
	ErrInvalidAccount      = errors.New("email and name are required")
)
