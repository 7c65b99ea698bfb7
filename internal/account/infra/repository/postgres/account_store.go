package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountStore persists accounts in postgres. All methods resolve their
// querier through the context, so calls made inside db.WithTx share one
// transaction.
type AccountStore struct {
	pool *pgxpool.Pool
}

func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	q := db.QuerierFrom(ctx, s.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO accounts (id, email, name, points, is_admin, is_banned)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		account.ID, account.Email, account.Name, account.Points, account.IsAdmin, account.IsBanned,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAccountAlreadyExist
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *AccountStore) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	q := db.QuerierFrom(ctx, s.pool)
	row := q.QueryRow(ctx, `
		SELECT id, email, name, points, is_admin, is_banned, created_at, updated_at
		FROM accounts WHERE id = $1`, id,
	)

	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.Points, &a.IsAdmin, &a.IsBanned, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("select account: %w", err)
	}
	return &a, nil
}

func (s *AccountStore) Save(ctx context.Context, account *domain.Account) error {
	q := db.QuerierFrom(ctx, s.pool)
	tag, err := q.Exec(ctx, `
		UPDATE accounts
		SET email = $2, name = $3, points = $4, is_admin = $5, is_banned = $6, updated_at = NOW()
		WHERE id = $1`,
		account.ID, account.Email, account.Name, account.Points, account.IsAdmin, account.IsBanned,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// AdjustPoints applies a balance delta as a single relative UPDATE, so a
// concurrent transaction on the same account blocks on the row lock and then
// applies its delta on top of the committed balance instead of overwriting it.
// A negative delta that would take the balance below zero affects no row and
// maps to ErrInsufficientFunds.
func (s *AccountStore) AdjustPoints(ctx context.Context, accountID uuid.UUID, delta int64) error {
	q := db.QuerierFrom(ctx, s.pool)
	tag, err := q.Exec(ctx, `
		UPDATE accounts
		SET points = points + $2, updated_at = NOW()
		WHERE id = $1 AND points + $2 >= 0`,
		accountID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists); err != nil {
			return fmt.Errorf("adjust points: %w", err)
		}
		if !exists {
			return domain.ErrAccountNotFound
		}
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (s *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	q := db.QuerierFrom(ctx, s.pool)
	rows, err := q.Query(ctx, `
		SELECT id, email, name, points, is_admin, is_banned, created_at, updated_at
		FROM accounts ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Name, &a.Points, &a.IsAdmin, &a.IsBanned, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}
