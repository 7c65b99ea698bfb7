package postgres

import (
	"context"
	"fmt"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChargeStore persists the append-only top-up audit trail.
type ChargeStore struct {
	pool *pgxpool.Pool
}

func NewChargeStore(pool *pgxpool.Pool) *ChargeStore {
	return &ChargeStore{pool: pool}
}

func (s *ChargeStore) Append(ctx context.Context, record *domain.ChargeRecord) error {
	q := db.QuerierFrom(ctx, s.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO charge_records (id, account_id, amount, charged_at)
		VALUES ($1, $2, $3, $4)`,
		record.ID, record.AccountID, record.Amount, record.ChargedAt,
	)
	if err != nil {
		return fmt.Errorf("insert charge record: %w", err)
	}
	return nil
}

func (s *ChargeStore) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.ChargeRecord, error) {
	q := db.QuerierFrom(ctx, s.pool)
	rows, err := q.Query(ctx, `
		SELECT id, account_id, amount, charged_at
		FROM charge_records WHERE account_id = $1 ORDER BY charged_at`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("select charge records: %w", err)
	}
	defer rows.Close()

	var records []*domain.ChargeRecord
	for rows.Next() {
		var r domain.ChargeRecord
		if err := rows.Scan(&r.ID, &r.AccountID, &r.Amount, &r.ChargedAt); err != nil {
			return nil, fmt.Errorf("scan charge record: %w", err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
