package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `id, name, description, floor_price, deadline, seller_id, state, winner_id, purchased, created_at, updated_at`

// AuctionItemStore persists auction items in postgres. FindOpenExpired is
// backed by the partial index on open-item deadlines.
type AuctionItemStore struct {
	pool *pgxpool.Pool
}

func NewAuctionItemStore(pool *pgxpool.Pool) *AuctionItemStore {
	return &AuctionItemStore{pool: pool}
}

func scanItem(row pgx.Row) (*domain.AuctionItem, error) {
	var i domain.AuctionItem
	err := row.Scan(
		&i.ID, &i.Name, &i.Description, &i.FloorPrice, &i.Deadline,
		&i.SellerID, &i.State, &i.WinnerID, &i.Purchased, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *AuctionItemStore) Create(ctx context.Context, item *domain.AuctionItem) error {
	q := db.QuerierFrom(ctx, s.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO auction_items (id, name, description, floor_price, deadline, seller_id, state, winner_id, purchased)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.Name, item.Description, item.FloorPrice, item.Deadline,
		item.SellerID, item.State, item.WinnerID, item.Purchased,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (s *AuctionItemStore) Get(ctx context.Context, id uuid.UUID) (*domain.AuctionItem, error) {
	q := db.QuerierFrom(ctx, s.pool)
	item, err := scanItem(q.QueryRow(ctx, `SELECT `+itemColumns+` FROM auction_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("select item: %w", err)
	}
	return item, nil
}

func (s *AuctionItemStore) Save(ctx context.Context, item *domain.AuctionItem) error {
	q := db.QuerierFrom(ctx, s.pool)
	tag, err := q.Exec(ctx, `
		UPDATE auction_items
		SET name = $2, description = $3, floor_price = $4, deadline = $5,
		    state = $6, winner_id = $7, purchased = $8, updated_at = NOW()
		WHERE id = $1`,
		item.ID, item.Name, item.Description, item.FloorPrice, item.Deadline,
		item.State, item.WinnerID, item.Purchased,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (s *AuctionItemStore) FindOpenExpired(ctx context.Context, now time.Time) ([]*domain.AuctionItem, error) {
	return s.listWhere(ctx, `WHERE state = 'open' AND deadline <= $1 ORDER BY deadline`, now)
}

func (s *AuctionItemStore) List(ctx context.Context) ([]*domain.AuctionItem, error) {
	return s.listWhere(ctx, `ORDER BY created_at`)
}

func (s *AuctionItemStore) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.AuctionItem, error) {
	return s.listWhere(ctx, `WHERE seller_id = $1 ORDER BY created_at`, sellerID)
}

func (s *AuctionItemStore) ListByWinner(ctx context.Context, winnerID uuid.UUID) ([]*domain.AuctionItem, error) {
	return s.listWhere(ctx, `WHERE winner_id = $1 ORDER BY created_at`, winnerID)
}

func (s *AuctionItemStore) listWhere(ctx context.Context, clause string, args ...any) ([]*domain.AuctionItem, error) {
	q := db.QuerierFrom(ctx, s.pool)
	rows, err := q.Query(ctx, `SELECT `+itemColumns+` FROM auction_items `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	var items []*domain.AuctionItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *AuctionItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	q := db.QuerierFrom(ctx, s.pool)
	tag, err := q.Exec(ctx, `DELETE FROM auction_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
