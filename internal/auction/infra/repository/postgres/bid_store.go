package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidStore persists bids in postgres. Leader lookups ride the (item_id,
// amount DESC) index.
type BidStore struct {
	pool *pgxpool.Pool
}

func NewBidStore(pool *pgxpool.Pool) *BidStore {
	return &BidStore{pool: pool}
}

func (s *BidStore) Save(ctx context.Context, bid *domain.Bid) error {
	q := db.QuerierFrom(ctx, s.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO bids (id, item_id, bidder_id, amount, placed_at)
		VALUES ($1, $2, $3, $4, $5)`,
		bid.ID, bid.ItemID, bid.BidderID, bid.Amount, bid.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

// FindLeader returns the highest bid on the item, or (nil, nil) when the item
// has no bids.
func (s *BidStore) FindLeader(ctx context.Context, itemID uuid.UUID) (*domain.Bid, error) {
	q := db.QuerierFrom(ctx, s.pool)
	row := q.QueryRow(ctx, `
		SELECT id, item_id, bidder_id, amount, placed_at
		FROM bids WHERE item_id = $1
		ORDER BY amount DESC LIMIT 1`,
		itemID,
	)

	var b domain.Bid
	err := row.Scan(&b.ID, &b.ItemID, &b.BidderID, &b.Amount, &b.PlacedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select leading bid: %w", err)
	}
	return &b, nil
}

func (s *BidStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*domain.Bid, error) {
	q := db.QuerierFrom(ctx, s.pool)
	rows, err := q.Query(ctx, `
		SELECT id, item_id, bidder_id, amount, placed_at
		FROM bids WHERE item_id = $1 ORDER BY placed_at`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("select bids: %w", err)
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		var b domain.Bid
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BidderID, &b.Amount, &b.PlacedAt); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, &b)
	}
	return bids, rows.Err()
}

func (s *BidStore) DeleteAllForItem(ctx context.Context, itemID uuid.UUID) error {
	q := db.QuerierFrom(ctx, s.pool)
	if _, err := q.Exec(ctx, `DELETE FROM bids WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("delete bids: %w", err)
	}
	return nil
}
