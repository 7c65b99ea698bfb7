package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	accdomain "github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/google/uuid"
	"pgregory.net/rapid"
)

// Total points in the system never change while an auction runs: every
// accepted bid moves points into escrow and refunds the previous leader in
// full, and settlement releases the escrow to the seller.
func TestProperty_PointConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newTestEngine()
		ctx := context.Background()

		numBidders := rapid.IntRange(2, 6).Draw(t, "numBidders")
		initialBalance := rapid.Int64Range(100, 10000).Draw(t, "initialBalance")
		floorPrice := rapid.Int64Range(0, 50).Draw(t, "floorPrice")

		seller := accdomain.NewAccount(uuid.New(), "seller@test.dev", "seller")
		if err := e.accounts.Create(ctx, seller); err != nil {
			t.Fatalf("create seller failed: %v", err)
		}
		bidders := make([]*accdomain.Account, numBidders)
		for i := range bidders {
			b := accdomain.NewAccount(uuid.New(), uuid.New().String()+"@test.dev", "bidder")
			b.Points = initialBalance
			if err := e.accounts.Create(ctx, b); err != nil {
				t.Fatalf("create bidder failed: %v", err)
			}
			bidders[i] = b
		}
		initialTotal := initialBalance * int64(numBidders)

		deadline := time.Now().Add(time.Hour)
		item, err := e.registry.ListItem(ctx, seller.ID, "prop item", "", floorPrice, deadline)
		if err != nil {
			t.Fatalf("list item failed: %v", err)
		}

		totalPoints := func() int64 {
			var sum int64
			sum += e.balance(t, seller.ID)
			for _, b := range bidders {
				sum += e.balance(t, b.ID)
			}
			return sum
		}

		numOps := rapid.IntRange(1, 30).Draw(t, "numOps")
		var leaderAmount int64
		for i := 0; i < numOps; i++ {
			bidder := bidders[rapid.IntRange(0, numBidders-1).Draw(t, "bidderIdx")]
			amount := rapid.Int64Range(1, initialBalance+100).Draw(t, "amount")

			bid, err := e.book.PlaceBid(ctx, item.ID, bidder.ID, amount)
			switch {
			case err == nil:
				if bid.Amount <= leaderAmount {
					t.Fatalf("leader amount did not strictly increase: %d -> %d", leaderAmount, bid.Amount)
				}
				leaderAmount = bid.Amount
			case errors.Is(err, domain.ErrBidTooLow),
				errors.Is(err, accdomain.ErrInsufficientFunds):
				// Expected rejections; they must leave balances untouched.
			default:
				t.Fatalf("unexpected bid error: %v", err)
			}

			if got := totalPoints(); got+leaderAmount != initialTotal {
				t.Fatalf("conservation violated after op %d: balances %d + escrow %d != %d",
					i, got, leaderAmount, initialTotal)
			}
		}

		closed, _, err := e.registry.CloseIfExpired(ctx, item.ID, deadline.Add(time.Second))
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}

		if leaderAmount == 0 {
			if closed.State != domain.StateClosedNoWinner {
				t.Fatalf("expected closed_no_winner, got %s", closed.State)
			}
			return
		}

		if closed.State != domain.StateClosedWinner || closed.WinnerID == nil {
			t.Fatalf("expected closed_with_winner, got %s", closed.State)
		}
		if _, err := e.settlement.ConfirmPurchase(ctx, item.ID, *closed.WinnerID); err != nil {
			t.Fatalf("confirm purchase failed: %v", err)
		}

		// Settlement released the escrow to the seller: totals are whole again.
		if got := totalPoints(); got != initialTotal {
			t.Fatalf("conservation violated after settlement: %d != %d", got, initialTotal)
		}
		if got := e.balance(t, seller.ID); got != leaderAmount {
			t.Fatalf("expected seller balance %d, got %d", leaderAmount, got)
		}
	})
}
