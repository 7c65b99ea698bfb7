package application

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/cristianortiz/pointAuction/internal/account/infra/repository/memory"
	"github.com/cristianortiz/pointAuction/internal/account/ledger"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/google/uuid"
)

func TestRegister(t *testing.T) {
	accounts := memory.NewAccountStore()
	uc := NewRegisterUseCase(accounts)

	account, err := uc.Execute(context.Background(), RegisterDTO{Email: "a@test.dev", Name: "Alice"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.Points != 0 {
		t.Errorf("expected zero starting balance, got %d", account.Points)
	}

	_, err = uc.Execute(context.Background(), RegisterDTO{Email: "a@test.dev", Name: "Alice Again"})
	if !errors.Is(err, domain.ErrAccountAlreadyExist) {
		t.Fatalf("expected ErrAccountAlreadyExist, got %v", err)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	uc := NewRegisterUseCase(memory.NewAccountStore())

	for _, cmd := range []RegisterDTO{{Email: "", Name: "x"}, {Email: "a@test.dev", Name: "  "}} {
		if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domain.ErrInvalidAccount) {
			t.Errorf("cmd %+v: expected ErrInvalidAccount, got %v", cmd, err)
		}
	}
}

func TestChargePoints(t *testing.T) {
	accounts := memory.NewAccountStore()
	charges := memory.NewChargeStore()
	l := ledger.New(accounts)
	uc := NewChargePointsUseCase(accounts, charges, l, db.Passthrough)

	account := domain.NewAccount(uuid.New(), "a@test.dev", "Alice")
	if err := accounts.Create(context.Background(), account); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	record, err := uc.Execute(context.Background(), ChargePointsDTO{AccountID: account.ID, Amount: 300})
	if err != nil {
		t.Fatalf("charge failed: %v", err)
	}
	if record.Amount != 300 {
		t.Errorf("expected record amount 300, got %d", record.Amount)
	}

	updated, err := accounts.Get(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if updated.Points != 300 {
		t.Errorf("expected balance 300, got %d", updated.Points)
	}

	history := NewChargeHistoryUseCase(charges)
	records, err := history.Execute(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 1 || records[0].Amount != 300 {
		t.Errorf("expected one charge of 300 in history, got %+v", records)
	}
}

func TestChargePoints_InvalidAmount(t *testing.T) {
	accounts := memory.NewAccountStore()
	uc := NewChargePointsUseCase(accounts, memory.NewChargeStore(), ledger.New(accounts), db.Passthrough)

	_, err := uc.Execute(context.Background(), ChargePointsDTO{AccountID: uuid.New(), Amount: 0})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestSetBan(t *testing.T) {
	accounts := memory.NewAccountStore()
	uc := NewSetBanUseCase(accounts)
	ctx := context.Background()

	admin := domain.NewAccount(uuid.New(), "admin@test.dev", "Admin")
	admin.IsAdmin = true
	target := domain.NewAccount(uuid.New(), "t@test.dev", "Target")
	for _, a := range []*domain.Account{admin, target} {
		if err := accounts.Create(ctx, a); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	banned, err := uc.Execute(ctx, SetBanDTO{AdminID: admin.ID, AccountID: target.ID, Banned: true})
	if err != nil {
		t.Fatalf("ban failed: %v", err)
	}
	if !banned.IsBanned {
		t.Error("expected account banned")
	}

	unbanned, err := uc.Execute(ctx, SetBanDTO{AdminID: admin.ID, AccountID: target.ID, Banned: false})
	if err != nil {
		t.Fatalf("unban failed: %v", err)
	}
	if unbanned.IsBanned {
		t.Error("expected account unbanned")
	}
}

func TestSetBan_NotAdmin(t *testing.T) {
	accounts := memory.NewAccountStore()
	uc := NewSetBanUseCase(accounts)
	ctx := context.Background()

	regular := domain.NewAccount(uuid.New(), "r@test.dev", "Regular")
	target := domain.NewAccount(uuid.New(), "t@test.dev", "Target")
	for _, a := range []*domain.Account{regular, target} {
		if err := accounts.Create(ctx, a); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	_, err := uc.Execute(ctx, SetBanDTO{AdminID: regular.ID, AccountID: target.ID, Banned: true})
	if !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}
