package application

import (
	"context"

	"github.com/cristianortiz/pointAuction/internal/account/domain"
	"github.com/google/uuid"
)

// AccountService exposes the account module's use cases to the infra layer.
type AccountService interface {
	Register(ctx context.Context, cmd RegisterDTO) (*domain.Account, error)
	ChargePoints(ctx context.Context, cmd ChargePointsDTO) (*domain.ChargeRecord, error)
	SetBan(ctx context.Context, cmd SetBanDTO) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountDTO, error)
	ChargeHistory(ctx context.Context, accountID uuid.UUID) ([]*ChargeDTO, error)
}

type accountService struct {
	registerUC      *RegisterUseCase
	chargePointsUC  *ChargePointsUseCase
	setBanUC        *SetBanUseCase
	getAccountUC    *GetAccountUseCase
	chargeHistoryUC *ChargeHistoryUseCase
}

func NewAccountService(
	registerUC *RegisterUseCase,
	chargePointsUC *ChargePointsUseCase,
	setBanUC *SetBanUseCase,
	getAccountUC *GetAccountUseCase,
	chargeHistoryUC *ChargeHistoryUseCase,
) AccountService {
	return &accountService{
		registerUC:      registerUC,
		chargePointsUC:  chargePointsUC,
		setBanUC:        setBanUC,
		getAccountUC:    getAccountUC,
		chargeHistoryUC: chargeHistoryUC,
	}
}

func (s *accountService) Register(ctx context.Context, cmd RegisterDTO) (*domain.Account, error) {
	return s.registerUC.Execute(ctx, cmd)
}

func (s *accountService) ChargePoints(ctx context.Context, cmd ChargePointsDTO) (*domain.ChargeRecord, error) {
	return s.chargePointsUC.Execute(ctx, cmd)
}

func (s *accountService) SetBan(ctx context.Context, cmd SetBanDTO) (*domain.Account, error) {
	return s.setBanUC.Execute(ctx, cmd)
}

func (s *accountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountDTO, error) {
	return s.getAccountUC.Execute(ctx, accountID)
}

func (s *accountService) ChargeHistory(ctx context.Context, accountID uuid.UUID) ([]*ChargeDTO, error) {
	return s.chargeHistoryUC.Execute(ctx, accountID)
}
