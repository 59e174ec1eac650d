package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/casedrop/engine/internal/domain"
)

// MockSettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) OpenCase(ctx context.Context, userID string, caseID int, clientSeed string) (*domain.WagerResult, error) {
	args := m.Called(ctx, userID, caseID, clientSeed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WagerResult), args.Error(1)
}

func (m *MockSettlementService) GetHistory(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningRecord), args.Error(1)
}

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ApplyDelta(ctx context.Context, userID string, delta int64, reason, idempotencyKey string) (int64, error) {
	args := m.Called(ctx, userID, delta, reason, idempotencyKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) GetEvents(ctx context.Context, userID string, limit int) ([]domain.CreditEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditEvent), args.Error(1)
}
