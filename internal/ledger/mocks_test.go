package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/casedrop/engine/internal/domain"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ApplyDelta(ctx context.Context, userID string, delta int64, reason, idempotencyKey string) (int64, error) {
	args := m.Called(ctx, userID, delta, reason, idempotencyKey)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockRepository) GetEvents(ctx context.Context, userID string, limit int) ([]domain.CreditEvent, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditEvent), args.Error(1)
}
