package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/casedrop/engine/internal/domain"
)

// MockCatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetCase(ctx context.Context, caseID int) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCatalogRepository) GetSymbol(ctx context.Context, symbolID int) (*domain.Symbol, error) {
	args := m.Called(ctx, symbolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Symbol), args.Error(1)
}

func (m *MockCatalogRepository) GetCaseSymbols(ctx context.Context, caseID int) ([]domain.Symbol, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Symbol), args.Error(1)
}

func (m *MockCatalogRepository) ListCases(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}
