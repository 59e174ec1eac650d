package settlement

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/ratelimit"
)

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockOpeningRepository
type MockOpeningRepository struct {
	mock.Mock
}

func (m *MockOpeningRepository) InsertRecord(ctx context.Context, record *domain.OpeningRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOpeningRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningRecord), args.Error(1)
}

func (m *MockOpeningRepository) AllocateNonce(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetCase(ctx context.Context, caseID int) (*domain.Case, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCatalogService) GetSymbol(ctx context.Context, symbolID int) (*domain.Symbol, error) {
	args := m.Called(ctx, symbolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Symbol), args.Error(1)
}

func (m *MockCatalogService) GetCaseSymbols(ctx context.Context, caseID int) ([]domain.Symbol, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Symbol), args.Error(1)
}

func (m *MockCatalogService) PityConfig(caseID int) *domain.PityConfig {
	args := m.Called(caseID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.PityConfig)
}

func (m *MockCatalogService) ValidateCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubLimiter returns a fixed decision for every check.
type stubLimiter struct {
	decision ratelimit.Decision
}

func (l *stubLimiter) Allow(_ context.Context, _ string, _ ratelimit.Action) ratelimit.Decision {
	return l.decision
}

func allowAll() *stubLimiter {
	return &stubLimiter{decision: ratelimit.Decision{Allowed: true}}
}

// fakeLedger is an in-memory ledger honoring the real idempotency and
// non-negativity contracts, so settlement tests exercise replay and
// compensation against genuine ledger semantics instead of canned returns.
type fakeLedger struct {
	mu       sync.Mutex
	balances map[string]int64
	byKey    map[string]int64
	events   []domain.CreditEvent
	failKeys map[string]error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balances: make(map[string]int64),
		byKey:    make(map[string]int64),
		failKeys: make(map[string]error),
	}
}

func (f *fakeLedger) seed(userID string, balance int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[userID] = balance
}

func (f *fakeLedger) failOn(idempotencyKey string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failKeys[idempotencyKey] = err
}

func (f *fakeLedger) ApplyDelta(_ context.Context, userID string, delta int64, reason, idempotencyKey string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failKeys[idempotencyKey]; ok {
		return 0, err
	}
	if stored, ok := f.byKey[idempotencyKey]; ok {
		return stored, nil
	}

	next := f.balances[userID] + delta
	if next < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	f.balances[userID] = next
	f.byKey[idempotencyKey] = next
	f.events = append(f.events, domain.CreditEvent{
		UserID:         userID,
		Delta:          delta,
		Reason:         reason,
		IdempotencyKey: idempotencyKey,
		BalanceAfter:   next,
		CreatedAt:      time.Now(),
	})
	return next, nil
}

func (f *fakeLedger) GetBalance(_ context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[userID], nil
}

func (f *fakeLedger) GetEvents(_ context.Context, userID string, limit int) ([]domain.CreditEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CreditEvent
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].UserID == userID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeLedger) eventsByReason(reason string) []domain.CreditEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.CreditEvent
	for _, ev := range f.events {
		if ev.Reason == reason {
			out = append(out, ev)
		}
	}
	return out
}
