package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/casedrop/engine/internal/domain"
)

// memoryRepository is an in-memory fake implementing repository.Ledger with
// the same atomicity, non-negativity and idempotency guarantees as the
// real store. Used by service tests and shared with the settlement tests'
// end-to-end scenarios.
type memoryRepository struct {
	mu       sync.Mutex
	balances map[string]int64
	byKey    map[string]int64 // idempotency key -> resulting balance
	events   map[string][]domain.CreditEvent
	nextID   int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		balances: make(map[string]int64),
		byKey:    make(map[string]int64),
		events:   make(map[string][]domain.CreditEvent),
	}
}

func (m *memoryRepository) ApplyDelta(_ context.Context, userID string, delta int64, reason, idempotencyKey string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idempotencyKey != "" {
		if prior, ok := m.byKey[idempotencyKey]; ok {
			return prior, nil
		}
	}

	next := m.balances[userID] + delta
	if next < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	m.balances[userID] = next

	m.nextID++
	event := domain.CreditEvent{
		ID:             m.nextID,
		UserID:         userID,
		Delta:          delta,
		Reason:         reason,
		IdempotencyKey: idempotencyKey,
		BalanceAfter:   next,
		CreatedAt:      time.Now(),
	}
	m.events[userID] = append([]domain.CreditEvent{event}, m.events[userID]...)

	if idempotencyKey != "" {
		m.byKey[idempotencyKey] = next
	}
	return next, nil
}

func (m *memoryRepository) GetBalance(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID], nil
}

func (m *memoryRepository) GetEvents(_ context.Context, userID string, limit int) ([]domain.CreditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := m.events[userID]
	if len(events) > limit {
		events = events[:limit]
	}
	out := make([]domain.CreditEvent, len(events))
	copy(out, events)
	return out, nil
}
