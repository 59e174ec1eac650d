package repository

import (
	"context"

	"github.com/casedrop/engine/internal/domain"
)

// Ledger defines the interface for balance persistence. ApplyDelta is the
// only operation that mutates a balance, and implementations must make the
// read-check-write indivisible at the storage layer (a single conditional
// update, not application-level locking) so it stays correct across
// concurrent service instances.
type Ledger interface {
	// ApplyDelta atomically applies a signed delta to the user's balance
	// and records a credit event. A delta that would take the balance
	// negative fails with domain.ErrInsufficientFunds and no partial
	// effect. When idempotencyKey is non-empty and was already applied,
	// the stored resulting balance is returned without reapplying.
	ApplyDelta(ctx context.Context, userID string, delta int64, reason, idempotencyKey string) (int64, error)

	// GetBalance returns the user's current balance, creating the row
	// lazily at zero on first access.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// GetEvents returns the user's most recent credit events, newest first.
	GetEvents(ctx context.Context, userID string, limit int) ([]domain.CreditEvent, error)
}
