package repository

import (
	"context"

	"github.com/casedrop/engine/internal/domain"
)

// Opening defines the interface for the immutable opening-record store.
// Records are insert-only: no update or delete operation exists.
type Opening interface {
	// InsertRecord persists one settled wager with full provenance. A record
	// already holding the same (user, nonce) pair surfaces as
	// domain.ErrDuplicateWager.
	InsertRecord(ctx context.Context, record *domain.OpeningRecord) error

	// GetRecentByUser returns the user's most recent records ordered by
	// recency (newest first), capped at limit. Feeds the loss-streak window.
	GetRecentByUser(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error)

	// AllocateNonce reserves the user's next wager nonce. Concurrent calls
	// must never observe the same value; a reserved nonce stays consumed
	// even when the wager it was drawn for fails.
	AllocateNonce(ctx context.Context, userID string) (int64, error)
}
