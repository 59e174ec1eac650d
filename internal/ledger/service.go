// Package ledger is the only component allowed to mutate a user's credit
// balance. Each delta is atomic at the store, non-negative in effect, and
// idempotent under a caller-supplied key.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/logger"
	"github.com/casedrop/engine/internal/metrics"
	"github.com/casedrop/engine/internal/repository"
)

// Service defines the interface for credit ledger operations
type Service interface {
	// ApplyDelta applies a signed balance delta and returns the new
	// balance. Replay of a known idempotency key returns the prior
	// resulting balance without a second credit event.
	ApplyDelta(ctx context.Context, userID string, delta int64, reason, idempotencyKey string) (int64, error)
	GetBalance(ctx context.Context, userID string) (int64, error)
	GetEvents(ctx context.Context, userID string, limit int) ([]domain.CreditEvent, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

func (s *service) ApplyDelta(ctx context.Context, userID string, delta int64, reason, idempotencyKey string) (int64, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if reason == "" {
		return 0, fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	}

	balance, err := s.repo.ApplyDelta(ctx, userID, delta, reason, idempotencyKey)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			log.Info(LogMsgOverdraftRejected, "user_id", userID, "delta", delta, "reason", reason)
			return 0, err
		}
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToApplyDelta, err)
	}

	metrics.RecordCreditDelta(reason, delta)
	log.Info(LogMsgDeltaApplied, "user_id", userID, "delta", delta, "reason", reason, "new_balance", balance)
	return balance, nil
}

func (s *service) GetBalance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	balance, err := s.repo.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToGetBalance, err)
	}
	return balance, nil
}

func (s *service) GetEvents(ctx context.Context, userID string, limit int) ([]domain.CreditEvent, error) {
	if limit <= 0 || limit > MaxEventQueryLimit {
		limit = DefaultEventQueryLimit
	}
	events, err := s.repo.GetEvents(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetEvents, err)
	}
	return events, nil
}
