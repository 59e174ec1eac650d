package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casedrop/engine/internal/domain"
)

// LedgerRepository implements the ledger repository for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const (
	queryEventByKey = `SELECT balance_after FROM credit_events WHERE idempotency_key = $1`

	queryEnsureBalance = `INSERT INTO balances (user_id, amount) VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING`

	// The non-negativity guard lives in the WHERE clause: an overdraft
	// matches zero rows instead of writing a negative amount, so the check
	// and the write are one indivisible statement.
	queryApplyDelta = `UPDATE balances
		SET amount = amount + $2, updated_at = now()
		WHERE user_id = $1 AND amount + $2 >= 0
		RETURNING amount`

	queryInsertEvent = `INSERT INTO credit_events (user_id, delta, reason, idempotency_key, balance_after)
		VALUES ($1, $2, $3, $4, $5)`

	queryGetBalance = `SELECT amount FROM balances WHERE user_id = $1`

	queryGetEvents = `SELECT id, user_id, delta, reason, COALESCE(idempotency_key, ''), balance_after, created_at
		FROM credit_events
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
)

// ApplyDelta applies a signed delta and its audit event in one transaction.
// Replay of a known idempotency key returns the stored resulting balance.
func (r *LedgerRepository) ApplyDelta(ctx context.Context, userID string, delta int64, reason, idempotencyKey string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer tx.Rollback(ctx)

	if idempotencyKey != "" {
		var stored int64
		err := tx.QueryRow(ctx, queryEventByKey, idempotencyKey).Scan(&stored)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCheckIdempotency, err)
		}
	}

	if _, err := tx.Exec(ctx, queryEnsureBalance, userID); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToEnsureBalanceRow, err)
	}

	var newBalance int64
	err = tx.QueryRow(ctx, queryApplyDelta, userID, delta).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToApplyDelta, err)
	}

	key := toNullableKey(idempotencyKey)
	if _, err := tx.Exec(ctx, queryInsertEvent, userID, delta, reason, key, newBalance); err != nil {
		// A concurrent request won the race on this key; its stored result
		// is the answer for both callers.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			_ = tx.Rollback(ctx)
			var stored int64
			if scanErr := r.db.QueryRow(ctx, queryEventByKey, idempotencyKey).Scan(&stored); scanErr != nil {
				return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCheckIdempotency, scanErr)
			}
			return stored, nil
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertEvent, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return newBalance, nil
}

// GetBalance returns the user's balance, creating the row lazily at zero.
func (r *LedgerRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var amount int64
	err := r.db.QueryRow(ctx, queryGetBalance, userID).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetBalance, err)
	}
	return amount, nil
}

// GetEvents returns the user's most recent credit events, newest first.
func (r *LedgerRepository) GetEvents(ctx context.Context, userID string, limit int) ([]domain.CreditEvent, error) {
	rows, err := r.db.Query(ctx, queryGetEvents, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	defer rows.Close()

	var events []domain.CreditEvent
	for rows.Next() {
		var ev domain.CreditEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Delta, &ev.Reason, &ev.IdempotencyKey, &ev.BalanceAfter, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	return events, nil
}

// toNullableKey maps an empty key to NULL so unkeyed deltas never collide
// on the unique index.
func toNullableKey(key string) any {
	if key == "" {
		return nil
	}
	return key
}
