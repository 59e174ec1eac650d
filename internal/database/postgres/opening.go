package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casedrop/engine/internal/domain"
)

// OpeningRepository implements the opening-record repository for PostgreSQL.
// Records are insert-only; no update or delete statement exists here.
type OpeningRepository struct {
	db *pgxpool.Pool
}

// NewOpeningRepository creates a new OpeningRepository
func NewOpeningRepository(db *pgxpool.Pool) *OpeningRepository {
	return &OpeningRepository{db: db}
}

const (
	queryInsertRecord = `INSERT INTO opening_records
		(id, user_id, case_id, symbol_id, cost, reward, server_seed, client_seed,
		 nonce, random_value, pity_activated, balance_before, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	queryRecentByUser = `SELECT id, user_id, case_id, symbol_id, cost, reward, server_seed, client_seed,
			nonce, random_value, pity_activated, balance_before, balance_after, created_at
		FROM opening_records
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	// The upsert makes the increment a single atomic statement, so two
	// concurrent wagers can never draw the same nonce.
	queryAllocateNonce = `INSERT INTO wager_nonces (user_id, next) VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET next = wager_nonces.next + 1
		RETURNING next`
)

func (r *OpeningRepository) InsertRecord(ctx context.Context, record *domain.OpeningRecord) error {
	_, err := r.db.Exec(ctx, queryInsertRecord,
		record.ID, record.UserID, record.CaseID, record.SymbolID,
		record.Cost, record.Reward, record.ServerSeed, record.ClientSeed,
		record.Nonce, record.RandomValue, record.PityActivated,
		record.BalanceBefore, record.BalanceAfter, record.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: user %s nonce %d", domain.ErrDuplicateWager, record.UserID, record.Nonce)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertRecord, err)
	}
	return nil
}

func (r *OpeningRepository) GetRecentByUser(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error) {
	rows, err := r.db.Query(ctx, queryRecentByUser, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRecords, err)
	}
	defer rows.Close()

	var records []domain.OpeningRecord
	for rows.Next() {
		var rec domain.OpeningRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CaseID, &rec.SymbolID,
			&rec.Cost, &rec.Reward, &rec.ServerSeed, &rec.ClientSeed,
			&rec.Nonce, &rec.RandomValue, &rec.PityActivated,
			&rec.BalanceBefore, &rec.BalanceAfter, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRecords, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryRecords, err)
	}
	return records, nil
}

func (r *OpeningRepository) AllocateNonce(ctx context.Context, userID string) (int64, error) {
	var nonce int64
	if err := r.db.QueryRow(ctx, queryAllocateNonce, userID).Scan(&nonce); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToAllocateNonce, err)
	}
	return nonce, nil
}
