package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casedrop/engine/internal/domain"
)

// CatalogRepository implements the catalog repository for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const (
	queryGetCase = `SELECT case_id, name, cost, active FROM cases WHERE case_id = $1`

	// Pool order is the persisted catalog order; selection boundaries
	// depend on it, so position drives the sort.
	queryGetPoolEntries = `SELECT symbol_id, weight FROM case_pool_entries
		WHERE case_id = $1 ORDER BY position`

	queryGetSymbol = `SELECT symbol_id, name, value, rarity, active FROM symbols WHERE symbol_id = $1`

	queryGetCaseSymbols = `SELECT s.symbol_id, s.name, s.value, s.rarity, s.active
		FROM case_pool_entries e
		JOIN symbols s ON s.symbol_id = e.symbol_id
		WHERE e.case_id = $1
		ORDER BY e.position`

	queryListCases = `SELECT case_id, name, cost, active FROM cases ORDER BY case_id`
)

func (r *CatalogRepository) GetCase(ctx context.Context, caseID int) (*domain.Case, error) {
	var c domain.Case
	err := r.db.QueryRow(ctx, queryGetCase, caseID).Scan(&c.ID, &c.Name, &c.Cost, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCase, err)
	}

	pool, err := r.getPoolEntries(ctx, caseID)
	if err != nil {
		return nil, err
	}
	c.Pool = pool
	return &c, nil
}

func (r *CatalogRepository) getPoolEntries(ctx context.Context, caseID int) ([]domain.PoolEntry, error) {
	rows, err := r.db.Query(ctx, queryGetPoolEntries, caseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPoolEntries, err)
	}
	defer rows.Close()

	var pool []domain.PoolEntry
	for rows.Next() {
		var entry domain.PoolEntry
		if err := rows.Scan(&entry.SymbolID, &entry.Weight); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPoolEntries, err)
		}
		pool = append(pool, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPoolEntries, err)
	}
	return pool, nil
}

func (r *CatalogRepository) GetSymbol(ctx context.Context, symbolID int) (*domain.Symbol, error) {
	var s domain.Symbol
	err := r.db.QueryRow(ctx, queryGetSymbol, symbolID).Scan(&s.ID, &s.Name, &s.Value, &s.Rarity, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSymbolNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSymbol, err)
	}
	return &s, nil
}

func (r *CatalogRepository) GetCaseSymbols(ctx context.Context, caseID int) ([]domain.Symbol, error) {
	rows, err := r.db.Query(ctx, queryGetCaseSymbols, caseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCaseSymbols, err)
	}
	defer rows.Close()

	var symbols []domain.Symbol
	for rows.Next() {
		var s domain.Symbol
		if err := rows.Scan(&s.ID, &s.Name, &s.Value, &s.Rarity, &s.Active); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCaseSymbols, err)
		}
		symbols = append(symbols, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCaseSymbols, err)
	}
	return symbols, nil
}

func (r *CatalogRepository) ListCases(ctx context.Context) ([]domain.Case, error) {
	rows, err := r.db.Query(ctx, queryListCases)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryCases, err)
	}
	defer rows.Close()

	var cases []domain.Case
	for rows.Next() {
		var c domain.Case
		if err := rows.Scan(&c.ID, &c.Name, &c.Cost, &c.Active); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryCases, err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryCases, err)
	}

	for i := range cases {
		pool, err := r.getPoolEntries(ctx, cases[i].ID)
		if err != nil {
			return nil, err
		}
		cases[i].Pool = pool
	}
	return cases, nil
}
