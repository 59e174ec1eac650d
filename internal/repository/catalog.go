package repository

import (
	"context"

	"github.com/casedrop/engine/internal/domain"
)

// Catalog defines the read-only interface over the case/symbol catalog.
// Catalog editing is owned by an external admin surface; the engine never
// writes here.
type Catalog interface {
	// GetCase returns a case with its weighted pool in catalog order,
	// or domain.ErrCaseNotFound.
	GetCase(ctx context.Context, caseID int) (*domain.Case, error)

	// GetSymbol returns one symbol or domain.ErrSymbolNotFound.
	GetSymbol(ctx context.Context, symbolID int) (*domain.Symbol, error)

	// GetCaseSymbols resolves a case's pool to its symbols in pool order.
	GetCaseSymbols(ctx context.Context, caseID int) ([]domain.Symbol, error)

	// ListCases returns all cases for load-time validation.
	ListCases(ctx context.Context) ([]domain.Case, error)
}

// User defines the lookup interface for already-verified user identities.
type User interface {
	// GetUser returns the user or domain.ErrUserNotFound.
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
