// Package catalog is the engine's read-only view of the case/symbol
// catalog. Catalog editing belongs to an external admin surface; this
// service only reads, and it refuses to serve configuration that fails
// validation.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/logger"
	"github.com/casedrop/engine/internal/repository"
)

// Service defines the catalog read interface consumed by the settlement
// orchestrator and the HTTP layer.
type Service interface {
	GetCase(ctx context.Context, caseID int) (*domain.Case, error)
	GetSymbol(ctx context.Context, symbolID int) (*domain.Symbol, error)
	GetCaseSymbols(ctx context.Context, caseID int) ([]domain.Symbol, error)

	// PityConfig returns the pity configuration for a case, or nil when
	// the case has no pity override configured.
	PityConfig(caseID int) *domain.PityConfig

	// ValidateCatalog checks every case's weight invariants. Run at
	// startup; violations are fatal configuration errors.
	ValidateCatalog(ctx context.Context) error
}

type service struct {
	repo        repository.Catalog
	pityConfigs map[int]*domain.PityConfig
}

// NewService creates a catalog service. Pity configs are external-supplied
// through a JSON file keyed by case; every entry is validated here, at load
// time, and any violation aborts startup rather than being clamped.
func NewService(repo repository.Catalog, pityConfigPath string) (Service, error) {
	svc := &service{
		repo:        repo,
		pityConfigs: make(map[int]*domain.PityConfig),
	}

	if pityConfigPath != "" {
		if err := svc.loadPityConfigs(pityConfigPath); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadPity, err)
		}
	}

	return svc, nil
}

func (s *service) loadPityConfigs(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read pity config file: %w", err)
	}

	var configs []domain.PityConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return fmt.Errorf("failed to parse pity config file: %w", err)
	}

	for i := range configs {
		cfg := &configs[i]
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.pityConfigs[cfg.CaseID] = cfg
	}
	return nil
}

func (s *service) GetCase(ctx context.Context, caseID int) (*domain.Case, error) {
	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetSymbol(ctx context.Context, symbolID int) (*domain.Symbol, error) {
	return s.repo.GetSymbol(ctx, symbolID)
}

func (s *service) GetCaseSymbols(ctx context.Context, caseID int) ([]domain.Symbol, error) {
	return s.repo.GetCaseSymbols(ctx, caseID)
}

func (s *service) PityConfig(caseID int) *domain.PityConfig {
	return s.pityConfigs[caseID]
}

func (s *service) ValidateCatalog(ctx context.Context) error {
	log := logger.FromContext(ctx)

	cases, err := s.repo.ListCases(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToListCases, err)
	}

	for i := range cases {
		if err := cases[i].Validate(); err != nil {
			return err
		}
	}

	log.Info(LogMsgCatalogValidated, "cases", len(cases), "pity_configs", len(s.pityConfigs))
	return nil
}
