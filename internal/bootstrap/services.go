package bootstrap

import (
	"fmt"

	"github.com/casedrop/engine/internal/catalog"
	"github.com/casedrop/engine/internal/config"
	"github.com/casedrop/engine/internal/ledger"
	"github.com/casedrop/engine/internal/ratelimit"
	"github.com/casedrop/engine/internal/settlement"
)

// Services holds the engine's service layer.
type Services struct {
	Catalog    catalog.Service
	Ledger     ledger.Service
	Settlement settlement.Service
}

// InitializeServices wires repositories and config into the service layer.
// The catalog load validates every case and pity config; a violation here
// aborts startup rather than serving a broken catalog.
func InitializeServices(cfg *config.Config, repos *Repositories) (*Services, error) {
	catalogSvc, err := catalog.NewService(repos.Catalog, cfg.PityConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInitCatalog, err)
	}

	ledgerSvc := ledger.NewService(repos.Ledger)

	limiter := ratelimit.NewLimiter(map[ratelimit.Action]ratelimit.Limit{
		ratelimit.ActionOpenCase: {Window: cfg.OpenWindow, Ceiling: cfg.OpenCeiling},
		ratelimit.ActionRead:     {Window: cfg.ReadWindow, Ceiling: cfg.ReadCeiling},
	}, cfg.LimiterCacheSize)
	detector := ratelimit.NewDetector(cfg.LimiterCacheSize)

	settlementSvc := settlement.NewService(
		repos.User,
		repos.Opening,
		catalogSvc,
		ledgerSvc,
		limiter,
		detector,
		cfg.StoreTimeout,
	)

	return &Services{
		Catalog:    catalogSvc,
		Ledger:     ledgerSvc,
		Settlement: settlementSvc,
	}, nil
}
