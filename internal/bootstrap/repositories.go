package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casedrop/engine/internal/database/postgres"
	"github.com/casedrop/engine/internal/repository"
)

// Repositories holds all repository implementations used by the engine.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User    repository.User
	Ledger  repository.Ledger
	Opening repository.Opening
	Catalog repository.Catalog
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:    postgres.NewUserRepository(dbPool),
		Ledger:  postgres.NewLedgerRepository(dbPool),
		Opening: postgres.NewOpeningRepository(dbPool),
		Catalog: postgres.NewCatalogRepository(dbPool),
	}
}
