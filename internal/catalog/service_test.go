package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedrop/engine/internal/domain"
)

func writePityFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pity.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validPityJSON = `[
	{
		"case_id": 1,
		"loss_threshold": 5,
		"min_since_last": 10,
		"lookback_window": 20,
		"payout_table": [
			{"value": 50, "probability": 0.8},
			{"value": 150, "probability": 0.2}
		],
		"ev_cap": 90
	}
]`

func TestNewService(t *testing.T) {
	t.Run("loads and validates pity configs", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		svc, err := NewService(repo, writePityFile(t, validPityJSON))
		require.NoError(t, err)

		cfg := svc.PityConfig(1)
		require.NotNil(t, cfg)
		assert.Equal(t, 5, cfg.LossThreshold)
	})

	t.Run("case without pity config returns nil", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		svc, err := NewService(repo, writePityFile(t, validPityJSON))
		require.NoError(t, err)
		assert.Nil(t, svc.PityConfig(99))
	})

	t.Run("rejects unnormalized payout table at load", func(t *testing.T) {
		broken := `[{"case_id": 1, "loss_threshold": 5, "min_since_last": 10,
			"lookback_window": 20, "ev_cap": 90,
			"payout_table": [{"value": 50, "probability": 0.5}]}]`
		_, err := NewService(new(MockCatalogRepository), writePityFile(t, broken))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidPityConfig)
	})

	t.Run("rejects EV above cap at load", func(t *testing.T) {
		broken := `[{"case_id": 1, "loss_threshold": 5, "min_since_last": 10,
			"lookback_window": 20, "ev_cap": 10,
			"payout_table": [{"value": 50, "probability": 1.0}]}]`
		_, err := NewService(new(MockCatalogRepository), writePityFile(t, broken))
		assert.ErrorIs(t, err, domain.ErrInvalidPityConfig)
	})

	t.Run("missing file is a load error", func(t *testing.T) {
		_, err := NewService(new(MockCatalogRepository), "/nonexistent/pity.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrContextFailedToLoadPity)
	})

	t.Run("empty path disables pity entirely", func(t *testing.T) {
		svc, err := NewService(new(MockCatalogRepository), "")
		require.NoError(t, err)
		assert.Nil(t, svc.PityConfig(1))
	})
}

func TestValidateCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts valid cases", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("ListCases", ctx).Return([]domain.Case{
			{ID: 1, Cost: 100, Pool: []domain.PoolEntry{{SymbolID: 1, Weight: 100}}},
		}, nil)

		svc, err := NewService(repo, "")
		require.NoError(t, err)
		assert.NoError(t, svc.ValidateCatalog(ctx))
		repo.AssertExpectations(t)
	})

	t.Run("rejects a case with drifting weights", func(t *testing.T) {
		repo := new(MockCatalogRepository)
		repo.On("ListCases", ctx).Return([]domain.Case{
			{ID: 1, Cost: 100, Pool: []domain.PoolEntry{{SymbolID: 1, Weight: 98}}},
		}, nil)

		svc, err := NewService(repo, "")
		require.NoError(t, err)
		assert.ErrorIs(t, svc.ValidateCatalog(ctx), domain.ErrInvalidCaseConfig)
	})
}
