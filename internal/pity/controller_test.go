package pity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casedrop/engine/internal/domain"
)

// record builds a minimal opening record; newest-first ordering is the
// caller's responsibility.
func record(reward, cost int64, pityFlag bool) domain.OpeningRecord {
	return domain.OpeningRecord{Cost: cost, Reward: reward, PityActivated: pityFlag}
}

func testConfig() *domain.PityConfig {
	return &domain.PityConfig{
		CaseID:         1,
		LossThreshold:  5,
		MinSinceLast:   10,
		LookbackWindow: 20,
		PayoutTable: []domain.PityPayout{
			{Value: 60, Probability: 0.8},
			{Value: 150, Probability: 0.2},
		},
		ExpectedValueCap: 90,
	}
}

func TestLossStreak(t *testing.T) {
	t.Run("stops counting at first win", func(t *testing.T) {
		records := []domain.OpeningRecord{
			record(40, 100, false),
			record(40, 100, false),
			record(150, 100, false),
			record(40, 100, false),
		}
		assert.Equal(t, 2, LossStreak(records))
	})

	t.Run("empty history has zero streak", func(t *testing.T) {
		assert.Equal(t, 0, LossStreak(nil))
	})

	t.Run("win on newest record means zero streak", func(t *testing.T) {
		records := []domain.OpeningRecord{
			record(200, 100, false),
			record(40, 100, false),
		}
		assert.Equal(t, 0, LossStreak(records))
	})

	t.Run("break-even counts as a win", func(t *testing.T) {
		records := []domain.OpeningRecord{
			record(100, 100, false),
			record(40, 100, false),
		}
		assert.Equal(t, 0, LossStreak(records))
	})
}

func TestInCooldown(t *testing.T) {
	t.Run("no prior activation means no cooldown", func(t *testing.T) {
		records := []domain.OpeningRecord{record(40, 100, false), record(40, 100, false)}
		assert.False(t, InCooldown(testConfig(), records))
	})

	t.Run("recent activation blocks", func(t *testing.T) {
		records := make([]domain.OpeningRecord, 0, 6)
		for i := 0; i < 3; i++ {
			records = append(records, record(40, 100, false))
		}
		records = append(records, record(60, 100, true)) // 3 spins ago, minSinceLast is 10
		assert.True(t, InCooldown(testConfig(), records))
	})

	t.Run("activation past min-since-last does not block", func(t *testing.T) {
		records := make([]domain.OpeningRecord, 0, 12)
		for i := 0; i < 11; i++ {
			records = append(records, record(40, 100, false))
		}
		records = append(records, record(60, 100, true)) // 11 spins ago
		assert.False(t, InCooldown(testConfig(), records))
	})

	t.Run("activation outside lookback window is ignored", func(t *testing.T) {
		cfg := testConfig()
		cfg.LookbackWindow = 5
		records := make([]domain.OpeningRecord, 0, 7)
		for i := 0; i < 6; i++ {
			records = append(records, record(40, 100, false))
		}
		records = append(records, record(60, 100, true)) // position 6, window is 5
		assert.False(t, InCooldown(cfg, records))
	})
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()

	losses := func(n int) []domain.OpeningRecord {
		records := make([]domain.OpeningRecord, n)
		for i := range records {
			records[i] = record(40, 100, false)
		}
		return records
	}

	t.Run("activates at threshold with losing raw draw", func(t *testing.T) {
		decision := Evaluate(ctx, testConfig(), losses(5), 100, 40, 0.5)
		assert.True(t, decision.Activated)
		assert.Equal(t, int64(60), decision.Payout)
	})

	t.Run("does not activate below threshold", func(t *testing.T) {
		decision := Evaluate(ctx, testConfig(), losses(4), 100, 40, 0.5)
		assert.False(t, decision.Activated)
	})

	t.Run("never converts a winning raw draw", func(t *testing.T) {
		decision := Evaluate(ctx, testConfig(), losses(10), 100, 150, 0.5)
		assert.False(t, decision.Activated)
	})

	t.Run("break-even raw draw is not overridden", func(t *testing.T) {
		decision := Evaluate(ctx, testConfig(), losses(10), 100, 100, 0.5)
		assert.False(t, decision.Activated)
	})

	t.Run("cooldown suppresses activation", func(t *testing.T) {
		records := losses(5)
		records[2].PityActivated = true
		decision := Evaluate(ctx, testConfig(), records, 100, 40, 0.5)
		assert.False(t, decision.Activated)
	})

	t.Run("nil config disables pity", func(t *testing.T) {
		decision := Evaluate(ctx, nil, losses(10), 100, 40, 0.5)
		assert.False(t, decision.Activated)
	})

	t.Run("payout sampling reuses the wager random value", func(t *testing.T) {
		// r = 0.9 lands in the 150 band of the table (cumulative 0.8 < 0.9)
		decision := Evaluate(ctx, testConfig(), losses(5), 100, 40, 0.9)
		assert.True(t, decision.Activated)
		assert.Equal(t, int64(150), decision.Payout)
	})
}

func TestMapPayoutToSymbol(t *testing.T) {
	symbols := []domain.Symbol{
		{ID: 1, Value: 10},
		{ID: 2, Value: 50},
		{ID: 3, Value: 100},
		{ID: 4, Value: 500},
	}

	t.Run("exact match wins", func(t *testing.T) {
		assert.Equal(t, 3, MapPayoutToSymbol(symbols, 100))
	})

	t.Run("closest value wins", func(t *testing.T) {
		assert.Equal(t, 2, MapPayoutToSymbol(symbols, 60))
		assert.Equal(t, 4, MapPayoutToSymbol(symbols, 400))
	})

	t.Run("equidistant tie prefers the symbol that does not overpay", func(t *testing.T) {
		// 75 is exactly between 50 and 100
		assert.Equal(t, 2, MapPayoutToSymbol(symbols, 75))
	})

	t.Run("equal-value tie keeps catalog order", func(t *testing.T) {
		duplicates := []domain.Symbol{
			{ID: 7, Value: 40},
			{ID: 8, Value: 40},
		}
		assert.Equal(t, 7, MapPayoutToSymbol(duplicates, 90))
	})

	t.Run("target above all symbols maps to the highest", func(t *testing.T) {
		assert.Equal(t, 4, MapPayoutToSymbol(symbols, 10000))
	})

	t.Run("target below all symbols maps to the lowest", func(t *testing.T) {
		assert.Equal(t, 1, MapPayoutToSymbol(symbols, 0))
	})
}
