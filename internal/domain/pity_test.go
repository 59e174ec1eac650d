package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPityConfig() *PityConfig {
	return &PityConfig{
		CaseID:         1,
		LossThreshold:  5,
		MinSinceLast:   10,
		LookbackWindow: 20,
		PayoutTable: []PityPayout{
			{Value: 50, Probability: 0.75},
			{Value: 200, Probability: 0.25},
		},
		ExpectedValueCap: 90,
	}
}

func TestPityConfigValidate(t *testing.T) {
	t.Run("accepts a normalized table under the EV cap", func(t *testing.T) {
		assert.NoError(t, validPityConfig().Validate())
	})

	t.Run("rejects probabilities not summing to one", func(t *testing.T) {
		cfg := validPityConfig()
		cfg.PayoutTable[1].Probability = 0.30
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPityConfig)
	})

	t.Run("tolerates sub-epsilon probability drift", func(t *testing.T) {
		cfg := validPityConfig()
		cfg.PayoutTable[1].Probability = 0.25 + 1e-9
		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects EV above the cap instead of clamping", func(t *testing.T) {
		cfg := validPityConfig()
		cfg.ExpectedValueCap = 80 // table EV is 87.5
		err := cfg.Validate()
		assert.ErrorIs(t, err, ErrInvalidPityConfig)
		assert.Contains(t, err.Error(), "exceeds cap")
	})

	t.Run("rejects empty payout table", func(t *testing.T) {
		cfg := validPityConfig()
		cfg.PayoutTable = nil
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPityConfig)
	})

	t.Run("rejects negative probability", func(t *testing.T) {
		cfg := validPityConfig()
		cfg.PayoutTable[0].Probability = -0.75
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPityConfig)
	})

	t.Run("rejects non-positive loss threshold", func(t *testing.T) {
		cfg := validPityConfig()
		cfg.LossThreshold = 0
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidPityConfig)
	})
}

func TestPityConfigExpectedValue(t *testing.T) {
	cfg := validPityConfig()
	assert.InDelta(t, 87.5, cfg.ExpectedValue(), 1e-9)
}
