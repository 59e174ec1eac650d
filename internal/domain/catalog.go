package domain

import (
	"fmt"
	"math"
)

// RarityTier orders symbols from most to least common.
type RarityTier int

const (
	RarityCommon RarityTier = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

// String returns the lowercase tier name used in persistence and API payloads.
func (r RarityTier) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// Symbol is one possible reward in a case pool. Owned by the catalog;
// the engine only reads it.
type Symbol struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Value  int64      `json:"value"`
	Rarity RarityTier `json:"rarity"`
	Active bool       `json:"active"`
}

// PoolEntry pairs a symbol with its drop weight. Weights are percentages
// and must sum to 100 across a case's pool.
type PoolEntry struct {
	SymbolID int     `json:"symbol_id"`
	Weight   float64 `json:"weight"`
}

// Case is an openable loot box: a cost and a weighted, ordered symbol pool.
type Case struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Cost   int64       `json:"cost"`
	Pool   []PoolEntry `json:"pool"`
	Active bool        `json:"active"`
}

// WeightSumTolerance is the allowed drift on a pool's weight sum.
const WeightSumTolerance = 0.01

// ExpectedWeightSum is the required total of a case pool's weights.
const ExpectedWeightSum = 100.0

// Validate checks the openability invariants: positive cost, non-empty pool,
// non-negative weights summing to 100 within tolerance.
func (c *Case) Validate() error {
	if c.Cost <= 0 {
		return fmt.Errorf("%w: case %d cost must be positive, got %d", ErrInvalidCaseConfig, c.ID, c.Cost)
	}
	if len(c.Pool) == 0 {
		return fmt.Errorf("%w: case %d: %s", ErrInvalidCaseConfig, c.ID, ErrMsgEmptyPool)
	}

	var sum float64
	for _, entry := range c.Pool {
		if entry.Weight < 0 {
			return fmt.Errorf("%w: case %d symbol %d has negative weight %f", ErrInvalidCaseConfig, c.ID, entry.SymbolID, entry.Weight)
		}
		sum += entry.Weight
	}
	if math.Abs(sum-ExpectedWeightSum) > WeightSumTolerance {
		return fmt.Errorf("%w: case %d weights sum to %f, want %v +/- %v", ErrInvalidCaseConfig, c.ID, sum, ExpectedWeightSum, WeightSumTolerance)
	}
	return nil
}
