package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the already-verified identity supplied by the external auth layer.
// The engine never performs credential checks itself.
type User struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// Provenance carries everything a third party needs to recompute the
// random value of a wager and verify fairness post hoc.
type Provenance struct {
	ServerSeed  string  `json:"server_seed"`
	ClientSeed  string  `json:"client_seed"`
	Nonce       int64   `json:"nonce"`
	RandomValue float64 `json:"random_value"`
}

// OpeningRecord is the immutable fact of one settled wager. It is created
// exactly once by the settlement orchestrator and never mutated or deleted;
// it serves as both the audit trail and the loss-streak history source.
type OpeningRecord struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"user_id"`
	CaseID        int       `json:"case_id"`
	SymbolID      int       `json:"symbol_id"`
	Cost          int64     `json:"cost"`
	Reward        int64     `json:"reward"`
	ServerSeed    string    `json:"server_seed"`
	ClientSeed    string    `json:"client_seed"`
	Nonce         int64     `json:"nonce"`
	RandomValue   float64   `json:"random_value"`
	PityActivated bool      `json:"pity_activated"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsLoss reports whether the record paid out less than it cost.
func (r *OpeningRecord) IsLoss() bool {
	return r.Reward < r.Cost
}

// WagerResult is the contract consumed by the front end after a settled wager.
type WagerResult struct {
	Success       bool       `json:"success"`
	Symbol        Symbol     `json:"symbol"`
	Cost          int64      `json:"cost"`
	Reward        int64      `json:"reward"`
	NetResult     int64      `json:"net_result"`
	NewBalance    int64      `json:"new_balance"`
	PityActivated bool       `json:"pity_activated"`
	Provenance    Provenance `json:"provenance"`
}
