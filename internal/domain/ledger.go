package domain

import "time"

// Credit event reasons. Every balance mutation is tagged with one of these
// so the audit trail can be filtered by origin.
const (
	CreditReasonBet        = "bet"
	CreditReasonWin        = "win"
	CreditReasonRefund     = "refund"
	CreditReasonGrant      = "grant"
	CreditReasonWithdrawal = "withdrawal"
)

// CreditEvent is the audit and idempotency record for one applied balance
// delta. An idempotency key may be applied at most once; replay of a known
// key returns the stored resulting balance instead of reapplying the delta.
type CreditEvent struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	Delta          int64     `json:"delta"`
	Reason         string    `json:"reason"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
	BalanceAfter   int64     `json:"balance_after"`
	CreatedAt      time.Time `json:"created_at"`
}

// Balance is a user's current credit amount. Created lazily at 0 on first
// access and only ever updated through ledger deltas.
type Balance struct {
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}
