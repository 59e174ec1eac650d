package settlement

import "time"

// Limits
const (
	DefaultStoreTimeout = 3 * time.Second
	MaxClientSeedLength = 128
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// Wager outcome labels
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
)

// Failure reason labels
const (
	FailReasonValidation        = "validation"
	FailReasonRateLimited       = "rate_limited"
	FailReasonInsufficientFunds = "insufficient_funds"
	FailReasonDuplicate         = "duplicate_nonce"
)

// Compensation outcome labels
const (
	CompensationApplied = "applied"
	CompensationFailed  = "failed"
	CompensationSkipped = "skipped"
)

// Error context strings
const (
	ErrContextFailedToGetBalance    = "failed to get balance"
	ErrContextFailedToAllocateNonce = "failed to allocate nonce"
	ErrContextFailedToGetSymbols    = "failed to get case symbols"
	ErrContextFailedToGetHistory    = "failed to get opening history"
	ErrContextFailedToDebit         = "failed to debit wager cost"
	ErrContextFailedToCredit        = "failed to credit wager reward"
	ErrContextFailedToPersist       = "failed to persist opening record"
)

// Log Messages
const (
	LogMsgOpenCaseCalled         = "OpenCase called"
	LogMsgWagerSettled           = "Wager settled"
	LogMsgAttemptingCompensation = "Settlement failed after debit, attempting compensation"
	LogMsgCompensationFailed     = "Compensation failed, manual reconciliation required"
)
