package ledger

// Query limits
const (
	DefaultEventQueryLimit = 50
	MaxEventQueryLimit     = 500
)

// Error context strings
const (
	ErrContextFailedToApplyDelta = "failed to apply balance delta"
	ErrContextFailedToGetBalance = "failed to get balance"
	ErrContextFailedToGetEvents  = "failed to get credit events"
)

// Log Messages
const (
	LogMsgDeltaApplied      = "Balance delta applied"
	LogMsgOverdraftRejected = "Delta rejected, would overdraw balance"
)
