package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToCheckIdempotency  = "failed to check idempotency key"
	ErrMsgFailedToEnsureBalanceRow  = "failed to ensure balance row"
	ErrMsgFailedToApplyDelta        = "failed to apply balance delta"
	ErrMsgFailedToInsertEvent       = "failed to insert credit event"
	ErrMsgFailedToGetBalance        = "failed to get balance"
	ErrMsgFailedToQueryEvents       = "failed to query credit events"
)

// Error Messages - Opening Record Operations
const (
	ErrMsgFailedToInsertRecord  = "failed to insert opening record"
	ErrMsgFailedToQueryRecords  = "failed to query opening records"
	ErrMsgFailedToAllocateNonce = "failed to allocate wager nonce"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToGetCase         = "failed to get case"
	ErrMsgFailedToGetPoolEntries  = "failed to get pool entries"
	ErrMsgFailedToGetSymbol       = "failed to get symbol"
	ErrMsgFailedToGetCaseSymbols  = "failed to get case symbols"
	ErrMsgFailedToQueryCases      = "failed to query cases"
	ErrMsgFailedToGetUserCoreData = "failed to get user core data"
)
