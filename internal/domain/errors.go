package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound = "user not found"
	ErrMsgUserInactive = "user account is inactive"

	// Catalog errors
	ErrMsgCaseNotFound   = "case not found"
	ErrMsgCaseInactive   = "case is not active"
	ErrMsgSymbolNotFound = "symbol not found"
	ErrMsgEmptyPool      = "case has an empty symbol pool"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"

	// Configuration errors
	ErrMsgInvalidCaseConfig = "invalid case configuration"
	ErrMsgInvalidPityConfig = "invalid pity configuration"

	// Rate limiting errors
	ErrMsgRateLimited = "rate limit exceeded"

	// Entropy errors
	ErrMsgEntropyUnavailable = "secure randomness unavailable"

	// Settlement errors
	ErrMsgCompensationFailed = "compensating credit failed after partial settlement"
	ErrMsgDuplicateWager     = "a wager with this nonce is already settled"

	// Store errors
	ErrMsgStoreUnavailable = "persistent store unavailable"
	ErrMsgTxClosed         = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)
	ErrUserInactive = errors.New(ErrMsgUserInactive)

	// Catalog errors
	ErrCaseNotFound   = errors.New(ErrMsgCaseNotFound)
	ErrCaseInactive   = errors.New(ErrMsgCaseInactive)
	ErrSymbolNotFound = errors.New(ErrMsgSymbolNotFound)
	ErrEmptyPool      = errors.New(ErrMsgEmptyPool)

	// Ledger errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Configuration errors (fatal at load, never silently clamped)
	ErrInvalidCaseConfig = errors.New(ErrMsgInvalidCaseConfig)
	ErrInvalidPityConfig = errors.New(ErrMsgInvalidPityConfig)

	// Rate limiting errors
	ErrRateLimited = errors.New(ErrMsgRateLimited)

	// Entropy errors
	ErrEntropyUnavailable = errors.New(ErrMsgEntropyUnavailable)

	// Settlement errors
	ErrCompensationFailed = errors.New(ErrMsgCompensationFailed)
	ErrDuplicateWager     = errors.New(ErrMsgDuplicateWager)

	// Store errors
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
