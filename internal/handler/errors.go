package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidIntParam   = "Invalid %s query parameter"
	ErrMsgInvalidCaseID     = "Invalid case ID"
)

// Success messages for API responses
const (
	MsgCreditAppliedSuccess = "Credit applied successfully"
)
