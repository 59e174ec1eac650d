package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; nothing left but to log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error. Rate-limit rejections additionally carry a Retry-After
// header so well-behaved clients can back off precisely.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error("Service call failed", "operation", opName, "error", err)

	var rlErr *domain.RateLimitError
	if errors.As(err, &rlErr) {
		seconds := int64(rlErr.RetryAfter / time.Second)
		if rlErr.RetryAfter%time.Second != 0 {
			seconds++
		}
		w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
	}

	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, statusCode, userMsg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgTooManyRequestsError = "Too many requests. Please try again later."

	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgUserInactiveError      = "Account is inactive"
	ErrMsgCaseNotFoundError      = "Case not found"
	ErrMsgCaseInactiveError      = "Case is not available"
	ErrMsgSymbolNotFoundError    = "Symbol not found"
	ErrMsgNotEnoughCreditsError  = "Not enough credits"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
	ErrMsgSettlementPendingError = "Wager could not be completed. Contact support with your request ID."
	ErrMsgDuplicateWagerError    = "Wager was already settled. Please try again."
	ErrMsgUnavailableError       = "Server is temporarily unavailable. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// status codes and messages without leaking internals.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusBadRequest, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, ErrMsgUserInactiveError
	case errors.Is(err, domain.ErrCaseNotFound):
		return http.StatusBadRequest, ErrMsgCaseNotFoundError
	case errors.Is(err, domain.ErrCaseInactive):
		return http.StatusBadRequest, ErrMsgCaseInactiveError
	case errors.Is(err, domain.ErrEmptyPool):
		return http.StatusBadRequest, ErrMsgCaseInactiveError
	case errors.Is(err, domain.ErrSymbolNotFound):
		return http.StatusBadRequest, ErrMsgSymbolNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCreditsError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrMsgTooManyRequestsError
	case errors.Is(err, domain.ErrDuplicateWager):
		return http.StatusConflict, ErrMsgDuplicateWagerError
	case errors.Is(err, domain.ErrCompensationFailed):
		return http.StatusInternalServerError, ErrMsgSettlementPendingError
	case errors.Is(err, domain.ErrEntropyUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
