package handler

import (
	"net/http"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/ledger"
)

type BalanceHandler struct {
	service ledger.Service
}

func NewBalanceHandler(service ledger.Service) *BalanceHandler {
	return &BalanceHandler{service: service}
}

type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

func (h *BalanceHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	balance, err := h.service.GetBalance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{UserID: userID, Balance: balance})
}

type CreditRequest struct {
	UserID         string `json:"user_id" validate:"required,max=64"`
	Amount         int64  `json:"amount" validate:"required,gt=0"`
	Reason         string `json:"reason" validate:"required,oneof=grant withdrawal"`
	IdempotencyKey string `json:"idempotency_key" validate:"required,max=128"`
}

type CreditResponse struct {
	Message    string `json:"message"`
	NewBalance int64  `json:"new_balance"`
}

// HandleCredit applies an out-of-band balance adjustment: a grant from an
// external purchase flow, or a withdrawal. The amount is always positive in
// the request; the reason decides the sign.
func (h *BalanceHandler) HandleCredit(w http.ResponseWriter, r *http.Request) {
	var req CreditRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Apply credit"); err != nil {
		return
	}

	delta := req.Amount
	if req.Reason == domain.CreditReasonWithdrawal {
		delta = -delta
	}

	balance, err := h.service.ApplyDelta(r.Context(), req.UserID, delta, req.Reason, req.IdempotencyKey)
	if err != nil {
		respondServiceError(w, r, "Apply credit", err)
		return
	}

	respondJSON(w, http.StatusOK, CreditResponse{
		Message:    MsgCreditAppliedSuccess,
		NewBalance: balance,
	})
}

type LedgerResponse struct {
	Events []domain.CreditEvent `json:"events"`
}

func (h *BalanceHandler) HandleGetEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	limit, ok := GetOptionalIntParam(r, w, "limit", ledger.DefaultEventQueryLimit)
	if !ok {
		return
	}

	events, err := h.service.GetEvents(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "Get ledger events", err)
		return
	}
	if events == nil {
		events = []domain.CreditEvent{}
	}

	respondJSON(w, http.StatusOK, LedgerResponse{Events: events})
}
