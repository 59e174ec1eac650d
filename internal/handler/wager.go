package handler

import (
	"net/http"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/entropy"
	"github.com/casedrop/engine/internal/settlement"
)

type WagerHandler struct {
	service settlement.Service
}

func NewWagerHandler(service settlement.Service) *WagerHandler {
	return &WagerHandler{service: service}
}

type OpenCaseRequest struct {
	UserID     string `json:"user_id" validate:"required,max=64"`
	CaseID     int    `json:"case_id" validate:"required,gt=0"`
	ClientSeed string `json:"client_seed" validate:"max=128"`
}

// HandleOpenCase settles one wager and returns the result with full
// provenance. The request's client seed is optional; an empty seed still
// yields a verifiable derivation.
func (h *WagerHandler) HandleOpenCase(w http.ResponseWriter, r *http.Request) {
	var req OpenCaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Open case"); err != nil {
		return
	}

	result, err := h.service.OpenCase(r.Context(), req.UserID, req.CaseID, req.ClientSeed)
	if err != nil {
		respondServiceError(w, r, "Open case", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type HistoryResponse struct {
	Records []domain.OpeningRecord `json:"records"`
}

func (h *WagerHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	limit, ok := GetOptionalIntParam(r, w, "limit", settlement.DefaultHistoryLimit)
	if !ok {
		return
	}

	records, err := h.service.GetHistory(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "Get history", err)
		return
	}
	if records == nil {
		records = []domain.OpeningRecord{}
	}

	respondJSON(w, http.StatusOK, HistoryResponse{Records: records})
}

type VerifyRequest struct {
	ServerSeed  string  `json:"server_seed" validate:"required"`
	ClientSeed  string  `json:"client_seed" validate:"max=128"`
	Nonce       int64   `json:"nonce" validate:"required,gt=0"`
	RandomValue float64 `json:"random_value"`
}

type VerifyResponse struct {
	Valid   bool    `json:"valid"`
	Derived float64 `json:"derived"`
}

// HandleVerify recomputes the random value from submitted provenance so
// players can check any past wager themselves.
func (h *WagerHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Verify wager"); err != nil {
		return
	}

	provenance := domain.Provenance{
		ServerSeed:  req.ServerSeed,
		ClientSeed:  req.ClientSeed,
		Nonce:       req.Nonce,
		RandomValue: req.RandomValue,
	}

	respondJSON(w, http.StatusOK, VerifyResponse{
		Valid:   entropy.Verify(provenance),
		Derived: entropy.DeriveRandom(req.ClientSeed, req.ServerSeed, req.Nonce),
	})
}
