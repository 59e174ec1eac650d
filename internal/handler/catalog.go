package handler

import (
	"net/http"
	"strconv"

	"github.com/casedrop/engine/internal/catalog"
)

type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) HandleGetCase(w http.ResponseWriter, r *http.Request) {
	caseIDStr, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}
	caseID, err := strconv.Atoi(caseIDStr)
	if err != nil || caseID <= 0 {
		http.Error(w, ErrMsgInvalidCaseID, http.StatusBadRequest)
		return
	}

	openCase, err := h.service.GetCase(r.Context(), caseID)
	if err != nil {
		respondServiceError(w, r, "Get case", err)
		return
	}

	respondJSON(w, http.StatusOK, openCase)
}
