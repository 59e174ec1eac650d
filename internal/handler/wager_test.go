package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/entropy"
)

func TestHandleOpenCase(t *testing.T) {
	winResult := &domain.WagerResult{
		Success:    true,
		Symbol:     domain.Symbol{ID: 4, Name: "Gold Chip", Value: 150},
		Cost:       100,
		Reward:     150,
		NetResult:  50,
		NewBalance: 1050,
	}

	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*MockSettlementService)
		expectedStatus int
		expectedBody   string
		expectedHeader [2]string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing user ID",
			reqBody:        OpenCaseRequest{CaseID: 1},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "This field is required",
		},
		{
			name:    "Insufficient funds",
			reqBody: OpenCaseRequest{UserID: "u1", CaseID: 1},
			setupMocks: func(m *MockSettlementService) {
				m.On("OpenCase", mock.Anything, "u1", 1, "").Return(nil, domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughCreditsError,
		},
		{
			name:    "Rate limited with Retry-After",
			reqBody: OpenCaseRequest{UserID: "u1", CaseID: 1},
			setupMocks: func(m *MockSettlementService) {
				m.On("OpenCase", mock.Anything, "u1", 1, "").
					Return(nil, &domain.RateLimitError{RetryAfter: 1500 * time.Millisecond})
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   ErrMsgTooManyRequestsError,
			expectedHeader: [2]string{"Retry-After", "2"},
		},
		{
			name:    "Duplicate wager maps to conflict",
			reqBody: OpenCaseRequest{UserID: "u1", CaseID: 1},
			setupMocks: func(m *MockSettlementService) {
				m.On("OpenCase", mock.Anything, "u1", 1, "").Return(nil, domain.ErrDuplicateWager)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgDuplicateWagerError,
		},
		{
			name:    "Compensation failure keeps details internal",
			reqBody: OpenCaseRequest{UserID: "u1", CaseID: 1},
			setupMocks: func(m *MockSettlementService) {
				m.On("OpenCase", mock.Anything, "u1", 1, "").Return(nil, domain.ErrCompensationFailed)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgSettlementPendingError,
		},
		{
			name:    "Success",
			reqBody: OpenCaseRequest{UserID: "u1", CaseID: 1, ClientSeed: "seed"},
			setupMocks: func(m *MockSettlementService) {
				m.On("OpenCase", mock.Anything, "u1", 1, "seed").Return(winResult, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"new_balance":1050`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockSettlementService)
			if tt.setupMocks != nil {
				tt.setupMocks(mockSvc)
			}
			handler := NewWagerHandler(mockSvc)

			var body []byte
			if s, ok := tt.reqBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.reqBody)
			}

			req := httptest.NewRequest("POST", "/wager/open", bytes.NewBuffer(body))
			rec := httptest.NewRecorder()

			handler.HandleOpenCase(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
			if tt.expectedHeader[0] != "" {
				assert.Equal(t, tt.expectedHeader[1], rec.Header().Get(tt.expectedHeader[0]))
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleGetHistory(t *testing.T) {
	t.Run("missing user_id", func(t *testing.T) {
		handler := NewWagerHandler(new(MockSettlementService))
		req := httptest.NewRequest("GET", "/wager/history", nil)
		rec := httptest.NewRecorder()

		handler.HandleGetHistory(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing user_id query parameter")
	})

	t.Run("malformed limit", func(t *testing.T) {
		handler := NewWagerHandler(new(MockSettlementService))
		req := httptest.NewRequest("GET", "/wager/history?user_id=u1&limit=abc", nil)
		rec := httptest.NewRecorder()

		handler.HandleGetHistory(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty history is an empty array, not null", func(t *testing.T) {
		mockSvc := new(MockSettlementService)
		mockSvc.On("GetHistory", mock.Anything, "u1", 10).Return([]domain.OpeningRecord(nil), nil)
		handler := NewWagerHandler(mockSvc)

		req := httptest.NewRequest("GET", "/wager/history?user_id=u1&limit=10", nil)
		rec := httptest.NewRecorder()

		handler.HandleGetHistory(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"records":[]`)
	})
}

func TestHandleVerify(t *testing.T) {
	serverSeed := "aabbccdd"
	derived := entropy.DeriveRandom("client", serverSeed, 7)

	t.Run("valid provenance verifies", func(t *testing.T) {
		handler := NewWagerHandler(new(MockSettlementService))
		body, _ := json.Marshal(VerifyRequest{
			ServerSeed:  serverSeed,
			ClientSeed:  "client",
			Nonce:       7,
			RandomValue: derived,
		})

		req := httptest.NewRequest("POST", "/wager/verify", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		handler.HandleVerify(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"valid":true`)
	})

	t.Run("tampered random value fails", func(t *testing.T) {
		handler := NewWagerHandler(new(MockSettlementService))
		body, _ := json.Marshal(VerifyRequest{
			ServerSeed:  serverSeed,
			ClientSeed:  "client",
			Nonce:       7,
			RandomValue: derived + 0.1,
		})

		req := httptest.NewRequest("POST", "/wager/verify", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		handler.HandleVerify(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"valid":false`)
	})

	t.Run("missing server seed", func(t *testing.T) {
		handler := NewWagerHandler(new(MockSettlementService))
		body, _ := json.Marshal(VerifyRequest{ClientSeed: "client", Nonce: 7})

		req := httptest.NewRequest("POST", "/wager/verify", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()

		handler.HandleVerify(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
