package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/transaction-ledger/mocks/port/usecase"
)

func newTransactionRouter(t *testing.T) (*gin.Engine, *usecase.MockTransferUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUseCase := usecase.NewMockTransferUseCase(t)
	h := NewTransactionHandler(mockUseCase, logger.NewNoopLogger())

	router := gin.New()
	router.POST("/v1/transaction/fund-transfer", h.FundTransfer)
	router.GET("/v1/transaction/:transactId", h.GetTransaction)
	return router, mockUseCase
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestTransactionHandler_FundTransfer(t *testing.T) {
	const path = "/v1/transaction/fund-transfer"
	validBody := `{"senderId":1,"senderAcctId":11,"recipientId":2,"recipientAcctId":22,"amount":"100.50","description":"rent"}`

	tests := []struct {
		name       string
		body       string
		setupMocks func(m *usecase.MockTransferUseCase)
		wantStatus int
		wantError  string
	}{
		{
			name: "created",
			body: validBody,
			setupMocks: func(m *usecase.MockTransferUseCase) {
				m.EXPECT().TransferFunds(mock.Anything, mock.MatchedBy(func(req *entity.TransferRequest) bool {
					return req.SenderAccountID == 11 && req.Amount.Equal(decimal.RequireFromString("100.50"))
				})).Return(&entity.TransactionResponse{
					TransactionID: 7,
					AccountID:     11,
					Amount:        decimal.RequireFromString("100.50"),
					Status:        entity.StatusCompleted,
				}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "validation failure",
			body: validBody,
			setupMocks: func(m *usecase.MockTransferUseCase) {
				m.EXPECT().TransferFunds(mock.Anything, mock.Anything).
					Return(nil, errs.NewValidationError("transfer must be from $2"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "transfer must be from $2",
		},
		{
			name: "sender not found",
			body: validBody,
			setupMocks: func(m *usecase.MockTransferUseCase) {
				m.EXPECT().TransferFunds(mock.Anything, mock.Anything).
					Return(nil, errs.NewNotFoundError("customer", "11", "sender details not found"))
			},
			wantStatus: http.StatusNotFound,
			wantError:  "sender details not found",
		},
		{
			name: "empty body reaches use case as nil",
			body: "",
			setupMocks: func(m *usecase.MockTransferUseCase) {
				m.EXPECT().TransferFunds(mock.Anything, (*entity.TransferRequest)(nil)).
					Return(nil, errs.ErrEmptyRequest)
			},
			wantStatus: http.StatusNotFound,
			wantError:  "transfer fund request must not be empty",
		},
		{
			name:       "malformed body",
			body:       `{"senderId":"x"`,
			setupMocks: func(m *usecase.MockTransferUseCase) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative amount",
			body:       `{"senderId":1,"senderAcctId":11,"recipientId":2,"recipientAcctId":22,"amount":-5}`,
			setupMocks: func(m *usecase.MockTransferUseCase) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "payment service down",
			body: validBody,
			setupMocks: func(m *usecase.MockTransferUseCase) {
				m.EXPECT().TransferFunds(mock.Anything, mock.Anything).
					Return(nil, errs.NewDownstreamError("payment-delivery", 502, "bad gateway", nil))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "payment-delivery responded 502: bad gateway",
		},
		{
			name: "unexpected failure hides details",
			body: validBody,
			setupMocks: func(m *usecase.MockTransferUseCase) {
				m.EXPECT().TransferFunds(mock.Anything, mock.Anything).
					Return(nil, errors.New("pq: relation does not exist"))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  errs.ErrInternalServer.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockUseCase := newTransactionRouter(t)
			tt.setupMocks(mockUseCase)

			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus >= 400 {
				body := decodeError(t, rec)
				assert.Equal(t, tt.wantStatus, body.Status)
				assert.Equal(t, http.StatusText(tt.wantStatus), body.Error)
				assert.Equal(t, path, body.Path)
				if tt.wantError != "" {
					assert.Equal(t, tt.wantError, body.Message)
				}
			}
		})
	}
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	created := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		router, mockUseCase := newTransactionRouter(t)
		mockUseCase.EXPECT().GetTransaction(mock.Anything, uint64(42)).Return(&entity.Transaction{
			ID:                 42,
			SenderAccountID:    11,
			RecipientAccountID: 22,
			Amount:             decimal.RequireFromString("20.00"),
			TransactionType:    entity.TransactionTypeTransfer,
			Status:             entity.StatusCompleted,
			Closed:             true,
			CreatedDate:        created,
		}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transaction/42", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.TransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, uint64(42), body.TransactID)
		assert.Equal(t, "COMPLETED", body.TransactStatus)
		assert.True(t, body.Closed)
		assert.True(t, created.Equal(body.CreatedDate))
	})

	t.Run("not found", func(t *testing.T) {
		router, mockUseCase := newTransactionRouter(t)
		mockUseCase.EXPECT().GetTransaction(mock.Anything, uint64(9)).
			Return(nil, errs.NewTransactionNotFoundError(9))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transaction/9", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "transaction 9 not found", decodeError(t, rec).Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		router, _ := newTransactionRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/transaction/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("all up", func(t *testing.T) {
		h := NewHealthHandler(map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
		}, time.Second, logger.NewNoopLogger())
		router := gin.New()
		router.GET("/health", h.Health)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"UP","dependencies":{"database":"UP"}}`, rec.Body.String())
	})

	t.Run("one down", func(t *testing.T) {
		h := NewHealthHandler(map[string]HealthCheck{
			"database": func(context.Context) error { return nil },
			"broker":   func(context.Context) error { return errors.New("connection refused") },
		}, time.Second, logger.NewNoopLogger())
		router := gin.New()
		router.GET("/health", h.Health)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"DOWN","dependencies":{"database":"UP","broker":"DOWN"}}`, rec.Body.String())
	})
}
