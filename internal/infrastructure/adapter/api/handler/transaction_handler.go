package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/transaction-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/transaction-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/transaction-ledger/internal/infrastructure/adapter/api/middleware"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transfers usecase.TransferUseCase
	logger    coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transfers usecase.TransferUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		transfers: transfers,
		logger:    logger,
	}
}

// FundTransfer handles POST /v1/transaction/fund-transfer
func (h *TransactionHandler) FundTransfer(c *gin.Context) {
	var req *entity.TransferRequest

	var body dto.FundTransferRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		// An absent body reaches the use case as an empty request
		if !errors.Is(err, io.EOF) {
			middleware.RespondError(c, h.logger, fmt.Errorf("%w: %v", errs.ErrInvalidRequest, err))
			return
		}
	} else if req, err = body.ToEntity(); err != nil {
		middleware.RespondError(c, h.logger, err)
		return
	}

	resp, err := h.transfers.TransferFunds(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetTransaction handles GET /v1/transaction/:transactId
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("transactId"), 10, 64)
	if err != nil || id == 0 {
		middleware.RespondError(c, h.logger, fmt.Errorf("%w: invalid transaction id %q", errs.ErrInvalidRequest, c.Param("transactId")))
		return
	}

	txn, err := h.transfers.GetTransaction(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}
