package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minibank/minibank/internal/apperrors"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
	"github.com/minibank/minibank/internal/dto"
	"github.com/minibank/minibank/internal/middleware"
)

// LedgerHandler handles transaction submission and statement reads for the
// authenticated client.
type LedgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ls portssvc.LedgerSvcFacade) *LedgerHandler {
	return &LedgerHandler{ledgerService: ls}
}

func registerLedgerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewLedgerHandler(services.Ledger)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.SubmitTransaction)
		txns.GET("", h.GetStatement)
	}
}

// SubmitTransaction godoc
// @Summary Submit a transaction
// @Description Appends a deposit or withdrawal to the caller's ledger after admission checks.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction Info"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid type, amount, or insufficient funds"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Caller is blacklisted"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *LedgerHandler) SubmitTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	txn, err := h.ledgerService.SubmitTransaction(c.Request.Context(), clientID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidTransactionType):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Transaction type must be DEPOSIT or WITHDRAWAL"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Amount must be greater than zero"})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Insufficient funds"})
		case errors.Is(err, apperrors.ErrClientRestricted):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account is restricted"})
		case errors.Is(err, apperrors.ErrNotFound):
			// The token subject no longer resolves to a client.
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Session is no longer valid"})
		default:
			logger.Error("Failed to submit transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to submit transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// GetStatement godoc
// @Summary Get account statement
// @Description Returns the caller's derived balance and transaction history, newest first.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *LedgerHandler) GetStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	statement, err := h.ledgerService.GetStatement(c.Request.Context(), clientID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination token"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Session is no longer valid"})
		default:
			logger.Error("Failed to read statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read statement"})
		}
		return
	}

	c.JSON(http.StatusOK, statement)
}
