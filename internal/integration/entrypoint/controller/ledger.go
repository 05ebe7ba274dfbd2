// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credit-ledger/backend/internal/application/usecase/ledger"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
	"github.com/credit-ledger/backend/internal/integration/entrypoint/dto"
)

// LedgerController handles ledger endpoints.
type LedgerController struct {
	getUseCase   *ledger.GetLedgerUseCase
	saveUseCase  *ledger.SaveLedgerUseCase
	clearUseCase *ledger.ClearLedgerUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(
	getUseCase *ledger.GetLedgerUseCase,
	saveUseCase *ledger.SaveLedgerUseCase,
	clearUseCase *ledger.ClearLedgerUseCase,
) *LedgerController {
	return &LedgerController{
		getUseCase:   getUseCase,
		saveUseCase:  saveUseCase,
		clearUseCase: clearUseCase,
	}
}

// Get handles GET /ledger requests. It returns the reconciled ledger view for
// the current batch.
func (c *LedgerController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerResponse(output))
}

// Save handles PUT /ledger requests. It bulk-upserts edited ledger rows.
func (c *LedgerController) Save(ctx *gin.Context) {
	var req dto.SaveLedgerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	rows := make([]*entity.LedgerView, 0, len(req.Rows))
	for _, rowReq := range req.Rows {
		row, err := rowReq.ToLedgerView()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount in row for phone " + rowReq.Phone,
			})
			return
		}
		rows = append(rows, row)
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), ledger.SaveLedgerInput{Rows: rows})
	if err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SaveLedgerResponse{Saved: output.Saved})
}

// Clear handles DELETE /ledger requests. It removes every ledger entry.
func (c *LedgerController) Clear(ctx *gin.Context) {
	if err := c.clearUseCase.Execute(ctx.Request.Context()); err != nil {
		c.handleLedgerError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleLedgerError handles ledger errors and returns appropriate HTTP responses.
func (c *LedgerController) handleLedgerError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		ctx.JSON(getStatusCodeForLedgerError(ledgerErr.Code), dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForLedgerError maps ledger error codes to HTTP status codes.
func getStatusCodeForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPaymentStatus,
		domainerror.ErrCodeMissingPhoneKey,
		domainerror.ErrCodeDuplicatePhoneKey:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
