package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/application/usecase/payment"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
	"github.com/credit-ledger/backend/internal/integration/entrypoint/dto"
)

// PaymentController handles payment endpoints.
type PaymentController struct {
	recordUseCase *payment.RecordPaymentUseCase
	listUseCase   *payment.ListPaymentsUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	recordUseCase *payment.RecordPaymentUseCase,
	listUseCase *payment.ListPaymentsUseCase,
) *PaymentController {
	return &PaymentController{
		recordUseCase: recordUseCase,
		listUseCase:   listUseCase,
	}
}

// Record handles POST /payments requests.
func (c *PaymentController) Record(ctx *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	paymentDate := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format. Use YYYY-MM-DD",
			})
			return
		}
		paymentDate = parsed
	}

	input := payment.RecordPaymentInput{
		Phone:       req.Phone,
		Amount:      decimal.NewFromFloat(req.Amount),
		Mode:        req.Mode,
		PaymentDate: paymentDate,
		Remarks:     req.Remarks,
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecordPaymentResponse(output))
}

// List handles GET /payments/:phone requests.
func (c *PaymentController) List(ctx *gin.Context) {
	phone := ctx.Param("phone")
	if phone == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Phone is required",
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), payment.ListPaymentsInput{Phone: phone})
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(phone, output))
}

// handlePaymentError handles payment errors and returns appropriate HTTP responses.
func (c *PaymentController) handlePaymentError(ctx *gin.Context, err error) {
	var paymentErr *domainerror.PaymentError
	if errors.As(err, &paymentErr) {
		ctx.JSON(getStatusCodeForPaymentError(paymentErr.Code), dto.ErrorResponse{
			Error: paymentErr.Message,
			Code:  string(paymentErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForPaymentError maps payment error codes to HTTP status codes.
func getStatusCodeForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPaymentAmount:
		return http.StatusBadRequest
	case domainerror.ErrCodeUnknownCustomer:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
