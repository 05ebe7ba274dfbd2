package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credit-ledger/backend/internal/application/usecase/reminder"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
	"github.com/credit-ledger/backend/internal/integration/entrypoint/dto"
)

// ReminderController handles payment reminder endpoints.
type ReminderController struct {
	queueUseCase *reminder.QueueRemindersUseCase
}

// NewReminderController creates a new reminder controller instance.
func NewReminderController(queueUseCase *reminder.QueueRemindersUseCase) *ReminderController {
	return &ReminderController{queueUseCase: queueUseCase}
}

// Queue handles POST /reminders requests. It queues one reminder per customer
// with an outstanding balance; the worker sends them asynchronously.
func (c *ReminderController) Queue(ctx *gin.Context) {
	output, err := c.queueUseCase.Execute(ctx.Request.Context())
	if err != nil {
		var reminderErr *domainerror.ReminderError
		if errors.As(err, &reminderErr) {
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: reminderErr.Message,
				Code:  string(reminderErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusAccepted, dto.ToQueueRemindersResponse(output))
}
