package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credit-ledger/backend/internal/application/usecase/statement"
	"github.com/credit-ledger/backend/internal/integration/entrypoint/dto"
)

// StatementController handles customer statement endpoints.
type StatementController struct {
	statementUseCase *statement.GetStatementUseCase
}

// NewStatementController creates a new statement controller instance.
func NewStatementController(statementUseCase *statement.GetStatementUseCase) *StatementController {
	return &StatementController{statementUseCase: statementUseCase}
}

// Get handles GET /statements/:phone requests.
func (c *StatementController) Get(ctx *gin.Context) {
	phone := ctx.Param("phone")
	if phone == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Phone is required",
		})
		return
	}

	output, err := c.statementUseCase.Execute(ctx.Request.Context(), statement.GetStatementInput{Phone: phone})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to assemble customer statement",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatementResponse(output))
}
