package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credit-ledger/backend/internal/application/usecase/importing"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
	"github.com/credit-ledger/backend/internal/integration/entrypoint/dto"
	"github.com/credit-ledger/backend/internal/integration/importer"
)

// ImportController handles POS workbook import endpoints.
type ImportController struct {
	reader        *importer.POSExcelReader
	importUseCase *importing.ImportBatchUseCase
	maxUploadMB   int64
}

// NewImportController creates a new import controller instance.
func NewImportController(
	reader *importer.POSExcelReader,
	importUseCase *importing.ImportBatchUseCase,
	maxUploadMB int64,
) *ImportController {
	return &ImportController{
		reader:        reader,
		importUseCase: importUseCase,
		maxUploadMB:   maxUploadMB,
	}
}

// Import handles POST /imports requests. The workbook arrives as a multipart
// file under the "file" field.
func (c *ImportController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Workbook file is required under the 'file' field",
		})
		return
	}

	if c.maxUploadMB > 0 && fileHeader.Size > c.maxUploadMB*1024*1024 {
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Error: "Workbook exceeds the upload size limit",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read uploaded workbook",
		})
		return
	}
	defer file.Close()

	transactions, items, err := c.reader.Read(file)
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), importing.ImportBatchInput{
		Transactions: transactions,
		Items:        items,
	})
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToImportBatchResponse(output))
}

// handleImportError handles import errors and returns appropriate HTTP responses.
func (c *ImportController) handleImportError(ctx *gin.Context, err error) {
	var importErr *domainerror.ImportError
	if errors.As(err, &importErr) {
		ctx.JSON(getStatusCodeForImportError(importErr.Code), dto.ErrorResponse{
			Error: importErr.Message,
			Code:  string(importErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForImportError maps import error codes to HTTP status codes.
func getStatusCodeForImportError(code domainerror.ImportErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingSheet,
		domainerror.ErrCodeMissingColumn,
		domainerror.ErrCodeEmptyBatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
