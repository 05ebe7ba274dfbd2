package error

import "errors"

// Import domain errors.
var (
	// ErrMissingSheet is returned when the workbook lacks a required sheet.
	ErrMissingSheet = errors.New("required sheet not found in workbook")

	// ErrMissingColumn is returned when a sheet lacks a required header column.
	ErrMissingColumn = errors.New("required column not found in sheet")

	// ErrEmptyBatch is returned when an import yields no credit transactions.
	ErrEmptyBatch = errors.New("import produced no credit transactions")
)

// ImportErrorCode defines error codes for import errors.
// Format: IMP-XXYYYY where XX is category and YYYY is specific error.
type ImportErrorCode string

const (
	// Workbook shape errors (01XXXX)
	ErrCodeMissingSheet  ImportErrorCode = "IMP-010001"
	ErrCodeMissingColumn ImportErrorCode = "IMP-010002"
	ErrCodeEmptyBatch    ImportErrorCode = "IMP-010003"

	// Store errors (02XXXX)
	ErrCodeBatchStoreFailure ImportErrorCode = "IMP-020001"
)

// ImportError represents an import error with code and message.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ImportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError with the given code and message.
func NewImportError(code ImportErrorCode, message string, err error) *ImportError {
	return &ImportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
