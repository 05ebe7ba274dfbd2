// Package error defines domain-specific errors for the credit ledger engine.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrStoreUnavailable is returned when the persisted ledger store cannot be reached.
	ErrStoreUnavailable = errors.New("ledger store unavailable")

	// ErrInvalidPaymentStatus is returned when a status outside the closed enum is supplied.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrMissingPhoneKey is returned when a ledger row is written without its phone key.
	ErrMissingPhoneKey = errors.New("ledger row is missing its phone key")

	// ErrDuplicatePhoneKey is returned when a save batch contains the same phone twice.
	ErrDuplicatePhoneKey = errors.New("duplicate phone key in batch")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPaymentStatus LedgerErrorCode = "LDG-010001"
	ErrCodeMissingPhoneKey      LedgerErrorCode = "LDG-010002"
	ErrCodeDuplicatePhoneKey    LedgerErrorCode = "LDG-010003"

	// Store errors (02XXXX)
	ErrCodeStoreUnavailable LedgerErrorCode = "LDG-020001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
