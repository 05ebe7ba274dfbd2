package error

import "errors"

// Payment domain errors.
var (
	// ErrInvalidPaymentAmount is returned when a payment amount is zero or negative.
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")

	// ErrUnknownCustomer is returned when a payment targets a phone with no ledger row.
	ErrUnknownCustomer = errors.New("no ledger row exists for customer")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPaymentAmount PaymentErrorCode = "PAY-010001"
	ErrCodeUnknownCustomer      PaymentErrorCode = "PAY-010002"

	// Store errors (02XXXX)
	ErrCodePaymentStoreFailure PaymentErrorCode = "PAY-020001"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
