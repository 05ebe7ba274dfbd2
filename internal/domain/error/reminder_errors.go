package error

import "errors"

// Reminder domain errors.
var (
	// ErrReminderSendFailed is returned when the email provider rejects a reminder.
	ErrReminderSendFailed = errors.New("failed to send reminder")

	// ErrNoRecipientEmail is returned when a customer has no stored email address.
	ErrNoRecipientEmail = errors.New("customer has no email address")
)

// ReminderErrorCode defines error codes for reminder errors.
type ReminderErrorCode string

const (
	ErrCodeNoRecipientEmail         ReminderErrorCode = "RMD-010001"
	ErrCodeReminderSendFailed       ReminderErrorCode = "RMD-020001"
	ErrCodePermanentReminderFailure ReminderErrorCode = "RMD-020002"
)

// ReminderError represents a reminder error with code and message.
type ReminderError struct {
	Code    ReminderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReminderError) Unwrap() error {
	return e.Err
}

// NewReminderError creates a new ReminderError with the given code and message.
func NewReminderError(code ReminderErrorCode, message string, err error) *ReminderError {
	return &ReminderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
