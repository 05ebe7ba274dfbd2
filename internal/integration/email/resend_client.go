// Package email sends outstanding-balance reminders via Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/credit-ledger/backend/internal/application/adapter"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// ResendClient implements the adapter.ReminderSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send sends a reminder email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendReminderInput) (*adapter.SendReminderResult, error) {
	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodePermanentReminderFailure,
				"permanent reminder failure",
				err,
			)
		}
		return nil, domainerror.NewReminderError(
			domainerror.ErrCodeReminderSendFailed,
			"temporary reminder failure",
			err,
		)
	}

	return &adapter.SendReminderResult{
		ProviderID: resp.Id,
	}, nil
}

// isPermanentError checks if the error should not be retried.
// Permanent errors include: 401 (Unauthorized), 403 (Forbidden), 422 (Validation Error)
// Temporary errors include: 429 (Rate Limit), 5xx (Server Errors)
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// MockReminderSender is a mock implementation for testing.
type MockReminderSender struct {
	SentReminders []adapter.SendReminderInput
	ShouldFail    bool
	FailError     error
	IsPermanent   bool
}

// NewMockReminderSender creates a new mock reminder sender.
func NewMockReminderSender() *MockReminderSender {
	return &MockReminderSender{
		SentReminders: make([]adapter.SendReminderInput, 0),
	}
}

// Send implements the adapter.ReminderSender interface for testing.
func (m *MockReminderSender) Send(_ context.Context, input adapter.SendReminderInput) (*adapter.SendReminderResult, error) {
	if m.ShouldFail {
		if m.IsPermanent {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodePermanentReminderFailure,
				"mock permanent failure",
				m.FailError,
			)
		}
		return nil, domainerror.NewReminderError(
			domainerror.ErrCodeReminderSendFailed,
			"mock temporary failure",
			m.FailError,
		)
	}

	m.SentReminders = append(m.SentReminders, input)

	return &adapter.SendReminderResult{
		ProviderID: fmt.Sprintf("mock-%d", len(m.SentReminders)),
	}, nil
}

// SetFailure configures the mock to fail with the given error.
func (m *MockReminderSender) SetFailure(err error, permanent bool) {
	m.ShouldFail = true
	m.FailError = err
	m.IsPermanent = permanent
}

// Reset clears all sent reminders and failure configuration.
func (m *MockReminderSender) Reset() {
	m.SentReminders = make([]adapter.SendReminderInput, 0)
	m.ShouldFail = false
	m.FailError = nil
	m.IsPermanent = false
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.ReminderSender = (*ResendClient)(nil)
	_ adapter.ReminderSender = (*MockReminderSender)(nil)
)
