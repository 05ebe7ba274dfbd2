package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// ReminderQueueRepository defines the interface for reminder queue persistence.
type ReminderQueueRepository interface {
	// Create adds a new reminder job to the queue.
	Create(ctx context.Context, job *entity.ReminderJob) error

	// GetPendingJobs retrieves jobs ready to be processed, ordered by scheduled_at.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.ReminderJob, error)

	// Update saves changes to a reminder job.
	Update(ctx context.Context, job *entity.ReminderJob) error

	// GetByID retrieves a specific job by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ReminderJob, error)
}

// SendReminderInput represents the input for sending a reminder email.
type SendReminderInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendReminderResult represents the result of sending a reminder email.
type SendReminderResult struct {
	ProviderID string
}

// ReminderSender defines the interface for sending reminders via an external provider.
type ReminderSender interface {
	// Send sends a reminder email via the provider (e.g., Resend).
	Send(ctx context.Context, input SendReminderInput) (*SendReminderResult, error)
}
