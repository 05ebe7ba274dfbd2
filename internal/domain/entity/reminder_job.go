package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReminderStatus represents the status of a payment reminder in the queue.
type ReminderStatus string

const (
	ReminderStatusPending    ReminderStatus = "pending"
	ReminderStatusProcessing ReminderStatus = "processing"
	ReminderStatusSent       ReminderStatus = "sent"
	ReminderStatusFailed     ReminderStatus = "failed"
)

// ReminderJob is a queued outstanding-balance reminder for one customer.
// Jobs are processed asynchronously by the reminder worker.
type ReminderJob struct {
	ID              uuid.UUID
	Phone           string
	RecipientEmail  string
	RecipientName   string
	RemainingAmount decimal.Decimal
	Status          ReminderStatus
	Attempts        int
	MaxAttempts     int
	LastError       string
	ProviderID      string
	CreatedAt       time.Time
	ScheduledAt     time.Time
	ProcessedAt     *time.Time
}

// NewReminderJob creates a pending ReminderJob for the given customer.
func NewReminderJob(phone, email, name string, remaining decimal.Decimal) *ReminderJob {
	now := time.Now().UTC()
	return &ReminderJob{
		ID:              uuid.New(),
		Phone:           phone,
		RecipientEmail:  email,
		RecipientName:   name,
		RemainingAmount: remaining,
		Status:          ReminderStatusPending,
		Attempts:        0,
		MaxAttempts:     3,
		CreatedAt:       now,
		ScheduledAt:     now,
	}
}

// MarkProcessing marks the job as currently being processed.
func (j *ReminderJob) MarkProcessing() {
	j.Status = ReminderStatusProcessing
}

// MarkSent marks the job as successfully sent.
func (j *ReminderJob) MarkSent(providerID string) {
	j.Status = ReminderStatusSent
	j.ProviderID = providerID
	now := time.Now().UTC()
	j.ProcessedAt = &now
}

// MarkFailed records a failure and schedules a retry if attempts remain.
func (j *ReminderJob) MarkFailed(err error, permanent bool) {
	j.Attempts++
	j.LastError = err.Error()

	if permanent || j.Attempts >= j.MaxAttempts {
		j.Status = ReminderStatusFailed
		now := time.Now().UTC()
		j.ProcessedAt = &now
	} else {
		j.Status = ReminderStatusPending
		j.ScheduledAt = j.nextRetry()
	}
}

// nextRetry backs off between attempts: immediate, 1min, 5min.
func (j *ReminderJob) nextRetry() time.Time {
	delays := []time.Duration{0, 1 * time.Minute, 5 * time.Minute}
	if j.Attempts < len(delays) {
		return time.Now().UTC().Add(delays[j.Attempts])
	}
	return time.Now().UTC().Add(5 * time.Minute)
}

// IsReadyToProcess reports whether the job is pending and due.
func (j *ReminderJob) IsReadyToProcess() bool {
	return j.Status == ReminderStatusPending && time.Now().UTC().After(j.ScheduledAt)
}
