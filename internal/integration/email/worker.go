package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// Worker processes the reminder queue and sends outstanding-balance emails.
type Worker struct {
	queue        adapter.ReminderQueueRepository
	sender       adapter.ReminderSender
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the reminder worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new reminder worker.
func NewWorker(queue adapter.ReminderQueueRepository, sender adapter.ReminderSender, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Reminder worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	// Process immediately on start, then on ticker
	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch fetches and processes a batch of pending reminders.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending reminder jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing reminder batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

// processJob processes a single reminder job.
func (w *Worker) processJob(ctx context.Context, job *entity.ReminderJob) {
	logger := slog.With(
		"job_id", job.ID,
		"phone", job.Phone,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return
	}

	subject, html, text := composeReminder(job)

	result, err := w.sender.Send(ctx, adapter.SendReminderInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})

	if err != nil {
		logger.Error("Failed to send reminder", "error", err)

		var reminderErr *domainerror.ReminderError
		isPermanent := errors.As(err, &reminderErr) && reminderErr.Code == domainerror.ErrCodePermanentReminderFailure

		w.handleFailure(ctx, job, err, isPermanent)
		return
	}

	job.MarkSent(result.ProviderID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Reminder sent successfully", "provider_id", result.ProviderID)
}

// composeReminder builds the subject and bodies for an outstanding-balance
// reminder.
func composeReminder(job *entity.ReminderJob) (subject, html, text string) {
	name := job.RecipientName
	if name == "" {
		name = "Customer"
	}
	amount := job.RemainingAmount.StringFixed(2)

	subject = fmt.Sprintf("Payment reminder: Rs. %s outstanding", amount)
	text = fmt.Sprintf(
		"Dear %s,\n\nThis is a friendly reminder that Rs. %s is outstanding on your monthly credit account.\n\nPlease clear the balance at your earliest convenience.\n\nThank you.",
		name, amount,
	)
	html = fmt.Sprintf(
		"<p>Dear %s,</p><p>This is a friendly reminder that <strong>Rs. %s</strong> is outstanding on your monthly credit account.</p><p>Please clear the balance at your earliest convenience.</p><p>Thank you.</p>",
		name, amount,
	)
	return subject, html, text
}

// handleFailure handles a failed reminder job.
func (w *Worker) handleFailure(ctx context.Context, job *entity.ReminderJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.ReminderStatusFailed {
		slog.Warn("Reminder job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		slog.Info("Reminder job scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
	}
}

// ProcessNow processes all pending reminders immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
