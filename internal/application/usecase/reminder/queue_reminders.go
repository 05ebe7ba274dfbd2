// Package reminder contains payment reminder use cases.
package reminder

import (
	"context"
	"log/slog"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// LedgerViewProvider supplies the reconciled ledger view reminders are
// derived from.
type LedgerViewProvider interface {
	Views(ctx context.Context) ([]*entity.LedgerView, error)
}

// QueueRemindersOutput represents the result of queueing reminders.
type QueueRemindersOutput struct {
	Queued         int
	SkippedNoEmail int
	SkippedSettled int
}

// QueueRemindersUseCase queues one outstanding-balance reminder per customer
// with a positive remaining balance and a stored email address. Sending
// happens asynchronously in the reminder worker.
type QueueRemindersUseCase struct {
	queue adapter.ReminderQueueRepository
	views LedgerViewProvider
}

// NewQueueRemindersUseCase creates a new QueueRemindersUseCase instance.
func NewQueueRemindersUseCase(queue adapter.ReminderQueueRepository, views LedgerViewProvider) *QueueRemindersUseCase {
	return &QueueRemindersUseCase{queue: queue, views: views}
}

// Execute queues the reminders.
func (uc *QueueRemindersUseCase) Execute(ctx context.Context) (*QueueRemindersOutput, error) {
	views, err := uc.views.Views(ctx)
	if err != nil {
		return nil, err
	}

	out := &QueueRemindersOutput{}

	for _, v := range views {
		if !v.RemainingAmount.IsPositive() {
			out.SkippedSettled++
			continue
		}
		if v.Email == "" {
			out.SkippedNoEmail++
			continue
		}

		job := entity.NewReminderJob(v.Phone, v.Email, v.Name, v.RemainingAmount)
		if err := uc.queue.Create(ctx, job); err != nil {
			return nil, domainerror.NewReminderError(
				domainerror.ErrCodeReminderSendFailed,
				"failed to queue reminder",
				err,
			)
		}
		out.Queued++
	}

	slog.Info("Payment reminders queued",
		"queued", out.Queued,
		"skipped_no_email", out.SkippedNoEmail,
		"skipped_settled", out.SkippedSettled,
	)

	return out, nil
}
