package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

type memoryQueue struct {
	jobs []*entity.ReminderJob
}

func (q *memoryQueue) Create(_ context.Context, job *entity.ReminderJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.ReminderJob, error) {
	now := time.Now().UTC()
	var out []*entity.ReminderJob
	for _, job := range q.jobs {
		if job.Status == entity.ReminderStatusPending && !job.ScheduledAt.After(now) {
			out = append(out, job)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.ReminderJob) error {
	for i, existing := range q.jobs {
		if existing.ID == job.ID {
			q.jobs[i] = job
			return nil
		}
	}
	return errors.New("job not found")
}

func (q *memoryQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.ReminderJob, error) {
	for _, job := range q.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, nil
}

func newWorkerFixture() (*Worker, *memoryQueue, *MockReminderSender) {
	queue := &memoryQueue{}
	sender := NewMockReminderSender()
	worker := NewWorker(queue, sender, DefaultWorkerConfig())
	return worker, queue, sender
}

func TestWorkerSendsPendingReminder(t *testing.T) {
	worker, queue, sender := newWorkerFixture()

	job := entity.NewReminderJob("7234002022", "asha@example.com", "Asha", decimal.NewFromInt(160))
	require.NoError(t, queue.Create(context.Background(), job))

	worker.ProcessNow(context.Background())

	require.Len(t, sender.SentReminders, 1)
	sent := sender.SentReminders[0]
	assert.Equal(t, "asha@example.com", sent.To)
	assert.Contains(t, sent.Subject, "160.00")
	assert.Contains(t, sent.Text, "Asha")

	stored, err := queue.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReminderStatusSent, stored.Status)
	assert.NotEmpty(t, stored.ProviderID)
	assert.NotNil(t, stored.ProcessedAt)
}

func TestWorkerRetriesTemporaryFailure(t *testing.T) {
	worker, queue, sender := newWorkerFixture()
	sender.SetFailure(errors.New("rate limited"), false)

	job := entity.NewReminderJob("7234002022", "asha@example.com", "Asha", decimal.NewFromInt(160))
	require.NoError(t, queue.Create(context.Background(), job))

	worker.ProcessNow(context.Background())

	stored, err := queue.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReminderStatusPending, stored.Status)
	assert.Equal(t, 1, stored.Attempts)
	assert.Contains(t, stored.LastError, "rate limited")
}

func TestWorkerPermanentFailureStopsRetrying(t *testing.T) {
	worker, queue, sender := newWorkerFixture()
	sender.SetFailure(errors.New("invalid recipient"), true)

	job := entity.NewReminderJob("7234002022", "bad@", "Asha", decimal.NewFromInt(160))
	require.NoError(t, queue.Create(context.Background(), job))

	worker.ProcessNow(context.Background())

	stored, err := queue.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReminderStatusFailed, stored.Status)
	assert.Equal(t, 1, stored.Attempts)
	assert.NotNil(t, stored.ProcessedAt)
}

func TestWorkerExhaustsRetries(t *testing.T) {
	worker, queue, sender := newWorkerFixture()
	sender.SetFailure(errors.New("smtp down"), false)

	job := entity.NewReminderJob("7234002022", "asha@example.com", "Asha", decimal.NewFromInt(160))
	// Keep retries immediate so the test does not wait out the backoff.
	job.MaxAttempts = 2
	require.NoError(t, queue.Create(context.Background(), job))

	worker.ProcessNow(context.Background())

	stored, _ := queue.GetByID(context.Background(), job.ID)
	require.Equal(t, entity.ReminderStatusPending, stored.Status)
	stored.ScheduledAt = time.Now().UTC().Add(-time.Second)

	worker.ProcessNow(context.Background())

	stored, err := queue.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReminderStatusFailed, stored.Status)
	assert.Equal(t, 2, stored.Attempts)
}

func TestComposeReminderFallsBackToGenericName(t *testing.T) {
	job := entity.NewReminderJob("7234002022", "someone@example.com", "", decimal.NewFromInt(75))

	subject, html, text := composeReminder(job)

	assert.Contains(t, subject, "75.00")
	assert.True(t, strings.Contains(text, "Dear Customer"))
	assert.Contains(t, html, "<strong>Rs. 75.00</strong>")
}
