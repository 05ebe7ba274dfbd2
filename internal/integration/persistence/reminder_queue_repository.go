package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
	"github.com/credit-ledger/backend/internal/integration/persistence/model"
)

// reminderQueueRepository implements the adapter.ReminderQueueRepository interface.
type reminderQueueRepository struct {
	db *gorm.DB
}

// NewReminderQueueRepository creates a new reminder queue repository instance.
func NewReminderQueueRepository(db *gorm.DB) adapter.ReminderQueueRepository {
	return &reminderQueueRepository{
		db: db,
	}
}

// Create adds a new reminder job to the queue.
func (r *reminderQueueRepository) Create(ctx context.Context, job *entity.ReminderJob) error {
	jobModel := model.ReminderJobFromEntity(job)
	result := r.db.WithContext(ctx).Create(jobModel)
	if result.Error != nil {
		return domainerror.NewReminderError(
			domainerror.ErrCodeReminderSendFailed,
			"failed to queue reminder job",
			result.Error,
		)
	}
	return nil
}

// GetPendingJobs retrieves jobs ready to be processed.
func (r *reminderQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.ReminderJob, error) {
	var models []model.ReminderJobModel

	result := r.db.WithContext(ctx).
		Where("status = ?", entity.ReminderStatusPending).
		Where("scheduled_at <= ?", time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.ReminderJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}

	return jobs, nil
}

// Update saves changes to a reminder job.
func (r *reminderQueueRepository) Update(ctx context.Context, job *entity.ReminderJob) error {
	jobModel := model.ReminderJobFromEntity(job)
	result := r.db.WithContext(ctx).Save(jobModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetByID retrieves a specific job by its ID.
func (r *reminderQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ReminderJob, error) {
	var jobModel model.ReminderJobModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&jobModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return jobModel.ToEntity(), nil
}
