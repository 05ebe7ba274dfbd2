package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// ReminderJobModel represents the reminder_queue table in the database.
type ReminderJobModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Phone           string          `gorm:"type:varchar(15);not null;index"`
	RecipientEmail  string          `gorm:"type:varchar(255);not null"`
	RecipientName   string          `gorm:"type:varchar(255)"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'"`
	Attempts        int             `gorm:"not null;default:0"`
	MaxAttempts     int             `gorm:"not null;default:3"`
	LastError       string          `gorm:"type:text"`
	ProviderID      string          `gorm:"type:varchar(100)"`
	CreatedAt       time.Time       `gorm:"not null"`
	ScheduledAt     time.Time       `gorm:"not null"`
	ProcessedAt     sql.NullTime
}

// TableName returns the table name for the ReminderJobModel.
func (ReminderJobModel) TableName() string {
	return "reminder_queue"
}

// ToEntity converts a ReminderJobModel to a domain ReminderJob entity.
func (m *ReminderJobModel) ToEntity() *entity.ReminderJob {
	var processedAt *time.Time
	if m.ProcessedAt.Valid {
		processedAt = &m.ProcessedAt.Time
	}

	return &entity.ReminderJob{
		ID:              m.ID,
		Phone:           m.Phone,
		RecipientEmail:  m.RecipientEmail,
		RecipientName:   m.RecipientName,
		RemainingAmount: m.RemainingAmount,
		Status:          entity.ReminderStatus(m.Status),
		Attempts:        m.Attempts,
		MaxAttempts:     m.MaxAttempts,
		LastError:       m.LastError,
		ProviderID:      m.ProviderID,
		CreatedAt:       m.CreatedAt,
		ScheduledAt:     m.ScheduledAt,
		ProcessedAt:     processedAt,
	}
}

// ReminderJobFromEntity creates a ReminderJobModel from a domain ReminderJob entity.
func ReminderJobFromEntity(job *entity.ReminderJob) *ReminderJobModel {
	var processedAt sql.NullTime
	if job.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}

	return &ReminderJobModel{
		ID:              job.ID,
		Phone:           job.Phone,
		RecipientEmail:  job.RecipientEmail,
		RecipientName:   job.RecipientName,
		RemainingAmount: job.RemainingAmount,
		Status:          string(job.Status),
		Attempts:        job.Attempts,
		MaxAttempts:     job.MaxAttempts,
		LastError:       job.LastError,
		ProviderID:      job.ProviderID,
		CreatedAt:       job.CreatedAt,
		ScheduledAt:     job.ScheduledAt,
		ProcessedAt:     processedAt,
	}
}
