package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// PaymentEventModel represents the payment_events table in the database.
// Rows are append-only; they are never updated or deleted.
type PaymentEventModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Phone       string          `gorm:"type:varchar(15);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Mode        string          `gorm:"type:varchar(50)"`
	PaymentDate time.Time       `gorm:"type:date;not null"`
	Remarks     string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the PaymentEventModel.
func (PaymentEventModel) TableName() string {
	return "payment_events"
}

// ToEntity converts a PaymentEventModel to a domain PaymentEvent entity.
func (m *PaymentEventModel) ToEntity() *entity.PaymentEvent {
	return &entity.PaymentEvent{
		ID:          m.ID,
		Phone:       m.Phone,
		Amount:      m.Amount,
		Mode:        m.Mode,
		PaymentDate: m.PaymentDate,
		Remarks:     m.Remarks,
		CreatedAt:   m.CreatedAt,
	}
}

// PaymentEventFromEntity creates a PaymentEventModel from a domain PaymentEvent entity.
func PaymentEventFromEntity(event *entity.PaymentEvent) *PaymentEventModel {
	return &PaymentEventModel{
		ID:          event.ID,
		Phone:       event.Phone,
		Amount:      event.Amount,
		Mode:        event.Mode,
		PaymentDate: event.PaymentDate,
		Remarks:     event.Remarks,
		CreatedAt:   event.CreatedAt,
	}
}
