package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	"github.com/credit-ledger/backend/internal/integration/persistence/model"
)

// PaymentRepository implements the adapter.PaymentRepository interface using gorm.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// RecordPayment appends the payment event and updates the customer's ledger
// entry in a single transaction. A failure on either side rolls back both.
func (r *PaymentRepository) RecordPayment(ctx context.Context, event *entity.PaymentEvent, entry *entity.LedgerEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.PaymentEventFromEntity(event)).Error; err != nil {
			return err
		}

		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "phone"}},
				UpdateAll: true,
			}).
			Create(model.LedgerEntryFromEntity(entry)).Error
	})
	if err != nil {
		return err
	}
	return nil
}

// ListByPhone returns the payment events for a customer, oldest first.
func (r *PaymentRepository) ListByPhone(ctx context.Context, phone string) ([]*entity.PaymentEvent, error) {
	var models []model.PaymentEventModel
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	events := make([]*entity.PaymentEvent, len(models))
	for i := range models {
		events[i] = models[i].ToEntity()
	}
	return events, nil
}

var _ adapter.PaymentRepository = (*PaymentRepository)(nil)
