package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	"github.com/credit-ledger/backend/internal/integration/persistence/model"
)

// RawTransactionRepository implements the adapter.RawTransactionRepository
// interface using gorm.
type RawTransactionRepository struct {
	db *gorm.DB
}

// NewRawTransactionRepository creates a new RawTransactionRepository.
func NewRawTransactionRepository(db *gorm.DB) *RawTransactionRepository {
	return &RawTransactionRepository{db: db}
}

// ReplaceBatch atomically replaces the stored transaction batch and its
// receipt items with the given ones. Insert order is preserved so later
// aggregation keeps the first-seen name per customer.
func (r *RawTransactionRepository) ReplaceBatch(ctx context.Context, transactions []*entity.RawTransaction, items []*entity.ReceiptItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := session.Delete(&model.RawTransactionModel{}).Error; err != nil {
			return err
		}
		if err := session.Delete(&model.ReceiptItemModel{}).Error; err != nil {
			return err
		}

		if len(transactions) > 0 {
			txnModels := make([]model.RawTransactionModel, len(transactions))
			for i, txn := range transactions {
				txnModels[i] = *model.RawTransactionFromEntity(txn)
			}
			if err := tx.CreateInBatches(txnModels, 500).Error; err != nil {
				return err
			}
		}

		if len(items) > 0 {
			itemModels := make([]model.ReceiptItemModel, len(items))
			for i, item := range items {
				itemModels[i] = *model.ReceiptItemFromEntity(item)
			}
			if err := tx.CreateInBatches(itemModels, 500).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ListAll returns every stored transaction in import order.
func (r *RawTransactionRepository) ListAll(ctx context.Context) ([]*entity.RawTransaction, error) {
	var models []model.RawTransactionModel
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&models).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.RawTransaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions, nil
}

// ListByPhone returns the stored transactions for a customer in import order.
func (r *RawTransactionRepository) ListByPhone(ctx context.Context, phone string) ([]*entity.RawTransaction, error) {
	var models []model.RawTransactionModel
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("seq asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.RawTransaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions, nil
}

// ListItemsByReceiptIDs returns the receipt items belonging to the given receipts.
func (r *RawTransactionRepository) ListItemsByReceiptIDs(ctx context.Context, receiptIDs []string) ([]*entity.ReceiptItem, error) {
	if len(receiptIDs) == 0 {
		return nil, nil
	}

	var models []model.ReceiptItemModel
	err := r.db.WithContext(ctx).
		Where("receipt_id IN ?", receiptIDs).
		Order("seq asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	items := make([]*entity.ReceiptItem, len(models))
	for i := range models {
		items[i] = models[i].ToEntity()
	}
	return items, nil
}

// ClearBatch removes every stored transaction and receipt item.
func (r *RawTransactionRepository) ClearBatch(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := session.Delete(&model.RawTransactionModel{}).Error; err != nil {
			return err
		}
		return session.Delete(&model.ReceiptItemModel{}).Error
	})
}

var _ adapter.RawTransactionRepository = (*RawTransactionRepository)(nil)
