// Package persistence provides gorm-backed implementations of the
// application repository adapters.
package persistence

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	"github.com/credit-ledger/backend/internal/integration/persistence/model"
)

// LedgerRepository implements the adapter.LedgerRepository interface using gorm.
type LedgerRepository struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetAll returns every ledger entry ordered by phone ascending.
func (r *LedgerRepository) GetAll(ctx context.Context) ([]*entity.LedgerEntry, error) {
	var models []model.LedgerEntryModel
	if err := r.db.WithContext(ctx).Order("phone asc").Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.LedgerEntry, len(models))
	for i := range models {
		entries[i] = models[i].ToEntity()
	}
	return entries, nil
}

// GetByPhone returns the ledger entry for the given phone, or nil when no
// row exists for that customer.
func (r *LedgerRepository) GetByPhone(ctx context.Context, phone string) (*entity.LedgerEntry, error) {
	var m model.LedgerEntryModel
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Upsert inserts or replaces the ledger entry keyed by phone.
func (r *LedgerRepository) Upsert(ctx context.Context, entry *entity.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := model.LedgerEntryFromEntity(entry)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	return nil
}

// UpsertBatch inserts or replaces all given entries in a single transaction.
// Either every row lands or none does.
func (r *LedgerRepository) UpsertBatch(ctx context.Context, entries []*entity.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	models := make([]model.LedgerEntryModel, len(entries))
	for i, entry := range entries {
		models[i] = *model.LedgerEntryFromEntity(entry)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "phone"}},
				UpdateAll: true,
			}).
			CreateInBatches(models, 200).Error
	})
	if err != nil {
		return err
	}
	return nil
}

// ClearAll removes every ledger entry.
func (r *LedgerRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.LedgerEntryModel{}).Error
	if err != nil {
		return err
	}
	return nil
}

var _ adapter.LedgerRepository = (*LedgerRepository)(nil)
