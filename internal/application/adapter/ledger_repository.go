// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// LedgerRepository defines the persisted, phone-keyed ledger store.
//
// The store outlives imports and process restarts. Writes are serialized at
// the store boundary: one Upsert, UpsertBatch or ClearAll is a single
// transactional unit, and readers never observe a partially written row.
type LedgerRepository interface {
	// GetAll retrieves every ledger entry.
	GetAll(ctx context.Context) ([]*entity.LedgerEntry, error)

	// GetByPhone retrieves the entry for a canonical phone.
	// Returns (nil, nil) when no entry exists.
	GetByPhone(ctx context.Context, phone string) (*entity.LedgerEntry, error)

	// Upsert inserts the entry or fully replaces the existing row with the
	// same phone key.
	Upsert(ctx context.Context, entry *entity.LedgerEntry) error

	// UpsertBatch upserts all entries as one transaction. Entries absent
	// from the batch are left untouched.
	UpsertBatch(ctx context.Context, entries []*entity.LedgerEntry) error

	// ClearAll removes every ledger entry. Only an explicit clear deletes rows.
	ClearAll(ctx context.Context) error
}
