package adapter

import (
	"context"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// RawTransactionRepository stores the current import batch of POS credit
// transactions and their line items.
type RawTransactionRepository interface {
	// ReplaceBatch atomically replaces the stored batch with the given rows.
	// Readers see either the prior batch or the full new one, never a mix.
	ReplaceBatch(ctx context.Context, transactions []*entity.RawTransaction, items []*entity.ReceiptItem) error

	// ListAll retrieves the current batch in stable import order.
	ListAll(ctx context.Context) ([]*entity.RawTransaction, error)

	// ListByPhone retrieves the current batch rows for one canonical phone,
	// in stable import order.
	ListByPhone(ctx context.Context, phone string) ([]*entity.RawTransaction, error)

	// ListItemsByReceiptIDs retrieves line items for the given receipts.
	ListItemsByReceiptIDs(ctx context.Context, receiptIDs []string) ([]*entity.ReceiptItem, error)

	// ClearBatch removes the stored batch and its items.
	ClearBatch(ctx context.Context) error
}
