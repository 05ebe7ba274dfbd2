// Package importing contains POS batch import use cases.
package importing

import (
	"context"
	"log/slog"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
	"github.com/credit-ledger/backend/internal/domain/valueobject"
)

// ImportBatchInput represents the typed rows extracted from a POS workbook.
type ImportBatchInput struct {
	Transactions []*entity.RawTransaction
	Items        []*entity.ReceiptItem
}

// ImportBatchOutput represents the result of an import.
type ImportBatchOutput struct {
	CreditTransactions int
	Items              int
	SkippedNoIdentity  int
	SkippedNonCredit   int
}

// ImportBatchUseCase normalizes and stores a new monthly transaction batch.
//
// Only Credit-mode receipts enter the batch, and only Item-type lines for
// those receipts are kept. Phones are canonicalized once here; rows whose
// phone cannot be normalized are skipped and counted, never fatal. The batch
// replace is atomic: readers see the prior batch or the full new one.
// Ledger entries are untouched by an import, which is what lets manual edits
// survive a re-import.
type ImportBatchUseCase struct {
	txnRepo adapter.RawTransactionRepository
	cache   adapter.LedgerViewCache
}

// NewImportBatchUseCase creates a new ImportBatchUseCase instance.
func NewImportBatchUseCase(txnRepo adapter.RawTransactionRepository, cache adapter.LedgerViewCache) *ImportBatchUseCase {
	return &ImportBatchUseCase{txnRepo: txnRepo, cache: cache}
}

// Execute performs the import.
func (uc *ImportBatchUseCase) Execute(ctx context.Context, input ImportBatchInput) (*ImportBatchOutput, error) {
	out := &ImportBatchOutput{}

	credit := make([]*entity.RawTransaction, 0, len(input.Transactions))
	keepReceipts := make(map[string]struct{})

	for _, txn := range input.Transactions {
		if txn.PaymentMode != entity.PaymentModeCredit {
			out.SkippedNonCredit++
			continue
		}

		phone, ok := valueobject.NormalizePhone(txn.CustomerPhoneRaw)
		if !ok {
			out.SkippedNoIdentity++
			slog.Debug("Skipping transaction without usable phone",
				"receipt_id", txn.ReceiptID,
				"customer", txn.CustomerName,
			)
			continue
		}
		txn.Phone = phone

		credit = append(credit, txn)
		keepReceipts[txn.ReceiptID] = struct{}{}
	}

	if len(credit) == 0 {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeEmptyBatch,
			"workbook contains no usable credit transactions",
			domainerror.ErrEmptyBatch,
		)
	}

	items := make([]*entity.ReceiptItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.EntryType != entity.EntryTypeItem {
			continue
		}
		if _, keep := keepReceipts[item.ReceiptID]; !keep {
			continue
		}
		items = append(items, item)
	}

	if err := uc.txnRepo.ReplaceBatch(ctx, credit, items); err != nil {
		return nil, domainerror.NewImportError(
			domainerror.ErrCodeBatchStoreFailure,
			"failed to store transaction batch",
			err,
		)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			slog.Warn("Failed to invalidate ledger view cache after import", "error", err)
		}
	}

	out.CreditTransactions = len(credit)
	out.Items = len(items)

	slog.Info("Transaction batch imported",
		"credit_transactions", out.CreditTransactions,
		"items", out.Items,
		"skipped_non_credit", out.SkippedNonCredit,
		"skipped_no_identity", out.SkippedNoIdentity,
	)

	return out, nil
}
