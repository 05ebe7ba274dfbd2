package ledger

import (
	"context"
	"log/slog"

	"github.com/credit-ledger/backend/internal/application/adapter"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// ClearLedgerUseCase removes every ledger entry. This is the only operation
// that deletes rows; reconciliation and saves never do.
type ClearLedgerUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.LedgerViewCache
}

// NewClearLedgerUseCase creates a new ClearLedgerUseCase instance.
func NewClearLedgerUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.LedgerViewCache) *ClearLedgerUseCase {
	return &ClearLedgerUseCase{ledgerRepo: ledgerRepo, cache: cache}
}

// Execute performs the full clear.
func (uc *ClearLedgerUseCase) Execute(ctx context.Context) error {
	if err := uc.ledgerRepo.ClearAll(ctx); err != nil {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeStoreUnavailable,
			"failed to clear ledger",
			err,
		)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			slog.Warn("Failed to invalidate ledger view cache after clear", "error", err)
		}
	}

	slog.Info("Ledger cleared")
	return nil
}
