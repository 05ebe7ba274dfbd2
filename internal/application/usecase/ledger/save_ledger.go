package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// SaveLedgerInput represents the input for a bulk ledger save.
type SaveLedgerInput struct {
	Rows []*entity.LedgerView
}

// SaveLedgerOutput represents the output of a bulk ledger save.
type SaveLedgerOutput struct {
	Saved int
}

// SaveLedgerUseCase persists an externally edited ledger view back into the
// store, wholesale-replacing all tracked fields for each phone key.
//
// This is how manual edits (status, remarks, advances, previous balances,
// addresses) become durable. There is no partial-row merge: a row omitted
// from the batch is simply not written, never deleted. The stored remaining
// amount is recomputed from the formula before writing so the snapshot can
// never drift from its inputs.
type SaveLedgerUseCase struct {
	ledgerRepo adapter.LedgerRepository
	cache      adapter.LedgerViewCache
}

// NewSaveLedgerUseCase creates a new SaveLedgerUseCase instance.
func NewSaveLedgerUseCase(ledgerRepo adapter.LedgerRepository, cache adapter.LedgerViewCache) *SaveLedgerUseCase {
	return &SaveLedgerUseCase{ledgerRepo: ledgerRepo, cache: cache}
}

// Execute performs the bulk save.
func (uc *SaveLedgerUseCase) Execute(ctx context.Context, input SaveLedgerInput) (*SaveLedgerOutput, error) {
	now := time.Now().UTC()
	seen := make(map[string]struct{}, len(input.Rows))
	entries := make([]*entity.LedgerEntry, 0, len(input.Rows))

	for _, row := range input.Rows {
		if row.Phone == "" {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeMissingPhoneKey,
				"ledger row is missing its phone key",
				domainerror.ErrMissingPhoneKey,
			)
		}
		if _, dup := seen[row.Phone]; dup {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeDuplicatePhoneKey,
				fmt.Sprintf("phone %s appears more than once in batch", row.Phone),
				domainerror.ErrDuplicatePhoneKey,
			)
		}
		seen[row.Phone] = struct{}{}

		if !row.PaymentStatus.Valid() {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidPaymentStatus,
				fmt.Sprintf("status %q is not one of Due, Partial, Settled, Advance", row.PaymentStatus),
				domainerror.ErrInvalidPaymentStatus,
			)
		}

		remaining := entity.ComputeRemaining(row.AmountDue, row.PreviousBalance, row.AdvanceAmount, row.AmountPaid)

		entries = append(entries, &entity.LedgerEntry{
			Phone:               row.Phone,
			Name:                row.Name,
			Address:             row.Address,
			Email:               row.Email,
			AmountDue:           row.AmountDue,
			PreviousBalance:     row.PreviousBalance,
			AdvanceAmount:       row.AdvanceAmount,
			PaymentStatus:       row.PaymentStatus,
			AmountPaid:          row.AmountPaid,
			RemainingAmount:     remaining,
			PaymentMode:         row.PaymentMode,
			ReceivedOn:          row.ReceivedOn,
			CashCollected:       row.CashCollected,
			CashDeposited:       row.CashDeposited,
			Remarks:             row.Remarks,
			AdvanceCarryForward: row.AdvanceCarryForward,
			LastUpdated:         now,
		})
	}

	if err := uc.ledgerRepo.UpsertBatch(ctx, entries); err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeStoreUnavailable,
			"failed to save ledger batch",
			err,
		)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			slog.Warn("Failed to invalidate ledger view cache after save", "error", err)
		}
	}

	slog.Info("Ledger batch saved", "rows", len(entries))

	return &SaveLedgerOutput{Saved: len(entries)}, nil
}
