package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// ReconcileLedgerInput represents the input for ledger reconciliation.
type ReconcileLedgerInput struct {
	Aggregates []*entity.CustomerAggregate
}

// ReconcileLedgerOutput represents the output of ledger reconciliation.
type ReconcileLedgerOutput struct {
	Views []*entity.LedgerView
}

// ReconcileLedgerUseCase joins aggregates against the persisted ledger store
// to produce the canonical, display-ready ledger view.
//
// This is the read path: it performs no writes. An aggregate with no stored
// entry is merged against a synthesized default row (zero balances, status
// Due) which is NOT written to the store; it only becomes durable through an
// explicit save. Stored entries with no current-period aggregate are excluded
// from the view but remain in the store untouched.
//
// Output order: sorted by phone ascending. Reconciling the same aggregates
// against the same store twice yields identical views.
type ReconcileLedgerUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewReconcileLedgerUseCase creates a new ReconcileLedgerUseCase instance.
func NewReconcileLedgerUseCase(ledgerRepo adapter.LedgerRepository) *ReconcileLedgerUseCase {
	return &ReconcileLedgerUseCase{ledgerRepo: ledgerRepo}
}

// Execute performs the reconciliation merge.
func (uc *ReconcileLedgerUseCase) Execute(ctx context.Context, input ReconcileLedgerInput) (*ReconcileLedgerOutput, error) {
	views := make([]*entity.LedgerView, 0, len(input.Aggregates))

	for _, agg := range input.Aggregates {
		entry, err := uc.ledgerRepo.GetByPhone(ctx, agg.Phone)
		if err != nil {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeStoreUnavailable,
				fmt.Sprintf("failed to load ledger entry for %s", agg.Phone),
				err,
			)
		}
		if entry == nil {
			entry = entity.NewLedgerEntry(agg.Phone, agg.Name)
		}

		remaining := entity.ComputeRemaining(agg.AmountDue, entry.PreviousBalance, entry.AdvanceAmount, entry.AmountPaid)

		views = append(views, &entity.LedgerView{
			Phone:               agg.Phone,
			Name:                agg.Name,
			Address:             entry.Address,
			Email:               entry.Email,
			AmountDue:           agg.AmountDue,
			PreviousBalance:     entry.PreviousBalance,
			AdvanceGiven:        entry.AdvanceAmount.IsPositive(),
			AdvanceAmount:       entry.AdvanceAmount,
			PaymentStatus:       entry.PaymentStatus,
			AmountPaid:          entry.AmountPaid,
			RemainingAmount:     remaining,
			PaymentMode:         entry.PaymentMode,
			ReceivedOn:          entry.ReceivedOn,
			CashCollected:       entry.CashCollected,
			CashDeposited:       entry.CashDeposited,
			Remarks:             entry.Remarks,
			AdvanceCarryForward: entry.AdvanceCarryForward,
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Phone < views[j].Phone
	})

	return &ReconcileLedgerOutput{Views: views}, nil
}
