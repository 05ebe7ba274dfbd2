// Package payment contains payment recording use cases.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// receivedOnLayout is the date format stored on the ledger entry for display.
const receivedOnLayout = "2006-01-02"

// RecordPaymentInput represents the input for payment recording.
type RecordPaymentInput struct {
	Phone       string
	Amount      decimal.Decimal
	Mode        string
	PaymentDate time.Time
	Remarks     string
}

// RecordPaymentOutput represents the output of payment recording.
type RecordPaymentOutput struct {
	Event *entity.PaymentEvent
	Entry *entity.LedgerEntry
}

// RecordPaymentUseCase applies an incremental payment to a customer's ledger
// entry: it appends a PaymentEvent and updates the entry's paid total,
// remaining snapshot and status as one atomic store operation.
//
// The remaining balance is derived from the entry's own stored due, previous
// balance and advance - the last-reconciled snapshot - not from a freshly
// recomputed aggregate. Status follows a conservative rule: remaining <= 0
// becomes Settled, otherwise any paid amount means Partial, otherwise Due.
// Advance is never derived here; it is only reachable through a manual edit
// in the bulk ledger save.
type RecordPaymentUseCase struct {
	ledgerRepo  adapter.LedgerRepository
	paymentRepo adapter.PaymentRepository
	cache       adapter.LedgerViewCache
}

// NewRecordPaymentUseCase creates a new RecordPaymentUseCase instance.
func NewRecordPaymentUseCase(
	ledgerRepo adapter.LedgerRepository,
	paymentRepo adapter.PaymentRepository,
	cache adapter.LedgerViewCache,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		ledgerRepo:  ledgerRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// Execute records the payment.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, input RecordPaymentInput) (*RecordPaymentOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			fmt.Sprintf("payment amount must be positive, got %s", input.Amount),
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	entry, err := uc.ledgerRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodePaymentStoreFailure,
			fmt.Sprintf("failed to load ledger entry for %s", input.Phone),
			err,
		)
	}
	if entry == nil {
		// A ledger row must be materialized through reconciliation + save
		// before payments can be recorded against it.
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeUnknownCustomer,
			fmt.Sprintf("no ledger row exists for phone %s", input.Phone),
			domainerror.ErrUnknownCustomer,
		)
	}

	event := entity.NewPaymentEvent(input.Phone, input.Amount, input.Mode, input.PaymentDate, input.Remarks)

	newPaid := entry.AmountPaid.Add(input.Amount)
	newRemaining := entity.ComputeRemaining(entry.AmountDue, entry.PreviousBalance, entry.AdvanceAmount, newPaid)

	entry.AmountPaid = newPaid
	entry.RemainingAmount = newRemaining
	entry.PaymentMode = input.Mode
	entry.ReceivedOn = input.PaymentDate.Format(receivedOnLayout)
	entry.PaymentStatus = deriveStatus(newRemaining, newPaid)
	entry.LastUpdated = time.Now().UTC()

	if err := uc.paymentRepo.RecordPayment(ctx, event, entry); err != nil {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodePaymentStoreFailure,
			fmt.Sprintf("failed to record payment for %s", input.Phone),
			err,
		)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			slog.Warn("Failed to invalidate ledger view cache after payment", "error", err)
		}
	}

	slog.Info("Payment recorded",
		"phone", input.Phone,
		"amount", input.Amount,
		"mode", input.Mode,
		"status", entry.PaymentStatus,
	)

	return &RecordPaymentOutput{Event: event, Entry: entry}, nil
}

// deriveStatus applies the status transition rule for recorded payments.
func deriveStatus(remaining, paid decimal.Decimal) entity.PaymentStatus {
	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		return entity.PaymentStatusSettled
	case paid.IsPositive():
		return entity.PaymentStatusPartial
	default:
		return entity.PaymentStatusDue
	}
}
