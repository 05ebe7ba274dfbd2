// Package statement contains customer statement use cases.
package statement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// GetStatementInput represents the input for a customer statement.
type GetStatementInput struct {
	Phone string
}

// GetStatementOutput is the data feed for a customer's printed bill: their
// receipts and line items for the current batch, the payment audit trail,
// and the reconciled balance figures. Document layout itself is the
// presentation collaborator's job.
type GetStatementOutput struct {
	Phone           string
	Name            string
	Address         string
	Receipts        []*entity.RawTransaction
	Items           []*entity.ReceiptItem
	Payments        []*entity.PaymentEvent
	AmountDue       decimal.Decimal
	PreviousBalance decimal.Decimal
	AdvanceAmount   decimal.Decimal
	AmountPaid      decimal.Decimal
	RemainingAmount decimal.Decimal
	PaymentStatus   entity.PaymentStatus
}

// GetStatementUseCase assembles the per-customer statement.
type GetStatementUseCase struct {
	txnRepo     adapter.RawTransactionRepository
	ledgerRepo  adapter.LedgerRepository
	paymentRepo adapter.PaymentRepository
}

// NewGetStatementUseCase creates a new GetStatementUseCase instance.
func NewGetStatementUseCase(
	txnRepo adapter.RawTransactionRepository,
	ledgerRepo adapter.LedgerRepository,
	paymentRepo adapter.PaymentRepository,
) *GetStatementUseCase {
	return &GetStatementUseCase{
		txnRepo:     txnRepo,
		ledgerRepo:  ledgerRepo,
		paymentRepo: paymentRepo,
	}
}

// Execute assembles the statement for the given phone.
func (uc *GetStatementUseCase) Execute(ctx context.Context, input GetStatementInput) (*GetStatementOutput, error) {
	receipts, err := uc.txnRepo.ListByPhone(ctx, input.Phone)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeStoreUnavailable,
			fmt.Sprintf("failed to load receipts for %s", input.Phone),
			err,
		)
	}

	receiptIDs := make([]string, 0, len(receipts))
	amountDue := decimal.Zero
	name := ""
	for _, r := range receipts {
		receiptIDs = append(receiptIDs, r.ReceiptID)
		amountDue = amountDue.Add(r.Total)
		if name == "" {
			name = r.CustomerName
		}
	}

	var items []*entity.ReceiptItem
	if len(receiptIDs) > 0 {
		items, err = uc.txnRepo.ListItemsByReceiptIDs(ctx, receiptIDs)
		if err != nil {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeStoreUnavailable,
				fmt.Sprintf("failed to load receipt items for %s", input.Phone),
				err,
			)
		}
	}

	entry, err := uc.ledgerRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeStoreUnavailable,
			fmt.Sprintf("failed to load ledger entry for %s", input.Phone),
			err,
		)
	}
	if entry == nil {
		entry = entity.NewLedgerEntry(input.Phone, name)
	}
	if entry.Name != "" {
		name = entry.Name
	}

	payments, err := uc.paymentRepo.ListByPhone(ctx, input.Phone)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeStoreUnavailable,
			fmt.Sprintf("failed to load payments for %s", input.Phone),
			err,
		)
	}

	remaining := entity.ComputeRemaining(amountDue, entry.PreviousBalance, entry.AdvanceAmount, entry.AmountPaid)

	return &GetStatementOutput{
		Phone:           input.Phone,
		Name:            name,
		Address:         entry.Address,
		Receipts:        receipts,
		Items:           items,
		Payments:        payments,
		AmountDue:       amountDue,
		PreviousBalance: entry.PreviousBalance,
		AdvanceAmount:   entry.AdvanceAmount,
		AmountPaid:      entry.AmountPaid,
		RemainingAmount: remaining,
		PaymentStatus:   entry.PaymentStatus,
	}, nil
}
