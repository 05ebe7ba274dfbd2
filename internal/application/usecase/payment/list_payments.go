package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// ListPaymentsInput represents the input for listing a customer's payments.
type ListPaymentsInput struct {
	Phone string
}

// ListPaymentsOutput represents the output of listing a customer's payments.
// Total is the sum over the event stream; it can be cross-checked against
// the ledger entry's AmountPaid.
type ListPaymentsOutput struct {
	Events []*entity.PaymentEvent
	Total  decimal.Decimal
}

// ListPaymentsUseCase returns a customer's append-only payment audit trail.
type ListPaymentsUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(paymentRepo adapter.PaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{paymentRepo: paymentRepo}
}

// Execute lists the payment events for the given phone, oldest first.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	events, err := uc.paymentRepo.ListByPhone(ctx, input.Phone)
	if err != nil {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodePaymentStoreFailure,
			fmt.Sprintf("failed to list payments for %s", input.Phone),
			err,
		)
	}

	total := decimal.Zero
	for _, event := range events {
		total = total.Add(event.Amount)
	}

	return &ListPaymentsOutput{Events: events, Total: total}, nil
}
