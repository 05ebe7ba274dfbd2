// Package ledger contains ledger reconciliation use cases.
package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
	"github.com/credit-ledger/backend/internal/domain/valueobject"
)

// AggregateTransactionsInput represents the input for transaction aggregation.
type AggregateTransactionsInput struct {
	Transactions []*entity.RawTransaction
}

// AggregateTransactionsOutput represents the output of transaction aggregation.
type AggregateTransactionsOutput struct {
	Aggregates []*entity.CustomerAggregate
}

// AggregateTransactionsUseCase collapses raw credit transactions into one
// summary row per canonical phone.
//
// Ordering contract: aggregates are emitted in first-seen input order, and a
// group's Name is the name on the first transaction encountered for that
// phone in the given order. Re-ordering the input may change which name wins;
// nothing else depends on input order. The use case is a pure function of
// its input.
type AggregateTransactionsUseCase struct{}

// NewAggregateTransactionsUseCase creates a new AggregateTransactionsUseCase instance.
func NewAggregateTransactionsUseCase() *AggregateTransactionsUseCase {
	return &AggregateTransactionsUseCase{}
}

// Execute performs the aggregation.
func (uc *AggregateTransactionsUseCase) Execute(_ context.Context, input AggregateTransactionsInput) (*AggregateTransactionsOutput, error) {
	byPhone := make(map[string]*entity.CustomerAggregate)
	order := make([]string, 0, len(input.Transactions))

	for _, txn := range input.Transactions {
		// The import collaborator filters to credit rows already; tolerate
		// stray rows of other modes by skipping them outright.
		if txn.PaymentMode != entity.PaymentModeCredit {
			continue
		}

		phone := txn.Phone
		if phone == "" {
			normalized, ok := valueobject.NormalizePhone(txn.CustomerPhoneRaw)
			if !ok {
				// Unidentifiable customer: soft-skip, never an error.
				continue
			}
			phone = normalized
		}

		agg, exists := byPhone[phone]
		if !exists {
			agg = &entity.CustomerAggregate{
				Phone:     phone,
				Name:      txn.CustomerName,
				AmountDue: decimal.Zero,
			}
			byPhone[phone] = agg
			order = append(order, phone)
		}
		agg.AmountDue = agg.AmountDue.Add(txn.Total)
	}

	aggregates := make([]*entity.CustomerAggregate, 0, len(order))
	for _, phone := range order {
		aggregates = append(aggregates, byPhone[phone])
	}

	return &AggregateTransactionsOutput{Aggregates: aggregates}, nil
}
