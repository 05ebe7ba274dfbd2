package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// GetLedgerOutput represents the output of a ledger read.
type GetLedgerOutput struct {
	Views     []*entity.LedgerView
	FromCache bool
}

// GetLedgerUseCase is the consumer-facing read path: it loads the current
// import batch, aggregates it and reconciles against the ledger store,
// serving from the view cache when a cached copy exists.
//
// The cache holds an explicit snapshot that every write path invalidates, so
// a hit is never stale. Cache failures degrade to a recompute; they are
// logged, not surfaced.
type GetLedgerUseCase struct {
	txnRepo     adapter.RawTransactionRepository
	aggregateUC *AggregateTransactionsUseCase
	reconcileUC *ReconcileLedgerUseCase
	cache       adapter.LedgerViewCache
}

// NewGetLedgerUseCase creates a new GetLedgerUseCase instance.
func NewGetLedgerUseCase(
	txnRepo adapter.RawTransactionRepository,
	aggregateUC *AggregateTransactionsUseCase,
	reconcileUC *ReconcileLedgerUseCase,
	cache adapter.LedgerViewCache,
) *GetLedgerUseCase {
	return &GetLedgerUseCase{
		txnRepo:     txnRepo,
		aggregateUC: aggregateUC,
		reconcileUC: reconcileUC,
		cache:       cache,
	}
}

// Execute returns the reconciled ledger view for the current import batch.
func (uc *GetLedgerUseCase) Execute(ctx context.Context) (*GetLedgerOutput, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx)
		if err != nil {
			slog.Warn("Ledger view cache read failed, recomputing", "error", err)
		} else if cached != nil {
			return &GetLedgerOutput{Views: cached, FromCache: true}, nil
		}
	}

	transactions, err := uc.txnRepo.ListAll(ctx)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeStoreUnavailable,
			"failed to load transaction batch",
			err,
		)
	}

	aggOut, err := uc.aggregateUC.Execute(ctx, AggregateTransactionsInput{Transactions: transactions})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	recOut, err := uc.reconcileUC.Execute(ctx, ReconcileLedgerInput{Aggregates: aggOut.Aggregates})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, recOut.Views); err != nil {
			slog.Warn("Ledger view cache write failed", "error", err)
		}
	}

	return &GetLedgerOutput{Views: recOut.Views}, nil
}

// Views implements the view-provider contract used by the dashboard and
// reminder use cases.
func (uc *GetLedgerUseCase) Views(ctx context.Context) ([]*entity.LedgerView, error) {
	out, err := uc.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return out.Views, nil
}
