package ledger

import (
	"context"
	"testing"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// fakeTxnRepository serves a fixed transaction batch.
type fakeTxnRepository struct {
	transactions []*entity.RawTransaction
	listCalls    int
}

func (f *fakeTxnRepository) ReplaceBatch(_ context.Context, transactions []*entity.RawTransaction, _ []*entity.ReceiptItem) error {
	f.transactions = transactions
	return nil
}

func (f *fakeTxnRepository) ListAll(_ context.Context) ([]*entity.RawTransaction, error) {
	f.listCalls++
	return f.transactions, nil
}

func (f *fakeTxnRepository) ListByPhone(_ context.Context, phone string) ([]*entity.RawTransaction, error) {
	var out []*entity.RawTransaction
	for _, txn := range f.transactions {
		if txn.Phone == phone {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (f *fakeTxnRepository) ListItemsByReceiptIDs(_ context.Context, _ []string) ([]*entity.ReceiptItem, error) {
	return nil, nil
}

func (f *fakeTxnRepository) ClearBatch(_ context.Context) error {
	f.transactions = nil
	return nil
}

func newGetLedgerFixture(cache *fakeViewCache) (*GetLedgerUseCase, *fakeTxnRepository, *fakeLedgerRepository) {
	txnRepo := &fakeTxnRepository{
		transactions: []*entity.RawTransaction{
			creditTxn("R1", "Asha", "7234002022", 100),
			creditTxn("R2", "Ravi", "9898989898", 50),
		},
	}
	ledgerRepo := newFakeLedgerRepository()
	uc := NewGetLedgerUseCase(txnRepo, NewAggregateTransactionsUseCase(), NewReconcileLedgerUseCase(ledgerRepo), cache)
	return uc, txnRepo, ledgerRepo
}

func TestGetLedgerComputesAndCaches(t *testing.T) {
	cache := &fakeViewCache{}
	uc, _, _ := newGetLedgerFixture(cache)

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FromCache {
		t.Error("first read must be a recompute, not a cache hit")
	}
	if len(out.Views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(out.Views))
	}
	if len(cache.views) != 2 {
		t.Errorf("expected views to be cached, got %d", len(cache.views))
	}
}

func TestGetLedgerServesCachedSnapshot(t *testing.T) {
	cache := &fakeViewCache{}
	uc, txnRepo, _ := newGetLedgerFixture(cache)

	if _, err := uc.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.FromCache {
		t.Error("second read should be served from cache")
	}
	if txnRepo.listCalls != 1 {
		t.Errorf("cached read must not reload the batch, got %d loads", txnRepo.listCalls)
	}
}

func TestGetLedgerRecomputesAfterInvalidation(t *testing.T) {
	cache := &fakeViewCache{}
	uc, txnRepo, _ := newGetLedgerFixture(cache)

	if _, err := uc.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.Invalidate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FromCache {
		t.Error("read after invalidation must recompute")
	}
	if txnRepo.listCalls != 2 {
		t.Errorf("expected a second batch load after invalidation, got %d", txnRepo.listCalls)
	}
}

func TestGetLedgerWorksWithoutCache(t *testing.T) {
	uc, _, _ := newGetLedgerFixture(nil)
	// nil interface value so the cache branch is skipped entirely
	uc.cache = nil

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(out.Views))
	}
}
