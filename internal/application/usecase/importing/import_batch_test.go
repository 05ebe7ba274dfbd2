package importing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

type fakeTxnRepository struct {
	transactions []*entity.RawTransaction
	items        []*entity.ReceiptItem
	replaceCalls int
	fail         error
}

func (f *fakeTxnRepository) ReplaceBatch(_ context.Context, transactions []*entity.RawTransaction, items []*entity.ReceiptItem) error {
	if f.fail != nil {
		return f.fail
	}
	f.transactions = transactions
	f.items = items
	f.replaceCalls++
	return nil
}

func (f *fakeTxnRepository) ListAll(_ context.Context) ([]*entity.RawTransaction, error) {
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
	return f.items, nil
}

func (f *fakeTxnRepository) ClearBatch(_ context.Context) error {
	f.transactions = nil
	f.items = nil
	return nil
}

type fakeViewCache struct {
	invalidated int
}

func (f *fakeViewCache) Get(_ context.Context) ([]*entity.LedgerView, error) { return nil, nil }
func (f *fakeViewCache) Set(_ context.Context, _ []*entity.LedgerView) error { return nil }
func (f *fakeViewCache) Invalidate(_ context.Context) error                  { f.invalidated++; return nil }

func txn(receiptID, phone string, mode entity.PaymentMode) *entity.RawTransaction {
	return &entity.RawTransaction{
		ReceiptID:        receiptID,
		CustomerName:     "Asha",
		CustomerPhoneRaw: phone,
		Total:            decimal.NewFromInt(100),
		PaymentMode:      mode,
	}
}

func item(receiptID, entryType string) *entity.ReceiptItem {
	return &entity.ReceiptItem{
		ReceiptID: receiptID,
		EntryType: entryType,
		ItemName:  "Milk 500ml",
		Quantity:  decimal.NewFromInt(2),
	}
}

func TestImportBatchFiltersAndCounts(t *testing.T) {
	repo := &fakeTxnRepository{}
	cache := &fakeViewCache{}
	uc := NewImportBatchUseCase(repo, cache)

	out, err := uc.Execute(context.Background(), ImportBatchInput{
		Transactions: []*entity.RawTransaction{
			txn("R1", "7234002022", entity.PaymentModeCredit),
			txn("R2", "917234002022", entity.PaymentModeCredit),
			txn("R3", "9898989898", entity.PaymentModeCash),
			txn("R4", "", entity.PaymentModeCredit),
			txn("R5", "not-a-number", entity.PaymentModeCredit),
		},
		Items: []*entity.ReceiptItem{
			item("R1", entity.EntryTypeItem),
			item("R1", "Charge"),
			item("R3", entity.EntryTypeItem),
			item("R9", entity.EntryTypeItem),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.CreditTransactions != 2 {
		t.Errorf("expected 2 credit transactions, got %d", out.CreditTransactions)
	}
	if out.SkippedNonCredit != 1 {
		t.Errorf("expected 1 non-credit skip, got %d", out.SkippedNonCredit)
	}
	if out.SkippedNoIdentity != 2 {
		t.Errorf("expected 2 identity skips, got %d", out.SkippedNoIdentity)
	}
	// Only R1's Item line survives: charges, dropped receipts and unknown
	// receipts are all filtered out.
	if out.Items != 1 {
		t.Errorf("expected 1 kept item, got %d", out.Items)
	}

	if repo.transactions[1].Phone != "7234002022" {
		t.Errorf("expected country prefix stripped before storage, got %s", repo.transactions[1].Phone)
	}
	if cache.invalidated != 1 {
		t.Errorf("expected one cache invalidation, got %d", cache.invalidated)
	}
}

func TestImportBatchRejectsEmptyCreditBatch(t *testing.T) {
	repo := &fakeTxnRepository{}
	uc := NewImportBatchUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), ImportBatchInput{
		Transactions: []*entity.RawTransaction{
			txn("R1", "9898989898", entity.PaymentModeCash),
			txn("R2", "", entity.PaymentModeCredit),
		},
	})
	if !errors.Is(err, domainerror.ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
	if repo.replaceCalls != 0 {
		t.Error("empty batch must not touch the store")
	}
}

func TestImportBatchReplaceIsAtomicOnFailure(t *testing.T) {
	repo := &fakeTxnRepository{fail: errors.New("locked")}
	cache := &fakeViewCache{}
	uc := NewImportBatchUseCase(repo, cache)

	_, err := uc.Execute(context.Background(), ImportBatchInput{
		Transactions: []*entity.RawTransaction{txn("R1", "7234002022", entity.PaymentModeCredit)},
	})
	if err == nil {
		t.Fatal("expected store failure to surface")
	}

	var importErr *domainerror.ImportError
	if !errors.As(err, &importErr) || importErr.Code != domainerror.ErrCodeBatchStoreFailure {
		t.Errorf("expected batch store failure code, got %v", err)
	}
	if cache.invalidated != 0 {
		t.Error("failed import must not invalidate the cache")
	}
}

func TestImportBatchReimportReplacesPriorBatch(t *testing.T) {
	repo := &fakeTxnRepository{}
	uc := NewImportBatchUseCase(repo, nil)

	first := ImportBatchInput{
		Transactions: []*entity.RawTransaction{
			txn("R1", "7234002022", entity.PaymentModeCredit),
			txn("R2", "9898989898", entity.PaymentModeCredit),
		},
	}
	if _, err := uc.Execute(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := ImportBatchInput{
		Transactions: []*entity.RawTransaction{txn("R9", "7234002022", entity.PaymentModeCredit)},
	}
	out, err := uc.Execute(context.Background(), second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.CreditTransactions != 1 || len(repo.transactions) != 1 {
		t.Errorf("expected second import to fully replace the batch, store holds %d rows", len(repo.transactions))
	}
	if repo.transactions[0].ReceiptID != "R9" {
		t.Errorf("expected new batch contents, got receipt %s", repo.transactions[0].ReceiptID)
	}
}
