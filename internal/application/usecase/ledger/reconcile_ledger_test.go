package ledger

import (
	"context"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// fakeLedgerRepository is an in-memory adapter.LedgerRepository for tests.
type fakeLedgerRepository struct {
	entries map[string]*entity.LedgerEntry
	upserts int
}

func newFakeLedgerRepository() *fakeLedgerRepository {
	return &fakeLedgerRepository{entries: make(map[string]*entity.LedgerEntry)}
}

func (f *fakeLedgerRepository) GetAll(_ context.Context) ([]*entity.LedgerEntry, error) {
	out := make([]*entity.LedgerEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeLedgerRepository) GetByPhone(_ context.Context, phone string) (*entity.LedgerEntry, error) {
	entry, ok := f.entries[phone]
	if !ok {
		return nil, nil
	}
	clone := *entry
	return &clone, nil
}

func (f *fakeLedgerRepository) Upsert(_ context.Context, entry *entity.LedgerEntry) error {
	f.entries[entry.Phone] = entry
	f.upserts++
	return nil
}

func (f *fakeLedgerRepository) UpsertBatch(_ context.Context, entries []*entity.LedgerEntry) error {
	for _, entry := range entries {
		f.entries[entry.Phone] = entry
	}
	f.upserts += len(entries)
	return nil
}

func (f *fakeLedgerRepository) ClearAll(_ context.Context) error {
	f.entries = make(map[string]*entity.LedgerEntry)
	return nil
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestReconcileMergesStoredEntry(t *testing.T) {
	repo := newFakeLedgerRepository()
	repo.entries["7234002022"] = &entity.LedgerEntry{
		Phone:           "7234002022",
		Name:            "Asha",
		PreviousBalance: dec(40),
		AdvanceAmount:   dec(10),
		AmountPaid:      dec(30),
		PaymentStatus:   entity.PaymentStatusPartial,
		Remarks:         "pays on Fridays",
	}

	uc := NewReconcileLedgerUseCase(repo)
	out, err := uc.Execute(context.Background(), ReconcileLedgerInput{
		Aggregates: []*entity.CustomerAggregate{
			{Phone: "7234002022", Name: "Asha", AmountDue: dec(160)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(out.Views))
	}

	v := out.Views[0]
	// 160 + 40 - 10 - 30 = 160
	if !v.RemainingAmount.Equal(dec(160)) {
		t.Errorf("expected remaining 160, got %s", v.RemainingAmount)
	}
	if v.PaymentStatus != entity.PaymentStatusPartial {
		t.Errorf("expected stored status carried over, got %s", v.PaymentStatus)
	}
	if !v.AdvanceGiven {
		t.Error("expected AdvanceGiven true for positive advance")
	}
	if v.Remarks != "pays on Fridays" {
		t.Errorf("expected stored remarks carried over, got %q", v.Remarks)
	}
}

func TestReconcileSynthesizesDefaultWithoutPersisting(t *testing.T) {
	repo := newFakeLedgerRepository()
	uc := NewReconcileLedgerUseCase(repo)

	out, err := uc.Execute(context.Background(), ReconcileLedgerInput{
		Aggregates: []*entity.CustomerAggregate{
			{Phone: "9898989898", Name: "Ravi", AmountDue: dec(75)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := out.Views[0]
	if v.PaymentStatus != entity.PaymentStatusDue {
		t.Errorf("expected default status Due, got %s", v.PaymentStatus)
	}
	if !v.RemainingAmount.Equal(dec(75)) {
		t.Errorf("expected remaining to equal due for fresh customer, got %s", v.RemainingAmount)
	}

	if len(repo.entries) != 0 || repo.upserts != 0 {
		t.Error("reconcile must not write synthesized rows to the store")
	}
}

func TestReconcileExcludesStoredEntriesWithoutAggregate(t *testing.T) {
	repo := newFakeLedgerRepository()
	repo.entries["1111111111"] = &entity.LedgerEntry{Phone: "1111111111", Name: "Old"}

	uc := NewReconcileLedgerUseCase(repo)
	out, err := uc.Execute(context.Background(), ReconcileLedgerInput{
		Aggregates: []*entity.CustomerAggregate{
			{Phone: "9898989898", Name: "Ravi", AmountDue: dec(10)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Views) != 1 || out.Views[0].Phone != "9898989898" {
		t.Fatalf("expected only aggregated customers in view, got %+v", out.Views)
	}
	if _, still := repo.entries["1111111111"]; !still {
		t.Error("stored entry without aggregate must remain in the store")
	}
}

func TestReconcileSortsByPhoneAndIsIdempotent(t *testing.T) {
	repo := newFakeLedgerRepository()
	uc := NewReconcileLedgerUseCase(repo)

	input := ReconcileLedgerInput{
		Aggregates: []*entity.CustomerAggregate{
			{Phone: "9898989898", Name: "Ravi", AmountDue: dec(50)},
			{Phone: "7234002022", Name: "Asha", AmountDue: dec(160)},
		},
	}

	first, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Views[0].Phone != "7234002022" || first.Views[1].Phone != "9898989898" {
		t.Errorf("expected views sorted by phone ascending, got %s then %s",
			first.Views[0].Phone, first.Views[1].Phone)
	}
	if !reflect.DeepEqual(first.Views, second.Views) {
		t.Error("reconciling twice over an unchanged store must yield identical views")
	}
}
