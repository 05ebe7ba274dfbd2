package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/credit-ledger/backend/internal/domain/entity"
	domainerror "github.com/credit-ledger/backend/internal/domain/error"
)

// fakeViewCache records invalidations for tests.
type fakeViewCache struct {
	views       []*entity.LedgerView
	invalidated int
}

func (f *fakeViewCache) Get(_ context.Context) ([]*entity.LedgerView, error) {
	return f.views, nil
}

func (f *fakeViewCache) Set(_ context.Context, views []*entity.LedgerView) error {
	f.views = views
	return nil
}

func (f *fakeViewCache) Invalidate(_ context.Context) error {
	f.views = nil
	f.invalidated++
	return nil
}

func TestSaveLedgerPersistsAndRecomputesRemaining(t *testing.T) {
	repo := newFakeLedgerRepository()
	cache := &fakeViewCache{views: []*entity.LedgerView{{Phone: "stale"}}}
	uc := NewSaveLedgerUseCase(repo, cache)

	out, err := uc.Execute(context.Background(), SaveLedgerInput{
		Rows: []*entity.LedgerView{
			{
				Phone:           "7234002022",
				Name:            "Asha",
				AmountDue:       dec(160),
				PreviousBalance: dec(40),
				AdvanceAmount:   dec(10),
				AmountPaid:      dec(30),
				PaymentStatus:   entity.PaymentStatusPartial,
				// A drifted snapshot must be ignored and recomputed.
				RemainingAmount: dec(999),
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Saved != 1 {
		t.Fatalf("expected 1 saved row, got %d", out.Saved)
	}

	entry := repo.entries["7234002022"]
	if entry == nil {
		t.Fatal("expected entry to be persisted")
	}
	if !entry.RemainingAmount.Equal(dec(160)) {
		t.Errorf("expected recomputed remaining 160, got %s", entry.RemainingAmount)
	}
	if entry.LastUpdated.IsZero() {
		t.Error("expected LastUpdated to be stamped")
	}
	if cache.invalidated != 1 {
		t.Errorf("expected one cache invalidation, got %d", cache.invalidated)
	}
}

func TestSaveLedgerRejectsMissingPhone(t *testing.T) {
	uc := NewSaveLedgerUseCase(newFakeLedgerRepository(), nil)

	_, err := uc.Execute(context.Background(), SaveLedgerInput{
		Rows: []*entity.LedgerView{{Name: "No Phone", PaymentStatus: entity.PaymentStatusDue}},
	})
	if !errors.Is(err, domainerror.ErrMissingPhoneKey) {
		t.Fatalf("expected ErrMissingPhoneKey, got %v", err)
	}
}

func TestSaveLedgerRejectsDuplicatePhones(t *testing.T) {
	uc := NewSaveLedgerUseCase(newFakeLedgerRepository(), nil)

	_, err := uc.Execute(context.Background(), SaveLedgerInput{
		Rows: []*entity.LedgerView{
			{Phone: "7234002022", PaymentStatus: entity.PaymentStatusDue},
			{Phone: "7234002022", PaymentStatus: entity.PaymentStatusDue},
		},
	})
	if !errors.Is(err, domainerror.ErrDuplicatePhoneKey) {
		t.Fatalf("expected ErrDuplicatePhoneKey, got %v", err)
	}
}

func TestSaveLedgerRejectsInvalidStatus(t *testing.T) {
	uc := NewSaveLedgerUseCase(newFakeLedgerRepository(), nil)

	_, err := uc.Execute(context.Background(), SaveLedgerInput{
		Rows: []*entity.LedgerView{
			{Phone: "7234002022", PaymentStatus: entity.PaymentStatus("Overdue")},
		},
	})
	if !errors.Is(err, domainerror.ErrInvalidPaymentStatus) {
		t.Fatalf("expected ErrInvalidPaymentStatus, got %v", err)
	}
}

func TestSaveLedgerManualAdvanceStatus(t *testing.T) {
	repo := newFakeLedgerRepository()
	uc := NewSaveLedgerUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), SaveLedgerInput{
		Rows: []*entity.LedgerView{
			{
				Phone:         "9898989898",
				Name:          "Ravi",
				AdvanceAmount: dec(200),
				PaymentStatus: entity.PaymentStatusAdvance,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := repo.entries["9898989898"]
	if entry.PaymentStatus != entity.PaymentStatusAdvance {
		t.Errorf("expected manually set Advance status to persist, got %s", entry.PaymentStatus)
	}
	// 0 + 0 - 200 - 0 = -200
	if !entry.RemainingAmount.Equal(dec(-200)) {
		t.Errorf("expected remaining -200, got %s", entry.RemainingAmount)
	}
}

func TestSaveThenReconcileRoundTrip(t *testing.T) {
	repo := newFakeLedgerRepository()
	saveUC := NewSaveLedgerUseCase(repo, nil)
	reconcileUC := NewReconcileLedgerUseCase(repo)

	_, err := saveUC.Execute(context.Background(), SaveLedgerInput{
		Rows: []*entity.LedgerView{
			{
				Phone:           "7234002022",
				Name:            "Asha",
				AmountDue:       dec(100),
				PreviousBalance: dec(40),
				AdvanceAmount:   dec(10),
				AmountPaid:      dec(30),
				PaymentStatus:   entity.PaymentStatusPartial,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	// Next month's batch carries a fresh due; manual fields survive.
	out, err := reconcileUC.Execute(context.Background(), ReconcileLedgerInput{
		Aggregates: []*entity.CustomerAggregate{
			{Phone: "7234002022", Name: "Asha", AmountDue: dec(160)},
		},
	})
	if err != nil {
		t.Fatalf("unexpected reconcile error: %v", err)
	}

	v := out.Views[0]
	if !v.RemainingAmount.Equal(dec(160)) {
		t.Errorf("expected remaining 160 = 160+40-10-30, got %s", v.RemainingAmount)
	}
	if v.PaymentStatus != entity.PaymentStatusPartial {
		t.Errorf("expected saved status to survive re-reconciliation, got %s", v.PaymentStatus)
	}
}
