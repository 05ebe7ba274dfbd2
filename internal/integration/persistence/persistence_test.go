package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/credit-ledger/backend/internal/domain/entity"
	"github.com/credit-ledger/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.RawTransactionModel{},
		&model.ReceiptItemModel{},
		&model.LedgerEntryModel{},
		&model.PaymentEventModel{},
		&model.ReminderJobModel{},
	))

	return db
}

func testEntry(phone, name string, due int64) *entity.LedgerEntry {
	entry := entity.NewLedgerEntry(phone, name)
	entry.AmountDue = decimal.NewFromInt(due)
	entry.RemainingAmount = decimal.NewFromInt(due)
	return entry
}

func TestLedgerRepositoryUpsertRoundTrip(t *testing.T) {
	repo := NewLedgerRepository(newTestDB(t))
	ctx := context.Background()

	entry := testEntry("7234002022", "Asha", 160)
	entry.Remarks = "pays on Fridays"
	require.NoError(t, repo.Upsert(ctx, entry))

	got, err := repo.GetByPhone(ctx, "7234002022")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Asha", got.Name)
	assert.True(t, got.AmountDue.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, "pays on Fridays", got.Remarks)

	// A second upsert for the same phone replaces, never duplicates.
	entry.AmountPaid = decimal.NewFromInt(60)
	entry.PaymentStatus = entity.PaymentStatusPartial
	require.NoError(t, repo.Upsert(ctx, entry))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.PaymentStatusPartial, all[0].PaymentStatus)
	assert.True(t, all[0].AmountPaid.Equal(decimal.NewFromInt(60)))
}

func TestLedgerRepositoryGetByPhoneMissing(t *testing.T) {
	repo := NewLedgerRepository(newTestDB(t))

	got, err := repo.GetByPhone(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLedgerRepositoryBatchAndOrdering(t *testing.T) {
	repo := NewLedgerRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertBatch(ctx, []*entity.LedgerEntry{
		testEntry("9898989898", "Ravi", 50),
		testEntry("7234002022", "Asha", 160),
	}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "7234002022", all[0].Phone)
	assert.Equal(t, "9898989898", all[1].Phone)

	require.NoError(t, repo.ClearAll(ctx))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPaymentRepositoryRecordsEventAndEntryTogether(t *testing.T) {
	db := newTestDB(t)
	ledgerRepo := NewLedgerRepository(db)
	paymentRepo := NewPaymentRepository(db)
	ctx := context.Background()

	entry := testEntry("7234002022", "Asha", 160)
	require.NoError(t, ledgerRepo.Upsert(ctx, entry))

	entry.AmountPaid = decimal.NewFromInt(60)
	entry.RemainingAmount = decimal.NewFromInt(100)
	entry.PaymentStatus = entity.PaymentStatusPartial
	event := entity.NewPaymentEvent("7234002022", decimal.NewFromInt(60), "UPI", time.Now().UTC(), "")

	require.NoError(t, paymentRepo.RecordPayment(ctx, event, entry))

	events, err := paymentRepo.ListByPhone(ctx, "7234002022")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.True(t, events[0].Amount.Equal(decimal.NewFromInt(60)))

	stored, err := ledgerRepo.GetByPhone(ctx, "7234002022")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, stored.PaymentStatus)
	assert.True(t, stored.AmountPaid.Equal(decimal.NewFromInt(60)))
}

func TestPaymentRepositoryListOrdersOldestFirst(t *testing.T) {
	db := newTestDB(t)
	paymentRepo := NewPaymentRepository(db)
	ctx := context.Background()

	entry := testEntry("7234002022", "Asha", 160)

	first := entity.NewPaymentEvent("7234002022", decimal.NewFromInt(10), "Cash", time.Now().UTC(), "")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	second := entity.NewPaymentEvent("7234002022", decimal.NewFromInt(20), "UPI", time.Now().UTC(), "")

	require.NoError(t, paymentRepo.RecordPayment(ctx, second, entry))
	require.NoError(t, paymentRepo.RecordPayment(ctx, first, entry))

	events, err := paymentRepo.ListByPhone(ctx, "7234002022")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.True(t, events[1].Amount.Equal(decimal.NewFromInt(20)))
}

func TestRawTransactionRepositoryReplaceBatch(t *testing.T) {
	repo := NewRawTransactionRepository(newTestDB(t))
	ctx := context.Background()

	first := []*entity.RawTransaction{
		{ReceiptID: "R1", CustomerName: "Asha", Phone: "7234002022", Total: decimal.NewFromInt(100), PaymentMode: entity.PaymentModeCredit},
		{ReceiptID: "R2", CustomerName: "Ravi", Phone: "9898989898", Total: decimal.NewFromInt(50), PaymentMode: entity.PaymentModeCredit},
	}
	items := []*entity.ReceiptItem{
		{ReceiptID: "R1", EntryType: entity.EntryTypeItem, ItemName: "Milk 500ml", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(30), Amount: decimal.NewFromInt(60)},
	}
	require.NoError(t, repo.ReplaceBatch(ctx, first, items))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Import order survives the round trip.
	assert.Equal(t, "R1", all[0].ReceiptID)
	assert.Equal(t, "R2", all[1].ReceiptID)

	second := []*entity.RawTransaction{
		{ReceiptID: "R9", CustomerName: "Meena", Phone: "8888888888", Total: decimal.NewFromInt(75), PaymentMode: entity.PaymentModeCredit},
	}
	require.NoError(t, repo.ReplaceBatch(ctx, second, nil))

	all, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "R9", all[0].ReceiptID)

	// Items from the replaced batch are gone too.
	gone, err := repo.ListItemsByReceiptIDs(ctx, []string{"R1"})
	require.NoError(t, err)
	assert.Empty(t, gone)
}

func TestRawTransactionRepositoryListByPhone(t *testing.T) {
	repo := NewRawTransactionRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceBatch(ctx, []*entity.RawTransaction{
		{ReceiptID: "R1", Phone: "7234002022", Total: decimal.NewFromInt(100), PaymentMode: entity.PaymentModeCredit},
		{ReceiptID: "R2", Phone: "9898989898", Total: decimal.NewFromInt(50), PaymentMode: entity.PaymentModeCredit},
		{ReceiptID: "R3", Phone: "7234002022", Total: decimal.NewFromInt(60), PaymentMode: entity.PaymentModeCredit},
	}, nil))

	mine, err := repo.ListByPhone(ctx, "7234002022")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "R1", mine[0].ReceiptID)
	assert.Equal(t, "R3", mine[1].ReceiptID)
}

func TestRawTransactionRepositoryListItemsEmptyIDs(t *testing.T) {
	repo := NewRawTransactionRepository(newTestDB(t))

	items, err := repo.ListItemsByReceiptIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestReminderQueueRepositoryPendingJobs(t *testing.T) {
	repo := NewReminderQueueRepository(newTestDB(t))
	ctx := context.Background()

	due := entity.NewReminderJob("7234002022", "asha@example.com", "Asha", decimal.NewFromInt(160))
	due.ScheduledAt = time.Now().UTC().Add(-time.Minute)

	future := entity.NewReminderJob("9898989898", "ravi@example.com", "Ravi", decimal.NewFromInt(50))
	future.ScheduledAt = time.Now().UTC().Add(time.Hour)

	sent := entity.NewReminderJob("8888888888", "meena@example.com", "Meena", decimal.NewFromInt(20))
	sent.ScheduledAt = time.Now().UTC().Add(-time.Minute)
	sent.MarkSent("provider-1")

	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, future))
	require.NoError(t, repo.Create(ctx, sent))

	pending, err := repo.GetPendingJobs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, due.ID, pending[0].ID)
}

func TestReminderQueueRepositoryUpdateAndGetByID(t *testing.T) {
	repo := NewReminderQueueRepository(newTestDB(t))
	ctx := context.Background()

	job := entity.NewReminderJob("7234002022", "asha@example.com", "Asha", decimal.NewFromInt(160))
	require.NoError(t, repo.Create(ctx, job))

	job.MarkSent("provider-42")
	require.NoError(t, repo.Update(ctx, job))

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.ReminderStatusSent, stored.Status)
	assert.Equal(t, "provider-42", stored.ProviderID)
	require.NotNil(t, stored.ProcessedAt)

	missing, err := repo.GetByID(ctx, entity.NewReminderJob("0", "", "", decimal.Zero).ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
