// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/application/usecase/dashboard"
	"github.com/credit-ledger/backend/internal/application/usecase/importing"
	"github.com/credit-ledger/backend/internal/application/usecase/ledger"
	"github.com/credit-ledger/backend/internal/application/usecase/payment"
	"github.com/credit-ledger/backend/internal/application/usecase/reminder"
	"github.com/credit-ledger/backend/internal/application/usecase/statement"
	"github.com/credit-ledger/backend/internal/domain/entity"
	"github.com/credit-ledger/backend/internal/infra/server/router"
	"github.com/credit-ledger/backend/internal/integration/cache"
	"github.com/credit-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/credit-ledger/backend/internal/integration/importer"
	"github.com/credit-ledger/backend/internal/integration/persistence"
	"github.com/credit-ledger/backend/internal/integration/persistence/model"
	"github.com/credit-ledger/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Stores, for seeding scenario data directly
	txnRepo    *persistence.RawTransactionRepository
	ledgerRepo *persistence.LedgerRepository
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerSeedSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// newTestContext wires the full application against the shared test stores.
func newTestContext() (*TestContext, error) {
	testDb := mock.NewDb([]any{
		&model.RawTransactionModel{},
		&model.ReceiptItemModel{},
		&model.LedgerEntryModel{},
		&model.PaymentEventModel{},
		&model.ReminderJobModel{},
	})
	if err := testDb.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset test database: %w", err)
	}

	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return nil, fmt.Errorf("failed to flush test redis: %w", err)
	}
	viewCache := cache.NewRedisLedgerViewCache(redisClient)

	txnRepo := persistence.NewRawTransactionRepository(testDb.Conn)
	ledgerRepo := persistence.NewLedgerRepository(testDb.Conn)
	paymentRepo := persistence.NewPaymentRepository(testDb.Conn)
	reminderQueueRepo := persistence.NewReminderQueueRepository(testDb.Conn)

	aggregateUseCase := ledger.NewAggregateTransactionsUseCase()
	reconcileUseCase := ledger.NewReconcileLedgerUseCase(ledgerRepo)
	getLedgerUseCase := ledger.NewGetLedgerUseCase(txnRepo, aggregateUseCase, reconcileUseCase, viewCache)
	saveLedgerUseCase := ledger.NewSaveLedgerUseCase(ledgerRepo, viewCache)
	clearLedgerUseCase := ledger.NewClearLedgerUseCase(ledgerRepo, viewCache)
	importUseCase := importing.NewImportBatchUseCase(txnRepo, viewCache)
	recordPaymentUseCase := payment.NewRecordPaymentUseCase(ledgerRepo, paymentRepo, viewCache)
	listPaymentsUseCase := payment.NewListPaymentsUseCase(paymentRepo)
	summaryUseCase := dashboard.NewGetSummaryUseCase(getLedgerUseCase)
	statementUseCase := statement.NewGetStatementUseCase(txnRepo, ledgerRepo, paymentRepo)
	queueRemindersUseCase := reminder.NewQueueRemindersUseCase(reminderQueueRepo, getLedgerUseCase)

	r := router.NewRouter(
		controller.NewHealthController(func() bool { return true }),
		controller.NewImportController(importer.NewPOSExcelReader("receipts", "receiptsWithItems"), importUseCase, 10),
		controller.NewLedgerController(getLedgerUseCase, saveLedgerUseCase, clearLedgerUseCase),
		controller.NewPaymentController(recordPaymentUseCase, listPaymentsUseCase),
		controller.NewDashboardController(summaryUseCase),
		controller.NewStatementController(statementUseCase),
		controller.NewReminderController(queueRemindersUseCase),
	)

	tc := &TestContext{
		txnRepo:    txnRepo,
		ledgerRepo: ledgerRepo,
	}
	tc.engine = r.Setup("test")
	tc.server = httptest.NewServer(tc.engine)

	return tc, nil
}

// registerSeedSteps registers data seeding steps.
func registerSeedSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the imported batch contains transactions:$`, theImportedBatchContainsTransactions)
	ctx.Step(`^the ledger contains rows:$`, theLedgerContainsRows)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

// Seeding step implementations

func theImportedBatchContainsTransactions(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	transactions := make([]*entity.RawTransaction, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row["date"])
		if err != nil {
			return fmt.Errorf("bad date %q: %w", row["date"], err)
		}
		total, err := decimal.NewFromString(row["total"])
		if err != nil {
			return fmt.Errorf("bad total %q: %w", row["total"], err)
		}

		transactions = append(transactions, &entity.RawTransaction{
			ReceiptID:        row["receipt_id"],
			Date:             date,
			CustomerName:     row["name"],
			CustomerPhoneRaw: row["phone"],
			Phone:            row["phone"],
			Total:            total,
			PaymentMode:      entity.PaymentMode(row["mode"]),
		})
	}

	return tc.txnRepo.ReplaceBatch(context.Background(), transactions, nil)
}

func theLedgerContainsRows(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		entry := entity.NewLedgerEntry(row["phone"], row["name"])
		entry.Email = row["email"]

		if entry.AmountDue, err = optionalDecimal(row["amount_due"]); err != nil {
			return err
		}
		if entry.PreviousBalance, err = optionalDecimal(row["previous_balance"]); err != nil {
			return err
		}
		if entry.AdvanceAmount, err = optionalDecimal(row["advance_amount"]); err != nil {
			return err
		}
		if entry.AmountPaid, err = optionalDecimal(row["amount_paid"]); err != nil {
			return err
		}
		if status := row["status"]; status != "" {
			entry.PaymentStatus = entity.PaymentStatus(status)
		}
		entry.RemainingAmount = entity.ComputeRemaining(
			entry.AmountDue, entry.PreviousBalance, entry.AdvanceAmount, entry.AmountPaid,
		)

		if err := tc.ledgerRepo.Upsert(context.Background(), entry); err != nil {
			return fmt.Errorf("failed to seed ledger row for %s: %w", entry.Phone, err)
		}
	}

	return nil
}

// tableRows converts a godog table with a header row into per-row maps.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = strings.TrimSpace(cell.Value)
	}

	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, tableRow := range table.Rows[1:] {
		row := make(map[string]string, len(header))
		for i, cell := range tableRow.Cells {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(cell.Value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func optionalDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// HTTP step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	return sendRequest(ctx, method, endpoint, bytes.NewBufferString(body.Content))
}

func sendRequest(ctx context.Context, method, endpoint string, body io.Reader) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return ctx, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ctx, fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return ctx, fmt.Errorf("failed to read response body: %w", err)
	}

	return SetTestContext(ctx, tc), nil
}

// Response step implementations

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	_, err := responseField(ctx, field)
	return err
}

// responseField resolves a dotted field path in the JSON response body.
func responseField(ctx context.Context, field string) (interface{}, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}

	var data interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(field, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
		}
	}

	return current, nil
}
