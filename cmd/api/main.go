// Package main is the entry point for the Credit Ledger API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/credit-ledger/backend/config"
	"github.com/credit-ledger/backend/internal/application/adapter"
	"github.com/credit-ledger/backend/internal/application/usecase/dashboard"
	"github.com/credit-ledger/backend/internal/application/usecase/importing"
	"github.com/credit-ledger/backend/internal/application/usecase/ledger"
	"github.com/credit-ledger/backend/internal/application/usecase/payment"
	"github.com/credit-ledger/backend/internal/application/usecase/reminder"
	"github.com/credit-ledger/backend/internal/application/usecase/statement"
	"github.com/credit-ledger/backend/internal/infra/db"
	"github.com/credit-ledger/backend/internal/infra/server/router"
	"github.com/credit-ledger/backend/internal/integration/cache"
	"github.com/credit-ledger/backend/internal/integration/email"
	"github.com/credit-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/credit-ledger/backend/internal/integration/importer"
	"github.com/credit-ledger/backend/internal/integration/persistence"
	"github.com/credit-ledger/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Credit Ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.RawTransactionModel{},
		&model.ReceiptItemModel{},
		&model.LedgerEntryModel{},
		&model.PaymentEventModel{},
		&model.ReminderJobModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Ledger view cache: Redis when enabled, in-process otherwise
	var viewCache adapter.LedgerViewCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		viewCache = cache.NewRedisLedgerViewCache(redisClient)
		slog.Info("Redis ledger view cache enabled", "addr", cfg.Redis.Addr)
	} else {
		viewCache = cache.NewInMemoryLedgerViewCache()
		slog.Info("In-memory ledger view cache enabled")
	}

	// Create repositories
	txnRepo := persistence.NewRawTransactionRepository(database.DB())
	ledgerRepo := persistence.NewLedgerRepository(database.DB())
	paymentRepo := persistence.NewPaymentRepository(database.DB())
	reminderQueueRepo := persistence.NewReminderQueueRepository(database.DB())

	// Create use cases
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

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck)
	importController := controller.NewImportController(
		importer.NewPOSExcelReader(cfg.Import.ReceiptsSheet, cfg.Import.ItemsSheet),
		importUseCase,
		int64(cfg.Import.MaxUploadMB),
	)
	ledgerController := controller.NewLedgerController(getLedgerUseCase, saveLedgerUseCase, clearLedgerUseCase)
	paymentController := controller.NewPaymentController(recordPaymentUseCase, listPaymentsUseCase)
	dashboardController := controller.NewDashboardController(summaryUseCase)
	statementController := controller.NewStatementController(statementUseCase)
	reminderController := controller.NewReminderController(queueRemindersUseCase)

	// Start the reminder worker when configured
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if cfg.Email.WorkerEnabled && cfg.Email.ResendAPIKey != "" {
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		worker := email.NewWorker(reminderQueueRepo, sender, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
		go worker.Start(workerCtx)
	} else {
		slog.Info("Reminder worker disabled")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		importController,
		ledgerController,
		paymentController,
		dashboardController,
		statementController,
		reminderController,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
