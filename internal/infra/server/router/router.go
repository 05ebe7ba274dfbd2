// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/credit-ledger/backend/internal/integration/entrypoint/controller"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	importController    *controller.ImportController
	ledgerController    *controller.LedgerController
	paymentController   *controller.PaymentController
	dashboardController *controller.DashboardController
	statementController *controller.StatementController
	reminderController  *controller.ReminderController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	importController *controller.ImportController,
	ledgerController *controller.LedgerController,
	paymentController *controller.PaymentController,
	dashboardController *controller.DashboardController,
	statementController *controller.StatementController,
	reminderController *controller.ReminderController,
) *Router {
	return &Router{
		healthController:    healthController,
		importController:    importController,
		ledgerController:    ledgerController,
		paymentController:   paymentController,
		dashboardController: dashboardController,
		statementController: statementController,
		reminderController:  reminderController,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.importController != nil {
			v1.POST("/imports", r.importController.Import)
		}

		if r.ledgerController != nil {
			ledger := v1.Group("/ledger")
			{
				ledger.GET("", r.ledgerController.Get)
				ledger.PUT("", r.ledgerController.Save)
				ledger.DELETE("", r.ledgerController.Clear)
			}
		}

		if r.paymentController != nil {
			payments := v1.Group("/payments")
			{
				payments.POST("", r.paymentController.Record)
				payments.GET("/:phone", r.paymentController.List)
			}
		}

		if r.dashboardController != nil {
			v1.GET("/dashboard/summary", r.dashboardController.Summary)
		}

		if r.statementController != nil {
			v1.GET("/statements/:phone", r.statementController.Get)
		}

		if r.reminderController != nil {
			v1.POST("/reminders", r.reminderController.Queue)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
