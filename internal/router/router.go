package router

import (
	"github.com/gin-gonic/gin"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/database"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/handlers"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/utils"
)

// Services bundles the service layer handed to the router
type Services struct {
	Verification *service.VerificationService
	Batch        *service.BatchService
	Alert        *service.AlertService
	ScanQuery    *service.ScanQueryService
	TrustScore   *service.TrustScoreService
	AuditQuery   *service.AuditQueryService
	Report       *service.ReportService
}

// SetupRouter configures all API routes
func SetupRouter(services *Services, db *database.DB) *gin.Engine {
	router := gin.Default()

	// Global middleware to extract headers and set context. Identity is
	// verified upstream; the actor id header is trusted as-is here.
	router.Use(func(c *gin.Context) {
		if actorID := c.GetHeader("x-actor-id"); actorID != "" {
			utils.SetContextValue(c, "actorID", actorID)
		}
		if correlationID := c.GetHeader("x-correlation-id"); correlationID != "" {
			utils.SetContextValue(c, "correlationID", correlationID)
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		if err := db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		stats := db.Stats()
		c.JSON(200, gin.H{
			"status": "healthy",
			"database": gin.H{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		})
	})

	// Create handlers
	verificationHandler := handlers.NewVerificationHandler(services.Verification)
	batchHandler := handlers.NewBatchHandler(services.Batch)
	alertHandler := handlers.NewAlertHandler(services.Alert)
	scanHandler := handlers.NewScanHandler(services.ScanQuery)
	trustScoreHandler := handlers.NewTrustScoreHandler(services.TrustScore)
	auditHandler := handlers.NewAuditHandler(services.AuditQuery)
	reportHandler := handlers.NewReportHandler(services.Report)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/verify", verificationHandler.Verify)

		// Batch lifecycle routes
		batches := v1.Group("/batches")
		{
			batches.POST("", batchHandler.RegisterBatch)
			batches.GET("", batchHandler.ListBatches)
			batches.GET("/:batchId", batchHandler.GetBatch)
			batches.POST("/:batchId/recall", batchHandler.RecallBatch)
			batches.POST("/:batchId/transfer", batchHandler.TransferBatch)
			batches.GET("/:batchId/scans", scanHandler.ListBatchScans)
			batches.GET("/:batchId/reports", reportHandler.ListBatchReports)
		}

		v1.GET("/scans", scanHandler.ListRecentScans)

		v1.GET("/alerts", alertHandler.ListAlerts)
		v1.POST("/alerts/:alertId/resolve", alertHandler.ResolveAlert)

		v1.POST("/reports", reportHandler.SubmitReport)

		v1.GET("/trust-scores", trustScoreHandler.ListTrustScores)

		v1.GET("/audit-logs", auditHandler.ListAuditLogs)
	}

	return router
}
