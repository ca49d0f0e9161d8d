package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/config"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/dao"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/database"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/metadata"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/registry"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/router"
	"github.com/monish-instinct/satoshi-squad-yantra-2026/internal/service"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
	}).Info("Starting Batch Verification API Server...")

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	config.SetGlobal(cfg)

	// Set log level from config
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	logger.WithFields(logrus.Fields{
		"config_path": configPath,
		"log_level":   logger.GetLevel().String(),
	}).Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.Initialize(&cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	// Verify database connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		logger.WithError(err).Fatal("Database health check failed")
	}

	logger.Info("Database connection established successfully")

	// Initialize DAOs
	batchDAO := dao.NewBatchDAO(db)
	scanLogDAO := dao.NewScanLogDAO(db)
	alertDAO := dao.NewAlertDAO(db)
	auditLogDAO := dao.NewAuditLogDAO(db)
	trustScoreDAO := dao.NewTrustScoreDAO(db)
	consumerReportDAO := dao.NewConsumerReportDAO(db)

	logger.Info("DAOs initialized successfully")

	// Initialize external source clients. A missing registry configuration
	// disables the ledger; verification then runs on the remaining sources.
	var registryClient *registry.Client
	if cfg.Registry.IsRegistryConfigured() {
		registryClient = registry.NewClient(&cfg.Registry, logger)
		logger.WithField("rpc_url", cfg.Registry.RPCURL).Info("Registry client initialized")
	} else {
		logger.Warn("No registry configured, verification degrades to relational store and metadata mirrors")
	}

	metadataClient := metadata.NewClient(&cfg.Metadata, logger)
	logger.WithField("gateways", len(cfg.Metadata.Gateways)).Info("Metadata client initialized")

	// Initialize services
	scanLedger := service.NewScanLedger(scanLogDAO)
	riskService := service.NewRiskService(scanLedger, batchDAO, logger)
	alertService := service.NewAlertService(alertDAO, logger)
	trustScoreService := service.NewTrustScoreService(trustScoreDAO, batchDAO, scanLogDAO, logger)
	scanQueryService := service.NewScanQueryService(scanLogDAO)
	auditQueryService := service.NewAuditQueryService(auditLogDAO)
	reportService := service.NewReportService(consumerReportDAO, logger)

	var registryReader service.RegistryClient
	var registryWriter service.RegistryWriter
	if registryClient != nil {
		registryReader = registryClient
		registryWriter = registryClient
	}

	verificationService := service.NewVerificationService(
		registryReader,
		metadataClient,
		batchDAO,
		scanLogDAO,
		riskService,
		alertService,
		auditLogDAO,
		trustScoreService,
		cfg.Risk.AlertThreshold,
		logger,
	)

	batchService := service.NewBatchService(
		batchDAO,
		registryWriter,
		metadataClient,
		auditLogDAO,
		logger,
	)

	logger.Info("Services initialized successfully")

	// Setup router
	ginRouter := router.SetupRouter(&router.Services{
		Verification: verificationService,
		Batch:        batchService,
		Alert:        alertService,
		ScanQuery:    scanQueryService,
		TrustScore:   trustScoreService,
		AuditQuery:   auditQueryService,
		Report:       reportService,
	}, db)

	// Configure HTTP server
	serverAddr := cfg.Server.GetServerAddress()
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"hostname": cfg.Server.Hostname,
			"port":     cfg.Server.Port,
			"addr":     serverAddr,
		}).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", serverAddr).Info("Server is running")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		logger.WithError(err).Error("Failed to close database connection")
	}

	logger.Info("Server exited gracefully")
}
