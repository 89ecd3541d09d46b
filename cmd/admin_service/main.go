package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/lux-storefront/internal/alert"
	"github.com/ridloal/lux-storefront/internal/catalog"
	ledgerAPI "github.com/ridloal/lux-storefront/internal/ledger/api"
	ledgerRepo "github.com/ridloal/lux-storefront/internal/ledger/repository"
	ledgerService "github.com/ridloal/lux-storefront/internal/ledger/service"
	"github.com/ridloal/lux-storefront/internal/media"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/config"
	"github.com/ridloal/lux-storefront/internal/platform/database"
	"github.com/ridloal/lux-storefront/internal/platform/events"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
	productAPI "github.com/ridloal/lux-storefront/internal/product/api"
	productRepo "github.com/ridloal/lux-storefront/internal/product/repository"
	productService "github.com/ridloal/lux-storefront/internal/product/service"
	"github.com/ridloal/lux-storefront/internal/report"
)

func main() {
	// Load Config
	config.LoadDotEnv()
	logCfg := config.LoadLogConfig()
	dbCfg := config.LoadStoreDBConfig()
	serverCfg := config.LoadServerConfig("8082")
	authCfg := config.LoadAuthConfig()
	ledgerCfg := config.LoadLedgerConfig()
	mediaCfg := config.LoadMediaConfig()
	advisorCfg := config.LoadAdvisorConfig()
	reportCfg := config.LoadReportConfig()

	// Setup Logger
	if err := logger.Setup(logger.Options{Mode: logCfg.Mode, Filename: logCfg.Filename}); err != nil {
		logger.Error("Failed to configure logger, keeping defaults", err)
	}
	defer logger.Sync()
	logger.Info("Starting Admin Service...")

	if authCfg.AdminEmail == "" || authCfg.JWTSecret == "" {
		logger.Warn("ADMIN_EMAIL or JWT_SECRET_KEY is not set; every admin request will be rejected")
	}

	// Setup Database
	db, err := database.Connect(dbCfg.Driver, dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database for Admin Service", err)
		return
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		logger.Error("Failed to migrate database schema", err)
		return
	}

	// Setup Dependencies
	bus := events.NewBus()
	authz := auth.NewAuthorizer(authCfg.AdminEmail)
	verifier := auth.NewTokenVerifier(authCfg.JWTSecret)
	mediaClient := media.NewHTTPClient(mediaCfg.UploadURL, mediaCfg.DeleteURL, mediaCfg.Folder, mediaCfg.Timeout)

	prodRepository := productRepo.NewPostgresProductRepository(db)
	prodService := productService.NewProductService(prodRepository, mediaClient, authz, bus)

	ledgerRepository := ledgerRepo.NewPostgresLedgerRepository(db)
	ledgerSvc := ledgerService.NewLedgerService(ledgerRepository, authz, bus, ledgerService.Options{
		MaxRetries:   ledgerCfg.MaxRetries,
		RetryBackoff: ledgerCfg.RetryBackoff,
	})

	money, err := report.NewMoney(reportCfg.Currency)
	if err != nil {
		logger.Error("Invalid report currency "+reportCfg.Currency, err)
		return
	}
	reportSvc := report.NewReportService(ledgerSvc, report.Calendar{WeekStart: reportCfg.WeekStart, Location: reportCfg.Location}, money)

	advisor := alert.NewHTTPAdvisor(advisorCfg.URL, advisorCfg.Timeout)
	alertSvc := alert.NewAlertService(prodService, ledgerRepository, advisor, authz, advisorCfg.SalesLookback)

	// Admin dashboards refresh from the same event stream the storefront uses.
	hub := catalog.NewHub()
	if err := hub.Attach(bus); err != nil {
		logger.Error("Failed to attach event hub to event bus", err)
		return
	}
	streamHandler := catalog.NewCatalogHandler(catalog.NewCatalogService(prodService), hub)

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false

	admin := router.Group("/api/v1/admin", auth.Middleware(verifier, authz))
	productAPI.NewProductHandler(prodService).RegisterRoutes(admin)
	ledgerAPI.NewLedgerHandler(ledgerSvc).RegisterRoutes(admin)
	report.NewReportHandler(reportSvc).RegisterRoutes(admin)
	alert.NewAlertHandler(alertSvc).RegisterRoutes(admin)
	admin.GET("/stream", streamHandler.Stream)

	logger.Info("Admin Service running on port " + serverCfg.Port)
	logger.Info("Admin Service using advisor at " + advisorCfg.URL)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run Admin Service server", err)
	}
}
