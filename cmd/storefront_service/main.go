package main

import (
	"github.com/gin-gonic/gin"
	"github.com/ridloal/lux-storefront/internal/catalog"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/config"
	"github.com/ridloal/lux-storefront/internal/platform/database"
	"github.com/ridloal/lux-storefront/internal/platform/events"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
	productRepo "github.com/ridloal/lux-storefront/internal/product/repository"
	productService "github.com/ridloal/lux-storefront/internal/product/service"
)

func main() {
	// Load Config
	config.LoadDotEnv()
	logCfg := config.LoadLogConfig()
	dbCfg := config.LoadStoreDBConfig()
	serverCfg := config.LoadServerConfig("8081")
	notifierCfg := config.LoadNotifierConfig()

	// Setup Logger
	if err := logger.Setup(logger.Options{Mode: logCfg.Mode, Filename: logCfg.Filename}); err != nil {
		logger.Error("Failed to configure logger, keeping defaults", err)
	}
	defer logger.Sync()
	logger.Info("Starting Storefront Service...")

	// Setup Database
	db, err := database.Connect(dbCfg.Driver, dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database for Storefront Service", err)
		return
	}
	defer db.Close()

	// Setup Dependencies. The storefront only reads, so no media client or admin is configured.
	bus := events.NewBus()
	prodRepository := productRepo.NewPostgresProductRepository(db)
	prodService := productService.NewProductService(prodRepository, nil, auth.NewAuthorizer(""), bus)
	catalogService := catalog.NewCatalogService(prodService)

	hub := catalog.NewHub()
	if err := hub.Attach(bus); err != nil {
		logger.Error("Failed to attach catalog hub to event bus", err)
		return
	}

	notifier, err := catalog.NewNotifier(prodRepository, bus, notifierCfg.Schedule)
	if err != nil {
		logger.Error("Invalid catalog poll schedule "+notifierCfg.Schedule, err)
		return
	}
	notifier.Start()
	defer notifier.Stop()

	catalogHandler := catalog.NewCatalogHandler(catalogService, hub)

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiV1 := router.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)

	logger.Info("Storefront Service running on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run Storefront Service server", err)
	}
}
