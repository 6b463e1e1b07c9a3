package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aurelle-jewellery/aurelle-backend/config"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/controller"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	"github.com/aurelle-jewellery/aurelle-backend/internal/cache"
	"github.com/aurelle-jewellery/aurelle-backend/internal/db"
	"github.com/aurelle-jewellery/aurelle-backend/internal/middleware"
	"github.com/aurelle-jewellery/aurelle-backend/internal/router"
	"github.com/aurelle-jewellery/aurelle-backend/internal/scheduler"
	"github.com/aurelle-jewellery/aurelle-backend/internal/storage"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting AURELLE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed baseline taxonomy rows (no-op when already present)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis is optional; the cache degrades to pass-through when disabled
	if err := cache.Init(&cfg.Redis); err != nil {
		logger.Warn("Failed to connect to Redis, caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	tokenRepo := repository.NewRefreshTokenRepository(db.GetDB())
	adminRepo := repository.NewAdminUserRepository(db.GetDB())
	sessionRepo := repository.NewAdminSessionRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	collectionRepo := repository.NewCollectionRepository(db.GetDB())
	ringTypeRepo := repository.NewRingTypeRepository(db.GetDB())
	gemstoneRepo := repository.NewGemstoneRepository(db.GetDB())
	stoneTypeRepo := repository.NewStoneTypeRepository(db.GetDB())
	metalRepo := repository.NewMetalRepository(db.GetDB())
	sizeRepo := repository.NewProductSizeRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	watchBrandRepo := repository.NewWatchBrandRepository(db.GetDB())
	watchCollectionRepo := repository.NewWatchCollectionRepository(db.GetDB())
	watchRepo := repository.NewWatchRepository(db.GetDB())

	// Initialize services
	catalogService := service.NewCatalogService(
		productRepo,
		categoryRepo,
		collectionRepo,
		ringTypeRepo,
		gemstoneRepo,
		metalRepo,
		sizeRepo,
	)
	userAuthService := service.NewUserAuthService(
		userRepo,
		tokenRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	adminAuthService := service.NewAdminAuthService(
		adminRepo,
		sessionRepo,
		productRepo,
		watchRepo,
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AdminSessionExpiry,
	)
	productAdminService := service.NewProductAdminService(
		productRepo,
		categoryRepo,
		collectionRepo,
		ringTypeRepo,
		gemstoneRepo,
		stoneTypeRepo,
		metalRepo,
	)
	categoryService := service.NewCategoryService(categoryRepo)
	taxonomyService := service.NewTaxonomyService(
		ringTypeRepo,
		gemstoneRepo,
		stoneTypeRepo,
		metalRepo,
		collectionRepo,
		sizeRepo,
		categoryRepo,
	)
	watchService := service.NewWatchService(watchBrandRepo, watchCollectionRepo, watchRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo)

	// Initialize storage
	localStorage, err := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxFileSize)
	if err != nil {
		logger.Fatal("Failed to initialize upload directory", err)
	}
	var s3Storage *storage.S3Storage
	if cfg.S3.Enabled {
		s3Storage = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	}

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService)
	authController := controller.NewAuthController(userAuthService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	watchController := controller.NewWatchController(watchService)
	adminAuthController := controller.NewAdminAuthController(adminAuthService)
	adminProductController := controller.NewAdminProductController(productAdminService)
	categoryController := controller.NewCategoryController(categoryService)
	taxonomyController := controller.NewTaxonomyController(taxonomyService)
	uploadController := controller.NewUploadController(localStorage, s3Storage, cfg.Upload.MaxFileSize)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	adminMiddleware := middleware.NewAdminMiddleware(adminAuthService)

	// Nightly purge of expired sessions and refresh tokens
	cleanup := scheduler.NewCleanupScheduler(sessionRepo, tokenRepo)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("Failed to start cleanup scheduler", err)
	}
	defer cleanup.Stop()

	// Setup router
	r := router.NewRouter(
		catalogController,
		authController,
		favoriteController,
		watchController,
		adminAuthController,
		adminProductController,
		categoryController,
		taxonomyController,
		uploadController,
		authMiddleware,
		adminMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
