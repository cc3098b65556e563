package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_store/internal/cache"
	"github.com/GTDGit/gtd_store/internal/config"
	"github.com/GTDGit/gtd_store/internal/database"
	"github.com/GTDGit/gtd_store/internal/handler"
	"github.com/GTDGit/gtd_store/internal/middleware"
	"github.com/GTDGit/gtd_store/internal/repository"
	"github.com/GTDGit/gtd_store/internal/service"
	"github.com/GTDGit/gtd_store/internal/sse"
	"github.com/GTDGit/gtd_store/internal/store"
	"github.com/GTDGit/gtd_store/internal/worker"
)

// main is the application entrypoint for the store inventory API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("catalog_source", cfg.Catalog.Source).Msg("starting gtd store")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Build the store from the catalog
	st, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("catalog load failed")
		fmt.Fprintf(os.Stderr, "catalog load failed: %v\n", err)
		os.Exit(1)
	}

	// 4. Connect to Redis for receipt caching (optional)
	var (
		receipts    service.ReceiptStore
		redisHealth handler.Pinger
	)
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected successfully")

		receipts = cache.NewReceiptCache(redisClient, cfg.Redis.ReceiptTTL)
		redisHealth = redisClient
	} else {
		log.Warn().Msg("REDIS_HOST not set, order reference IDs will not be deduplicated")
	}

	// 5. SSE hub
	sseHub := sse.NewHub()
	notifier := sse.NewHubNotifier(sseHub)

	// 6. Initialize services
	inventorySvc := service.NewInventoryService(st, receipts, notifier)
	adminAuthSvc := service.NewAdminAuthService(cfg.Admin, cfg.JWTSecret)

	// 7. Initialize handlers
	loginLimiter := middleware.NewInvalidAuthRateLimiter(5, time.Minute)
	go loginLimiter.Cleanup(5*time.Minute, ctx.Done())

	handlers := &Handlers{
		Health:            handler.NewHealthHandler(inventorySvc, redisHealth),
		Product:           handler.NewProductHandler(inventorySvc),
		Order:             handler.NewOrderHandler(inventorySvc),
		ProductManagement: handler.NewProductManagementHandler(inventorySvc, cfg.Catalog.LowStockThreshold),
		Auth:              handler.NewAuthHandler(adminAuthSvc, loginLimiter),
		SSE:               handler.NewSSEHandler(sseHub, cfg.JWTSecret),
	}

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedHosts))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, middleware.NewJWTMiddleware(cfg.JWTSecret))

	// 9. Start workers
	go worker.NewInventoryReportWorker(
		inventorySvc, notifier,
		cfg.Catalog.LowStockThreshold,
		cfg.Worker.InventoryReportInterval,
	).Start(ctx)

	// 10. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Request contexts end with ctx so SSE streams close on shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 11. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 12. Cancel context to stop workers and SSE streams
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Int("total_quantity", inventorySvc.TotalQuantity()).Msg("Server exited")
}

// loadCatalog builds the store from the builtin catalog or from PostgreSQL.
// The database is only needed for this read and is closed afterwards.
func loadCatalog(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg.Catalog.Source != config.CatalogSourcePostgres {
		return service.NewCatalogService(nil).Load(ctx)
	}

	db, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, cfg.Catalog.MigrationsPath); err != nil {
		return nil, err
	}
	log.Info().Msg("migrations completed successfully")

	return service.NewCatalogService(repository.NewCatalogRepository(db)).Load(ctx)
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health            *handler.HealthHandler
	Product           *handler.ProductHandler
	Order             *handler.OrderHandler
	ProductManagement *handler.ProductManagementHandler
	Auth              *handler.AuthHandler
	SSE               *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	v1 := router.Group("/v1")

	v1.GET("/health", handlers.Health.GetHealth)

	v1.GET("/products", handlers.Product.GetProducts)
	v1.GET("/products/total", handlers.Product.GetTotalQuantity)

	v1.POST("/orders", handlers.Order.CreateOrder)
	v1.GET("/orders/:referenceId", handlers.Order.GetOrder)

	v1.POST("/admin/auth/login", handlers.Auth.Login)
	// EventSource cannot send headers; the stream validates ?token= itself.
	v1.GET("/admin/events", handlers.SSE.Stream)

	admin := v1.Group("/admin")
	admin.Use(jwtMiddleware.Handle())
	{
		admin.GET("/products", handlers.ProductManagement.ListProducts)
		admin.GET("/products/low-stock", handlers.ProductManagement.LowStock)
		admin.POST("/products", handlers.ProductManagement.CreateProduct)
		admin.DELETE("/products/:name", handlers.ProductManagement.DeleteProduct)
		admin.PUT("/products/:name/quantity", handlers.ProductManagement.UpdateQuantity)
		admin.PUT("/products/:name/status", handlers.ProductManagement.UpdateStatus)
		admin.PUT("/products/:name/promotion", handlers.ProductManagement.SetPromotion)
		admin.DELETE("/products/:name/promotion", handlers.ProductManagement.RemovePromotion)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
