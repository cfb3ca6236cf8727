package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"catalog-service/internal/catalog"
	"catalog-service/internal/clients"
	"catalog-service/internal/config"
	"catalog-service/internal/events"
	"catalog-service/internal/handlers"
	"catalog-service/internal/messaging"
	"catalog-service/internal/middleware"
	"catalog-service/internal/repository"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/secrets"
	"github.com/Tesseract-Nexus/go-shared/tracing"
)

// @title Catalog API
// @version 1.0.0
// @description Storefront catalog: product loading, filtering, sharing and contact links

// @host localhost:8087
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client
	var redisClient *redis.Client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
	} else {
		// Set Redis password from GCP Secret Manager
		if password := secrets.GetRedisPassword(); password != "" {
			redisOpts.Password = password
		}
		client := redis.NewClient(redisOpts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
			client.Close()
		} else {
			log.Println("✓ Redis connected successfully")
			redisClient = client
		}
		cancel()
	}

	store := newBlobStore(cfg, redisClient)
	catalogRepo := repository.NewCatalogRepository(store, redisClient, cfg.StoreKeyPrefix, cfg.ListingCacheTTL)

	// Initialize event publisher only if NATS_URL is set
	var eventsPublisher *events.Publisher
	if cfg.NATSURL != "" {
		eventsPublisher, err = events.NewPublisher(cfg.NATSURL, cfg.StoreID, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
			eventsPublisher = nil
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer eventsPublisher.Close()

	remoteClient := clients.NewRemoteClient(cfg.RemoteTimeout)
	cat := catalog.New()
	loader := catalog.NewLoader(cat, catalogRepo, remoteClient, cfg.ProductsSource, logger)
	if eventsPublisher != nil {
		loader.Observe(eventsPublisher.HandleChange)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.RemoteTimeout+5*time.Second)
	snap := loader.InitialLoad(loadCtx)
	contact := messaging.NewContact(resolveContact(loadCtx, cfg, catalogRepo, remoteClient, logger))
	cancelLoad()
	logger.WithFields(logrus.Fields{
		"source":  snap.Source,
		"count":   len(snap.Products),
		"contact": contact.Get() != "",
	}).Info("Catalog ready")

	storefrontHandler := handlers.NewStorefrontHandler(cat, catalogRepo, contact, cfg.PublicBaseURL, logger)
	adminHandler := handlers.NewAdminHandler(loader, cat, catalogRepo, contact, logger)

	// Initialize OpenTelemetry tracing
	var tracerProvider *tracing.TracerProvider
	if cfg.Environment == "production" {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("catalog-service"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("catalog-service"))
	}
	if err != nil {
		log.Printf("WARNING: Failed to initialize tracing: %v (continuing without tracing)", err)
	} else {
		log.Println("✓ OpenTelemetry tracing initialized")
	}

	// Initialize Prometheus metrics
	metrics := gosharedmw.InitGlobalMetrics("storefront", "catalog_service")

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// Add observability middleware (metrics + tracing)
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("catalog-service"))
	router.Use(gosharedmw.CompressionMiddleware())
	router.Use(middleware.CORS(cfg.PublicBaseURL))

	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)
	router.GET("/metrics", gosharedmw.Handler())

	api := router.Group("/api/v1")

	storefront := api.Group("/storefront")
	{
		storefront.GET("/products", storefrontHandler.GetProducts)
		storefront.GET("/products/:code", storefrontHandler.GetProduct)
		storefront.GET("/products/:code/links", storefrontHandler.GetProductLinks)
		storefront.GET("/products/:code/gallery", storefrontHandler.GetGallery)
		storefront.GET("/categories", storefrontHandler.GetCategories)
		storefront.GET("/share", storefrontHandler.GetShareLink)
		storefront.GET("/settings", storefrontHandler.GetSettings)
	}

	// Admin routes are open in development or when explicitly enabled
	admin := api.Group("/admin")
	admin.Use(middleware.AdminGate(cfg.IsDevelopment() || cfg.AdminEnabled))
	admin.Use(middleware.DevelopmentAuthMiddleware())
	{
		admin.POST("/import", adminHandler.ImportFile)
		admin.POST("/import/url", adminHandler.ImportURL)
		admin.GET("/import/template", adminHandler.GetImportTemplate)
		admin.GET("/export", adminHandler.Export)
		admin.POST("/reset", adminHandler.Reset)
		admin.PUT("/products", adminHandler.ReplaceProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:code", adminHandler.UpdateProduct)
		admin.DELETE("/products/:code", adminHandler.DeleteProduct)
		admin.PUT("/settings/contact", adminHandler.UpdateContact)
		admin.PUT("/settings/theme", adminHandler.UpdateTheme)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Catalog service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down catalog-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		} else {
			log.Println("✓ Tracer provider shut down")
		}
	}

	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Catalog service stopped")
}

// newBlobStore picks the persistence backend. Redis falls back to memory
// when no connection is available.
func newBlobStore(cfg *config.Config, redisClient *redis.Client) repository.BlobStore {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := config.InitDB(cfg)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		log.Println("✓ Using Postgres blob store")
		return repository.NewDBStore(db)
	case config.BackendMemory:
		log.Println("Using in-memory blob store (data is lost on restart)")
		return repository.NewMemoryStore()
	default:
		if redisClient == nil {
			log.Println("WARNING: Redis unavailable, using in-memory blob store")
			return repository.NewMemoryStore()
		}
		log.Println("✓ Using Redis blob store")
		return repository.NewRedisStore(redisClient)
	}
}

// resolveContact picks the contact number: the saved setting, then the
// contact file, then WHATSAPP_NUMBER
func resolveContact(ctx context.Context, cfg *config.Config, repo *repository.CatalogRepository, remote *clients.RemoteClient, logger *logrus.Logger) string {
	saved, err := repo.LoadContact(ctx)
	if err != nil {
		logger.WithError(err).Warn("Failed to read saved contact number")
	}
	if saved != "" {
		return saved
	}

	if cfg.ContactSource != "" {
		doc, err := remote.FetchJSON(ctx, cfg.ContactSource)
		if err != nil {
			logger.WithError(err).WithField("source", cfg.ContactSource).Info("Contact file not loaded")
		} else if number := messaging.ExtractContactNumber(doc); number != "" {
			return number
		}
	}

	return messaging.NormalizeNumber(cfg.WhatsAppNumber)
}
