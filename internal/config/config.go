package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Tesseract-Nexus/go-shared/secrets"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"catalog-service/internal/models"
)

// Store backends
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL string

	// Server
	Port        string
	Environment string

	// Storage
	StoreBackend   string
	StoreKeyPrefix string
	StoreID        string

	// Catalog sources
	ProductsSource string
	ContactSource  string
	WhatsAppNumber string
	PublicBaseURL  string

	// Admin
	AdminEnabled bool

	// Timeouts
	RemoteTimeout   time.Duration
	ListingCacheTTL time.Duration

	// Messaging
	NATSURL string
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	adminEnabled, _ := strconv.ParseBool(getEnv("ADMIN_ENABLED", "false"))
	remoteTimeout, _ := strconv.Atoi(getEnv("REMOTE_TIMEOUT_SECONDS", "10"))
	listingTTL, _ := strconv.Atoi(getEnv("LIST_CACHE_TTL_SECONDS", "120"))

	return &Config{
		// Database - fetch password from GCP Secret Manager if enabled
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: secrets.GetDBPassword(),
		DBName:     getEnv("DB_NAME", "catalog_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		Port:        getEnv("PORT", "8087"),
		Environment: getEnv("ENVIRONMENT", "development"),

		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendRedis)),
		StoreKeyPrefix: getEnv("STORE_KEY_PREFIX", "catalog:"),
		StoreID:        getEnv("STORE_ID", "lima-calixto"),

		ProductsSource: getEnv("PRODUCTS_SOURCE", "produtos.json"),
		ContactSource:  getEnv("CONTACT_SOURCE", "contato-whatsapp.json"),
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", ""),
		PublicBaseURL:  strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "http://localhost:8087"), "/"),

		AdminEnabled: adminEnabled,

		RemoteTimeout:   time.Duration(remoteTimeout) * time.Second,
		ListingCacheTTL: time.Duration(listingTTL) * time.Second,

		NATSURL: os.Getenv("NATS_URL"),
	}
}

// IsDevelopment reports whether the service runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "local"
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Running auto-migrations...")
	if err := db.AutoMigrate(&models.CatalogBlob{}); err != nil {
		return nil, fmt.Errorf("failed to run auto-migrations: %w", err)
	}
	log.Println("Auto-migrations completed successfully")

	return db, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
