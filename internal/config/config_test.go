package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "STORE_BACKEND", "PRODUCTS_SOURCE", "PUBLIC_BASE_URL", "ADMIN_ENABLED", "REMOTE_TIMEOUT_SECONDS", "NATS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8087", cfg.Port)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "produtos.json", cfg.ProductsSource)
	assert.Equal(t, "http://localhost:8087", cfg.PublicBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RemoteTimeout)
	assert.False(t, cfg.AdminEnabled)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.NATSURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("PUBLIC_BASE_URL", "https://loja.example/")
	t.Setenv("ADMIN_ENABLED", "true")
	t.Setenv("LIST_CACHE_TTL_SECONDS", "30")

	cfg := Load()
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "https://loja.example", cfg.PublicBaseURL)
	assert.True(t, cfg.AdminEnabled)
	assert.Equal(t, 30*time.Second, cfg.ListingCacheTTL)
}
