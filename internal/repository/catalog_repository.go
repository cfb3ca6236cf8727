package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tesseract-Nexus/go-shared/cache"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"catalog-service/internal/models"
)

// Storage keys, relative to the configured prefix
const (
	ProductsKey = "lc_products_v1"
	ContactKey  = "lc_waNumber"
	ThemeKey    = "lc_theme"
)

// ListingCacheTTL is the default lifetime of a cached filtered listing
const ListingCacheTTL = 2 * time.Minute

type CatalogRepository struct {
	store      BlobStore
	prefix     string
	cache      *cache.CacheLayer
	listingTTL time.Duration
	// generation scopes cached listings to this process, since collection
	// versions restart on every boot
	generation string
}

// NewCatalogRepository wraps store. When redisClient is not nil filtered
// listings are cached through a two-level cache layer.
func NewCatalogRepository(store BlobStore, redisClient *redis.Client, prefix string, listingTTL time.Duration) *CatalogRepository {
	if listingTTL <= 0 {
		listingTTL = ListingCacheTTL
	}
	repo := &CatalogRepository{
		store:      store,
		prefix:     prefix,
		listingTTL: listingTTL,
		generation: uuid.New().String(),
	}

	if redisClient != nil {
		cacheConfig := cache.CacheConfig{
			L1Enabled:  true,
			L1MaxItems: 1000,
			L1TTL:      30 * time.Second,
			DefaultTTL: listingTTL,
			KeyPrefix:  "catalog:listings:",
		}
		repo.cache = cache.NewCacheLayerFromClient(redisClient, cacheConfig)
	}

	return repo
}

func (r *CatalogRepository) key(name string) string {
	return r.prefix + name
}

// LoadProducts returns the persisted collection. A missing key yields an
// empty slice and no error.
func (r *CatalogRepository) LoadProducts(ctx context.Context) ([]models.Product, error) {
	data, err := r.store.Load(ctx, r.key(ProductsKey))
	if errors.Is(err, ErrNotFound) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode persisted products: %w", err)
	}
	return products, nil
}

// SaveProducts persists the collection and drops cached listings
func (r *CatalogRepository) SaveProducts(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	if err := r.store.Save(ctx, r.key(ProductsKey), data); err != nil {
		return err
	}
	r.InvalidateListings(ctx)
	return nil
}

// LoadContact returns the saved contact number, "" if none
func (r *CatalogRepository) LoadContact(ctx context.Context) (string, error) {
	return r.loadString(ctx, ContactKey)
}

func (r *CatalogRepository) SaveContact(ctx context.Context, number string) error {
	return r.store.Save(ctx, r.key(ContactKey), []byte(number))
}

// LoadTheme returns the saved theme. Anything other than "light" is dark.
func (r *CatalogRepository) LoadTheme(ctx context.Context) (string, error) {
	theme, err := r.loadString(ctx, ThemeKey)
	if err != nil {
		return models.ThemeDark, err
	}
	if theme == models.ThemeLight {
		return models.ThemeLight, nil
	}
	return models.ThemeDark, nil
}

func (r *CatalogRepository) SaveTheme(ctx context.Context, theme string) error {
	return r.store.Save(ctx, r.key(ThemeKey), []byte(theme))
}

func (r *CatalogRepository) loadString(ctx context.Context, name string) (string, error) {
	data, err := r.store.Load(ctx, r.key(name))
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// listingCacheKey creates a deterministic cache key for a listing of one
// collection version within a process generation
func listingCacheKey(generation string, version uint64, q models.Query) string {
	data, _ := json.Marshal(q)
	hash := md5.Sum(data)
	return fmt.Sprintf("list:%s:v%d:%s", generation, version, hex.EncodeToString(hash[:]))
}

// CachedListing returns the listing for q over the given collection version,
// computing it with search on a miss. Without a cache search runs directly.
func (r *CatalogRepository) CachedListing(ctx context.Context, version uint64, q models.Query, search func() []models.Product) ([]models.Product, error) {
	if r.cache == nil {
		return search(), nil
	}

	var result []models.Product
	err := r.cache.GetOrSetJSON(ctx, listingCacheKey(r.generation, version, q), &result, r.listingTTL, func() (any, error) {
		return search(), nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []models.Product{}
	}
	return result, nil
}

// InvalidateListings drops every cached listing
func (r *CatalogRepository) InvalidateListings(ctx context.Context) {
	if r.cache == nil {
		return
	}
	_ = r.cache.DeletePattern(ctx, "list:*")
}
