package catalog

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"catalog-service/internal/models"
)

// Snapshot is an immutable view of the collection after one load
type Snapshot struct {
	Products []models.Product
	Source   string
	Version  uint64
	LoadedAt time.Time
}

// Catalog owns the current product collection. Every load replaces the
// collection wholesale; readers always get a copy.
type Catalog struct {
	mu       sync.RWMutex
	products []models.Product
	source   string
	version  uint64
	loadedAt time.Time
}

func New() *Catalog {
	return &Catalog{products: []models.Product{}}
}

// Replace normalizes and codes raw, then swaps it in as the current collection
func (c *Catalog) Replace(raw any, source string) Snapshot {
	return c.swap(AssignCodes(Normalize(raw)), source)
}

// ReplaceProducts swaps in already canonical products. Codes are recomputed
// for the new batch.
func (c *Catalog) ReplaceProducts(products []models.Product, source string) Snapshot {
	return c.swap(AssignCodes(products), source)
}

func (c *Catalog) swap(products []models.Product, source string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = products
	c.source = source
	c.version++
	c.loadedAt = time.Now().UTC()
	return c.snapshotLocked()
}

// Snapshot returns a copy of the current state
func (c *Catalog) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Catalog) snapshotLocked() Snapshot {
	return Snapshot{
		Products: slices.Clone(c.products),
		Source:   c.source,
		Version:  c.version,
		LoadedAt: c.loadedAt,
	}
}

// Products returns a copy of the current collection
func (c *Catalog) Products() []models.Product {
	return c.Snapshot().Products
}

// Version increases by one on every replacement
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Search applies q to the current collection
func (c *Catalog) Search(q models.Query) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Apply(c.products, q)
}

// Find returns the product with the given display code
func (c *Catalog) Find(code string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.Code == code {
			return p, true
		}
	}
	return models.Product{}, false
}

// FindByID returns the first product whose id renders as id
func (c *Catalog) FindByID(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID.Value == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Categories lists the distinct categories of the current collection
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Categories(c.products)
}

// ToRecords converts canonical products back into raw records accepted by
// Normalize. Codes are dropped since they are recomputed per batch.
func ToRecords(products []models.Product) []any {
	out := make([]any, len(products))
	for i, p := range products {
		out[i] = toRecord(p)
	}
	return out
}

func toRecord(p models.Product) map[string]any {
	var id any = p.ID.Value
	if p.ID.Numeric {
		id = json.Number(p.ID.Value)
	}
	return map[string]any{
		"id":          id,
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price,
		"image":       p.Image,
	}
}
