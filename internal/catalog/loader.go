package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"catalog-service/internal/importer"
	"catalog-service/internal/models"
)

// Load sources other than a products location or an uploaded file
const (
	SourceStore = "store"
	SourceAdmin = "admin"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNoSource        = errors.New("no products source configured")
	ErrInvalidURL      = errors.New("URL must be an absolute http or https URL")
)

// Store persists the canonical collection
type Store interface {
	LoadProducts(ctx context.Context) ([]models.Product, error)
	SaveProducts(ctx context.Context, products []models.Product) error
}

// Fetcher reads a JSON document from a file path or URL
type Fetcher interface {
	FetchJSON(ctx context.Context, location string) (any, error)
}

type ChangeKind string

const (
	ChangeReplaced ChangeKind = "replaced"
	ChangeCreated  ChangeKind = "created"
	ChangeUpdated  ChangeKind = "updated"
	ChangeDeleted  ChangeKind = "deleted"
)

// Change describes one committed load or admin edit. Product is set for
// created, updated and deleted changes.
type Change struct {
	Kind     ChangeKind
	Snapshot Snapshot
	Product  models.Product
}

// Observer is notified after every committed change
type Observer func(ctx context.Context, change Change)

// Loader feeds the Catalog from its sources and persists every load
type Loader struct {
	// mu serializes commits so an edit always starts from the latest collection
	mu        sync.Mutex
	catalog   *Catalog
	store     Store
	fetcher   Fetcher
	source    string
	logger    *logrus.Entry
	observers []Observer
}

func NewLoader(catalog *Catalog, store Store, fetcher Fetcher, source string, logger *logrus.Logger) *Loader {
	return &Loader{
		catalog: catalog,
		store:   store,
		fetcher: fetcher,
		source:  source,
		logger:  logger.WithField("component", "catalog_loader"),
	}
}

// Observe registers fn to be called after each committed change
func (l *Loader) Observe(fn Observer) {
	l.observers = append(l.observers, fn)
}

// InitialLoad fills the catalog from the products source, then the persisted
// collection, then the embedded defaults. It always leaves a collection in
// place.
func (l *Loader) InitialLoad(ctx context.Context) Snapshot {
	snap, err := l.LoadSource(ctx)
	if err == nil {
		return snap
	}
	l.logger.WithError(err).WithField("source", l.source).Warn("Products source unavailable, trying persisted collection")

	saved, err := l.store.LoadProducts(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.logger.WithError(err).Warn("Failed to read persisted collection")
	} else if len(saved) > 0 {
		snap := l.catalog.ReplaceProducts(saved, SourceStore)
		l.logger.WithField("count", len(snap.Products)).Info("Loaded products from persisted collection")
		l.notify(ctx, Change{Kind: ChangeReplaced, Snapshot: snap})
		return snap
	}

	snap = l.catalog.ReplaceProducts(DefaultProducts(), SourceDefaults)
	l.logger.WithField("count", len(snap.Products)).Info("Loaded embedded default products")
	l.notify(ctx, Change{Kind: ChangeReplaced, Snapshot: snap})
	return snap
}

// LoadSource loads the configured products file or URL
func (l *Loader) LoadSource(ctx context.Context) (Snapshot, error) {
	if l.source == "" {
		return Snapshot{}, ErrNoSource
	}
	return l.loadLocation(ctx, l.source)
}

// ImportURL replaces the catalog with the JSON array served at rawURL
func (l *Loader) ImportURL(ctx context.Context, rawURL string) (Snapshot, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Snapshot{}, ErrInvalidURL
	}
	return l.loadLocation(ctx, rawURL)
}

func (l *Loader) loadLocation(ctx context.Context, location string) (Snapshot, error) {
	raw, err := l.fetcher.FetchJSON(ctx, location)
	if err != nil {
		return Snapshot{}, err
	}
	if _, ok := raw.([]any); !ok {
		return Snapshot{}, fmt.Errorf("%s: %w", location, importer.ErrNotArray)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commit(ctx, raw, location, ChangeReplaced, nil), nil
}

// ImportFile replaces the catalog with the records of an uploaded file. The
// format is chosen from the file extension.
func (l *Loader) ImportFile(ctx context.Context, filename string, r io.Reader) (Snapshot, error) {
	format, err := importer.FormatFromFilename(filename)
	if err != nil {
		return Snapshot{}, err
	}
	records, err := importer.Parse(format, r)
	if err != nil {
		return Snapshot{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commit(ctx, records, "upload:"+filename, ChangeReplaced, nil), nil
}

// Reset reloads the products source, falling back to the embedded defaults
func (l *Loader) Reset(ctx context.Context) Snapshot {
	if l.source != "" {
		snap, err := l.LoadSource(ctx)
		if err == nil {
			return snap
		}
		l.logger.WithError(err).Warn("Reset could not reload products source, using defaults")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	snap := l.catalog.ReplaceProducts(DefaultProducts(), SourceDefaults)
	l.persist(ctx, snap)
	l.notify(ctx, Change{Kind: ChangeReplaced, Snapshot: snap})
	return snap
}

// Replace swaps in a full raw product list edited by an administrator
func (l *Loader) Replace(ctx context.Context, raw []any) Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.commit(ctx, raw, SourceAdmin, ChangeReplaced, nil)
}

// Append adds one raw record at the end of the collection
func (l *Loader) Append(ctx context.Context, item map[string]any) (models.Product, Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := ToRecords(l.catalog.Products())
	records = append(records, item)
	snap := l.commit(ctx, records, SourceAdmin, ChangeCreated, at(len(records)-1))
	return snap.Products[len(snap.Products)-1], snap
}

// Update merges patch into the record with the given code. Keys of patch
// replace every alias of the same field in the stored record.
func (l *Loader) Update(ctx context.Context, code string, patch map[string]any) (models.Product, Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	products := l.catalog.Products()
	idx := indexOfCode(products, code)
	if idx < 0 {
		return models.Product{}, Snapshot{}, ErrProductNotFound
	}

	records := ToRecords(products)
	records[idx] = mergeRecord(records[idx].(map[string]any), patch)
	snap := l.commit(ctx, records, SourceAdmin, ChangeUpdated, at(idx))
	return snap.Products[idx], snap, nil
}

// Delete removes the product with the given code
func (l *Loader) Delete(ctx context.Context, code string) (models.Product, Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	products := l.catalog.Products()
	idx := indexOfCode(products, code)
	if idx < 0 {
		return models.Product{}, Snapshot{}, ErrProductNotFound
	}

	removed := products[idx]
	records := ToRecords(slices.Delete(products, idx, idx+1))
	snap := l.commit(ctx, records, SourceAdmin, ChangeDeleted, func(Snapshot) models.Product {
		return removed
	})
	return removed, snap, nil
}

// commit replaces the catalog, persists it and notifies observers. product
// picks the product reported with the change and may be nil. Callers hold mu.
func (l *Loader) commit(ctx context.Context, raw any, source string, kind ChangeKind, product func(Snapshot) models.Product) Snapshot {
	snap := l.catalog.Replace(raw, source)
	l.persist(ctx, snap)

	change := Change{Kind: kind, Snapshot: snap}
	if product != nil {
		change.Product = product(snap)
	}
	l.notify(ctx, change)

	l.logger.WithFields(logrus.Fields{
		"source":  source,
		"count":   len(snap.Products),
		"version": snap.Version,
	}).Info("Catalog replaced")
	return snap
}

// persist saves the collection. A failed save leaves the in-memory catalog
// in place.
func (l *Loader) persist(ctx context.Context, snap Snapshot) {
	if err := l.store.SaveProducts(ctx, snap.Products); err != nil {
		l.logger.WithError(err).Error("Failed to persist products")
	}
}

func (l *Loader) notify(ctx context.Context, change Change) {
	for _, fn := range l.observers {
		fn(ctx, change)
	}
}

func at(i int) func(Snapshot) models.Product {
	return func(s Snapshot) models.Product {
		return s.Products[i]
	}
}

func indexOfCode(products []models.Product, code string) int {
	return slices.IndexFunc(products, func(p models.Product) bool {
		return p.Code == code
	})
}

func mergeRecord(record, patch map[string]any) map[string]any {
	groups := [][]string{
		fieldAliases.ID, fieldAliases.Name, fieldAliases.Description,
		fieldAliases.Category, fieldAliases.Price, fieldAliases.Image,
	}
	out := make(map[string]any, len(record)+len(patch))
	for k, v := range record {
		out[k] = v
	}
	for _, group := range groups {
		if !hasAny(patch, group) {
			continue
		}
		for _, key := range group {
			delete(out, key)
		}
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

func hasAny(m map[string]any, keys []string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}
