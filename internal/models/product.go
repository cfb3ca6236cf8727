package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SortOrder represents the ordering applied to a filtered product list
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// Valid reports whether the sort order is one of the supported values
func (s SortOrder) Valid() bool {
	switch s {
	case SortDefault, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

const (
	// CategoryAll is the sentinel meaning "no category filter"
	CategoryAll = "all"

	// DefaultCategory is assigned to records that carry no category
	DefaultCategory = "Personalizados"
)

// Theme values persisted for the storefront
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ProductID keeps an identifier in the JSON kind it arrived with:
// numeric ids are exported as numbers, everything else as strings.
type ProductID struct {
	Value   string
	Numeric bool
}

// StringID builds a string identifier
func StringID(v string) ProductID {
	return ProductID{Value: v}
}

// NumericID builds a numeric identifier. v must be a valid JSON number literal.
func NumericID(v string) ProductID {
	return ProductID{Value: v, Numeric: true}
}

func (id ProductID) String() string {
	return id.Value
}

func (id ProductID) MarshalJSON() ([]byte, error) {
	if id.Numeric {
		return []byte(id.Value), nil
	}
	return json.Marshal(id.Value)
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ProductID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a string or a number: %w", err)
	}
	*id = NumericID(n.String())
	return nil
}

// Product is the canonical catalog record used by every downstream component
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Code        string    `json:"code,omitempty"`
}

// Query is the declarative filter/sort request applied over the collection.
// Nil price bounds are open.
type Query struct {
	Text     string    `json:"q"`
	Category string    `json:"category"`
	MinPrice *float64  `json:"min,omitempty"`
	MaxPrice *float64  `json:"max,omitempty"`
	Sort     SortOrder `json:"sort"`
}

// DefaultQuery returns the query that matches every product in load order
func DefaultQuery() Query {
	return Query{Category: CategoryAll, Sort: SortDefault}
}

// IsDefault reports whether q equals DefaultQuery
func (q Query) IsDefault() bool {
	return q.Text == "" &&
		q.Category == CategoryAll &&
		q.MinPrice == nil &&
		q.MaxPrice == nil &&
		q.Sort == SortDefault
}

// CatalogBlob is a persisted key-value entry (Postgres-backed blob store)
type CatalogBlob struct {
	Key       string    `json:"key" gorm:"primaryKey;size:191"`
	Value     []byte    `json:"value" gorm:"type:bytea;not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the CatalogBlob model
func (CatalogBlob) TableName() string {
	return "catalog_blobs"
}

// ProductView is a product as rendered by the storefront
type ProductView struct {
	Product
	PriceLabel  string `json:"priceLabel"`
	ImageURL    string `json:"imageUrl"`
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}

// ProductLinks holds the outbound contact links for a single product
type ProductLinks struct {
	WhatsApp string `json:"whatsapp,omitempty"`
	Quote    string `json:"quote,omitempty"`
	Telegram string `json:"telegram"`
	Email    string `json:"email"`
}

// GalleryPosition describes the lightbox state for one product in a result list
type GalleryPosition struct {
	Product  Product `json:"product"`
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Previous string  `json:"previous"`
	Next     string  `json:"next"`
	Label    string  `json:"label"`
}

// Settings holds the storefront contact and display preferences
type Settings struct {
	WhatsAppNumber string `json:"whatsappNumber"`
	Theme          string `json:"theme"`
}

// UpdateContactRequest represents a request to change the contact number
type UpdateContactRequest struct {
	Number string `json:"number" binding:"required"`
}

// UpdateThemeRequest represents a request to change the storefront theme
type UpdateThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// ImportURLRequest represents a request to load the catalog from a remote JSON
type ImportURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// CatalogResponse reports the outcome of a load
type CatalogResponse struct {
	Success  bool      `json:"success"`
	Source   string    `json:"source"`
	Count    int       `json:"count"`
	Version  uint64    `json:"version"`
	LoadedAt time.Time `json:"loadedAt"`
	Message  string    `json:"message,omitempty"`
}

type ProductResponse struct {
	Success bool          `json:"success"`
	Data    *ProductView  `json:"data"`
	Links   *ProductLinks `json:"links,omitempty"`
}

type ProductListResponse struct {
	Success       bool          `json:"success"`
	Data          []ProductView `json:"data"`
	Count         int           `json:"count"`
	Summary       string        `json:"summary"`
	ActiveFilters string        `json:"activeFilters"`
	Query         Query         `json:"query"`
	ShareURL      string        `json:"shareUrl"`
	Categories    []string      `json:"categories"`
}

type CategoryListResponse struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

type GalleryResponse struct {
	Success bool             `json:"success"`
	Data    *GalleryPosition `json:"data"`
}

type ShareResponse struct {
	Success  bool   `json:"success"`
	Platform string `json:"platform"`
	Campaign string `json:"campaign"`
	URL      string `json:"url"`
}

type SettingsResponse struct {
	Success bool     `json:"success"`
	Data    Settings `json:"data"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
