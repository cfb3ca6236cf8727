package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"catalog-service/internal/models"
)

// fieldAliases lists the accepted source keys per canonical field, in priority order.
var fieldAliases = struct {
	ID          []string
	Name        []string
	Description []string
	Category    []string
	Price       []string
	Image       []string
}{
	ID:          []string{"id", "ID", "_id"},
	Name:        []string{"name", "nome", "title"},
	Description: []string{"description", "descricao", "desc"},
	Category:    []string{"category", "categoria"},
	Price:       []string{"price", "preco", "valor"},
	Image:       []string{"image", "imagem", "photo"},
}

// Normalize converts an arbitrary decoded collection into canonical products.
// Anything that is not a sequence yields an empty slice. Entries that are not
// objects normalize to an all-defaults record so length and order are kept.
// Codes are not assigned here; see AssignCodes.
func Normalize(input any) []models.Product {
	switch v := input.(type) {
	case []any:
		out := make([]models.Product, len(v))
		for i, item := range v {
			rec, _ := item.(map[string]any)
			out[i] = normalizeRecord(rec, i)
		}
		return out
	case []map[string]any:
		out := make([]models.Product, len(v))
		for i, rec := range v {
			out[i] = normalizeRecord(rec, i)
		}
		return out
	case []map[string]string:
		return NormalizeRecords(v)
	default:
		return []models.Product{}
	}
}

// NormalizeRecords normalizes flat string records such as CSV or XLSX rows.
// Blank cells count as absent.
func NormalizeRecords(records []map[string]string) []models.Product {
	out := make([]models.Product, len(records))
	for i, row := range records {
		rec := make(map[string]any, len(row))
		for k, v := range row {
			if strings.TrimSpace(v) == "" {
				continue
			}
			rec[k] = v
		}
		out[i] = normalizeRecord(rec, i)
	}
	return out
}

func normalizeRecord(rec map[string]any, index int) models.Product {
	p := models.Product{
		ID:       models.StringID(fmt.Sprintf("ext-%d", index)),
		Name:     fmt.Sprintf("Product %d", index+1),
		Category: models.DefaultCategory,
	}
	if rec == nil {
		return p
	}

	if v, ok := lookup(rec, fieldAliases.ID); ok {
		if id, ok := coerceID(v); ok {
			p.ID = id
		}
	}
	if v, ok := lookup(rec, fieldAliases.Name); ok {
		if s, ok := coerceText(v); ok {
			p.Name = s
		}
	}
	if v, ok := lookup(rec, fieldAliases.Description); ok {
		if s, ok := coerceText(v); ok {
			p.Description = s
		}
	}
	if v, ok := lookup(rec, fieldAliases.Category); ok {
		if s, ok := coerceText(v); ok {
			p.Category = s
		}
	}
	if v, ok := lookup(rec, fieldAliases.Price); ok {
		p.Price = CoercePrice(v)
	}
	if v, ok := lookup(rec, fieldAliases.Image); ok {
		if s, ok := coerceText(v); ok {
			p.Image = strings.TrimSpace(s)
		}
	}
	return p
}

// lookup returns the first alias present with a non-null value
func lookup(rec map[string]any, aliases []string) (any, bool) {
	for _, key := range aliases {
		if v, ok := rec[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func coerceID(v any) (models.ProductID, bool) {
	switch t := v.(type) {
	case string:
		return models.StringID(t), true
	case json.Number:
		return models.NumericID(t.String()), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return models.ProductID{}, false
		}
		return models.NumericID(strconv.FormatFloat(t, 'f', -1, 64)), true
	case int:
		return models.NumericID(strconv.Itoa(t)), true
	case int64:
		return models.NumericID(strconv.FormatInt(t, 10)), true
	case bool:
		return models.StringID(strconv.FormatBool(t)), true
	}
	return models.ProductID{}, false
}

func coerceText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// CoercePrice converts a loosely typed value to a finite, non-negative price.
// Anything that cannot be read as a number is 0.
func CoercePrice(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
