package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"catalog-service/internal/models"
)

// Filter returns the products matching every predicate of q, in input order.
// The input slice is never modified.
func Filter(products []models.Product, q models.Query) []models.Product {
	fold := cases.Fold()
	text := fold.String(q.Text)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p, q.Category) {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if text != "" && !strings.Contains(fold.String(p.Name+" "+p.Description), text) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchCategory compares categories exactly. An empty category only matches
// products without one.
func matchCategory(p models.Product, category string) bool {
	return category == models.CategoryAll || p.Category == category
}

// SortProducts returns a sorted copy of products. Equal prices keep their
// relative order; SortDefault returns the copy unchanged.
func SortProducts(products []models.Product, order models.SortOrder) []models.Product {
	out := slices.Clone(products)
	if out == nil {
		out = []models.Product{}
	}
	switch order {
	case models.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case models.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	}
	return out
}

// Apply runs the filter and sort stages for q
func Apply(products []models.Product, q models.Query) []models.Product {
	return SortProducts(Filter(products, q), q.Sort)
}

// Categories lists the distinct categories in first-seen order
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
