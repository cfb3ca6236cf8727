package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"catalog-service/internal/models"
)

// componentUnescaper restores the marks a URI component leaves unescaped
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s for use inside a URL query value. Spaces
// become %20 and the marks !'()* are kept as is.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Placeholder returns an SVG data URI labelled with the product name, used
// when a product has no image.
func Placeholder(label string) string {
	if label == "" {
		label = "Produto"
	}
	svg := "<svg xmlns='http://www.w3.org/2000/svg' width='1200' height='800'>" +
		"<rect width='100%' height='100%' fill='#141924'/>" +
		"<text x='50%' y='50%' dominant-baseline='middle' text-anchor='middle' fill='white' " +
		"font-family='Inter, sans-serif' font-size='48'>" + escapeXML(label) + "</text></svg>"
	return "data:image/svg+xml;charset=UTF-8," + EscapeComponent(svg)
}

// ImageURL returns the product image, or its placeholder when empty
func ImageURL(p models.Product) string {
	if strings.TrimSpace(p.Image) != "" {
		return p.Image
	}
	return Placeholder(p.Name)
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "'", "&#39;", `"`, "&quot;")

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// ResultSummary is the result counter shown above a listing
func ResultSummary(n int) string {
	if n == 1 {
		return "1 produto encontrado."
	}
	return fmt.Sprintf("%d produtos encontrados.", n)
}

// ActiveFilters describes the search and ordering currently applied
func ActiveFilters(q models.Query) string {
	if q.Text == "" && (q.Sort == models.SortDefault || q.Sort == "") {
		return "Nenhuma busca ou ordenação aplicada."
	}

	sortLabel := "Padrão"
	switch q.Sort {
	case models.SortPriceAsc:
		sortLabel = "Menor preço"
	case models.SortPriceDesc:
		sortLabel = "Maior preço"
	}

	category := q.Category
	if category == models.CategoryAll {
		category = "Todas"
	}

	search := "Ainda não foi feita nenhuma busca!"
	if q.Text != "" {
		search = `"` + q.Text + `"`
	}
	return fmt.Sprintf("Categoria: %s • Ordenação: %s • Busca: %s", category, sortLabel, search)
}
