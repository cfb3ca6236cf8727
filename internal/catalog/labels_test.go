package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-service/internal/models"
)

func TestResultSummary(t *testing.T) {
	assert.Equal(t, "0 produtos encontrados.", ResultSummary(0))
	assert.Equal(t, "1 produto encontrado.", ResultSummary(1))
	assert.Equal(t, "12 produtos encontrados.", ResultSummary(12))
}

func TestActiveFilters(t *testing.T) {
	tests := []struct {
		name string
		q    models.Query
		want string
	}{
		{
			name: "default",
			q:    models.DefaultQuery(),
			want: "Nenhuma busca ou ordenação aplicada.",
		},
		{
			name: "category only",
			q:    models.Query{Category: "Sublimação", Sort: models.SortDefault},
			want: "Nenhuma busca ou ordenação aplicada.",
		},
		{
			name: "text",
			q:    models.Query{Text: "caneca", Category: models.CategoryAll, Sort: models.SortDefault},
			want: `Categoria: Todas • Ordenação: Padrão • Busca: "caneca"`,
		},
		{
			name: "sort without text",
			q:    models.Query{Category: "Sublimação", Sort: models.SortPriceAsc},
			want: "Categoria: Sublimação • Ordenação: Menor preço • Busca: Ainda não foi feita nenhuma busca!",
		},
		{
			name: "text and sort",
			q:    models.Query{Text: "convite", Category: models.CategoryAll, Sort: models.SortPriceDesc},
			want: `Categoria: Todas • Ordenação: Maior preço • Busca: "convite"`,
		},
		{
			name: "empty category is not all",
			q:    models.Query{Text: "convite", Category: "", Sort: models.SortDefault},
			want: `Categoria:  • Ordenação: Padrão • Busca: "convite"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveFilters(tt.q))
		})
	}
}

func TestEscapeComponent(t *testing.T) {
	assert.Equal(t, "Ol%C3%A1%20mundo%20%26%20cia", EscapeComponent("Olá mundo & cia"))
	assert.Equal(t, "%0A", EscapeComponent("\n"))
	assert.Equal(t, "Ol%C3%A1!%20(C%C3%B3digo%3A%20SUB-0001)", EscapeComponent("Olá! (Código: SUB-0001)"))
	assert.Equal(t, "it's%20*new*", EscapeComponent("it's *new*"))
	assert.Equal(t, "a%2Bb%20%25", EscapeComponent("a+b %"))
}

func TestImageURL(t *testing.T) {
	p := models.Product{Name: "Caneca", Image: "https://cdn.example/caneca.png"}
	assert.Equal(t, "https://cdn.example/caneca.png", ImageURL(p))

	p.Image = "  "
	got := ImageURL(p)
	assert.True(t, strings.HasPrefix(got, "data:image/svg+xml;charset=UTF-8,"))
	assert.Contains(t, got, "Caneca")
	assert.NotContains(t, got, " ")
}

func TestPlaceholder_EscapesLabel(t *testing.T) {
	got := Placeholder("<b>Tom & Jerry</b>")
	assert.Contains(t, got, EscapeComponent("&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;"))
	assert.Contains(t, Placeholder(""), "Produto")
}
