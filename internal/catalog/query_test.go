package catalog

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-service/internal/models"
)

func TestEncodeQuery_DefaultIsEmpty(t *testing.T) {
	assert.Equal(t, "", EncodeQuery(models.DefaultQuery()))
	assert.Equal(t, "/catalogo", ShareURL("/catalogo", models.DefaultQuery()))
}

func TestDecodeQuery_EmptyIsDefault(t *testing.T) {
	assert.Equal(t, models.DefaultQuery(), ParseQuery(""))
	assert.Equal(t, models.DefaultQuery(), ParseQuery("?"))
	assert.Equal(t, models.DefaultQuery(), DecodeQuery(url.Values{}))
	assert.True(t, ParseQuery("").IsDefault())
}

func TestEncodeQuery_OnlyNonDefaultFields(t *testing.T) {
	q := models.DefaultQuery()
	q.MaxPrice = ptr(30)
	assert.Equal(t, "max=30", EncodeQuery(q))

	q = models.Query{
		Text:     "caneca azul",
		Category: "Convites Digitais",
		MinPrice: ptr(10.5),
		MaxPrice: ptr(0),
		Sort:     models.SortPriceDesc,
	}
	v, err := url.ParseQuery(EncodeQuery(q))
	assert.NoError(t, err)
	assert.Equal(t, "caneca azul", v.Get("q"))
	assert.Equal(t, "Convites Digitais", v.Get("category"))
	assert.Equal(t, "10.5", v.Get("min"))
	assert.Equal(t, "0", v.Get("max"))
	assert.Equal(t, "price-desc", v.Get("sort"))
}

func TestDecodeQuery_Fallbacks(t *testing.T) {
	q := ParseQuery("min=abc&max=&sort=random&q=Caneca")
	assert.Nil(t, q.MinPrice)
	assert.Nil(t, q.MaxPrice)
	assert.Equal(t, models.SortDefault, q.Sort)
	assert.Equal(t, "Caneca", q.Text)
	assert.Equal(t, models.CategoryAll, q.Category)

	q = ParseQuery("min=Infinity&max=NaN")
	assert.Nil(t, q.MinPrice)
	assert.Nil(t, q.MaxPrice)

	q = ParseQuery("min=0&max=12.75&sort=price-asc")
	if assert.NotNil(t, q.MinPrice) {
		assert.Equal(t, 0.0, *q.MinPrice)
	}
	if assert.NotNil(t, q.MaxPrice) {
		assert.Equal(t, 12.75, *q.MaxPrice)
	}
	assert.Equal(t, models.SortPriceAsc, q.Sort)
}

func TestQueryRoundTrip(t *testing.T) {
	queries := []models.Query{
		models.DefaultQuery(),
		{Text: "caneca", Category: models.CategoryAll, Sort: models.SortDefault},
		{Text: "Olá & até+logo = 100%", Category: "Festa Infantil", Sort: models.SortPriceAsc},
		{Category: "Sublimação", MinPrice: ptr(0), MaxPrice: ptr(0), Sort: models.SortPriceDesc},
		{Category: models.CategoryAll, MinPrice: ptr(0.1), MaxPrice: ptr(1e21), Sort: models.SortDefault},
		{Category: models.CategoryAll, MinPrice: ptr(-3.25), Sort: models.SortDefault},
		{Category: models.CategoryAll, MaxPrice: ptr(math.MaxFloat64), Sort: models.SortPriceAsc},
		{Category: models.CategoryAll, MinPrice: ptr(50), MaxPrice: ptr(10), Sort: models.SortDefault},
		{Text: "  spaced  ", Category: "", Sort: models.SortDefault},
	}
	for _, q := range queries {
		encoded := EncodeQuery(q)
		assert.Equal(t, q, ParseQuery(encoded), "encoded as %q", encoded)
		assert.Equal(t, q, ParseQuery("?"+encoded))
	}
}

func TestShareURL(t *testing.T) {
	q := models.DefaultQuery()
	q.Sort = models.SortPriceAsc
	assert.Equal(t, "https://loja.example/?sort=price-asc", ShareURL("https://loja.example/", q))
}
