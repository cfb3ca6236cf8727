package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

func TestImportFile_CSV(t *testing.T) {
	env := setupTestEnv(t)

	w := env.upload(t, "produtos.csv", "id,nome,categoria,preco\n10,Agenda,Papelaria,30\n11,Caderno,Papelaria,25.5\n")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[models.CatalogResponse](t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "upload:produtos.csv", resp.Source)
	assert.Equal(t, "Produtos carregados do arquivo", resp.Message)

	w = env.do(http.MethodGet, "/api/v1/storefront/products?sort=price-asc", nil, "")
	list := decodeBody[models.ProductListResponse](t, w)
	assert.Equal(t, []string{"PAP-0011", "PAP-0010"}, productCodes(list.Data))

	saved, err := env.repo.LoadProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestImportFile_JSON(t *testing.T) {
	env := setupTestEnv(t)

	w := env.upload(t, "produtos.json", `[{"id": 1, "name": "A", "category": "Doces", "price": 3}]`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"DOC-0001"}, codesOf(env.catalog))

	w = env.upload(t, "produtos.json", `{"products": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON_ARRAY", decodeBody[models.ErrorResponse](t, w).Error.Code)
	assert.Equal(t, []string{"DOC-0001"}, codesOf(env.catalog))
}

func TestImportFile_Errors(t *testing.T) {
	env := setupTestEnv(t)

	w := env.upload(t, "produtos.txt", "qualquer coisa")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_FORMAT", decodeBody[models.ErrorResponse](t, w).Error.Code)

	w = env.upload(t, "vazio.json", "")
	assert.Equal(t, "EMPTY_FILE", decodeBody[models.ErrorResponse](t, w).Error.Code)

	w = env.doJSON(http.MethodPost, "/api/v1/admin/import", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "FILE_REQUIRED", decodeBody[models.ErrorResponse](t, w).Error.Code)

	assert.Len(t, env.catalog.Products(), 4)
}

func TestImportURL(t *testing.T) {
	env := setupTestEnv(t)
	env.fetcher.On("FetchJSON", mock.Anything, "https://cdn.example/produtos.json").
		Return([]any{map[string]any{"id": "7", "nome": "Topo de bolo", "categoria": "Festa"}}, nil)
	env.fetcher.On("FetchJSON", mock.Anything, "https://down.example/produtos.json").
		Return(nil, errFetch)

	w := env.doJSON(http.MethodPost, "/api/v1/admin/import/url", `{"url": "https://cdn.example/produtos.json"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"FES-0007"}, codesOf(env.catalog))

	w = env.doJSON(http.MethodPost, "/api/v1/admin/import/url", `{"url": "https://down.example/produtos.json"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "FETCH_FAILED", decodeBody[models.ErrorResponse](t, w).Error.Code)

	w = env.doJSON(http.MethodPost, "/api/v1/admin/import/url", `{"url": "file:///etc/passwd"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_URL", decodeBody[models.ErrorResponse](t, w).Error.Code)

	w = env.doJSON(http.MethodPost, "/api/v1/admin/import/url", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody[models.ErrorResponse](t, w).Error.Code)

	env.fetcher.AssertNumberOfCalls(t, "FetchJSON", 2)
	assert.Equal(t, []string{"FES-0007"}, codesOf(env.catalog))
}

func TestGetImportTemplate(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/admin/import/template", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entity":"products"`)

	w = env.do(http.MethodGet, "/api/v1/admin/import/template?format=csv", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "id,name,description,category,price,image\n", w.Body.String())

	w = env.do(http.MethodGet, "/api/v1/admin/import/template?format=xlsx", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotZero(t, w.Body.Len())
}

func TestExport(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/admin/export?format=csv", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=produtos.csv", w.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[1], ",SUB-0001"))

	w = env.do(http.MethodGet, "/api/v1/admin/export", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"code": "CD-0004"`)

	w = env.do(http.MethodGet, "/api/v1/admin/export?format=pdf", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReplaceProducts(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(http.MethodPut, "/api/v1/admin/products", `{"products": [{"id": 3, "nome": "X", "categoria": "Doces"}, {"id": 3, "nome": "Y", "categoria": "Doces"}]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[models.CatalogResponse](t, w)
	assert.Equal(t, catalog.SourceAdmin, resp.Source)
	assert.Equal(t, []string{"DOC-0003", "DOC-0003-A"}, codesOf(env.catalog))

	w = env.doJSON(http.MethodPut, "/api/v1/admin/products", `[]`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.catalog.Products())

	w = env.doJSON(http.MethodPut, "/api/v1/admin/products", `{"items": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON_ARRAY", decodeBody[models.ErrorResponse](t, w).Error.Code)

	w = env.doJSON(http.MethodPut, "/api/v1/admin/products", `[`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductCRUD(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(http.MethodPost, "/api/v1/admin/products", `{"id": 5, "nome": "Agenda", "categoria": "Papelaria", "preco": "30"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[models.ProductResponse](t, w)
	require.NotNil(t, created.Data)
	assert.Equal(t, "PAP-0005", created.Data.Code)
	assert.Equal(t, "R$ 30,00", created.Data.PriceLabel)

	w = env.doJSON(http.MethodPut, "/api/v1/admin/products/PAP-0005", `{"price": 42}`)
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[models.ProductResponse](t, w)
	require.NotNil(t, updated.Data)
	assert.Equal(t, 42.0, updated.Data.Price)
	assert.Equal(t, "Agenda", updated.Data.Name)

	w = env.doJSON(http.MethodPut, "/api/v1/admin/products/PAP-0005", `[1, 2]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/admin/products/PAP-0005", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Agenda"`)
	assert.Len(t, env.catalog.Products(), 4)

	w = env.do(http.MethodDelete, "/api/v1/admin/products/PAP-0005", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(http.MethodPut, "/api/v1/admin/products/PAP-0005", `{"price": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", decodeBody[models.ErrorResponse](t, w).Error.Code)
}

func TestReset(t *testing.T) {
	env := setupTestEnv(t)
	env.catalog.Replace([]any{}, catalog.SourceAdmin)

	w := env.do(http.MethodPost, "/api/v1/admin/reset", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[models.CatalogResponse](t, w)
	assert.Equal(t, catalog.SourceDefaults, resp.Source)
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, "Catálogo restaurado", resp.Message)
}

func TestUpdateContact(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(http.MethodPut, "/api/v1/admin/settings/contact", `{"number": "123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CONTACT", decodeBody[models.ErrorResponse](t, w).Error.Code)
	assert.Equal(t, "5511999998888", env.contact.Get())

	w = env.doJSON(http.MethodPut, "/api/v1/admin/settings/contact", `{"number": "+55 (21) 98888-7777"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[models.SettingsResponse](t, w)
	assert.Equal(t, "5521988887777", resp.Data.WhatsAppNumber)
	assert.Equal(t, "5521988887777", env.contact.Get())

	saved, err := env.repo.LoadContact(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5521988887777", saved)
}

func TestUpdateTheme(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(http.MethodPut, "/api/v1/admin/settings/theme", `{"theme": "blue"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_THEME", decodeBody[models.ErrorResponse](t, w).Error.Code)

	w = env.doJSON(http.MethodPut, "/api/v1/admin/settings/theme", `{"theme": "light"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/storefront/settings", nil, "")
	assert.Equal(t, models.ThemeLight, decodeBody[models.SettingsResponse](t, w).Data.Theme)
}

func codesOf(c *catalog.Catalog) []string {
	products := c.Products()
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Code
	}
	return out
}
