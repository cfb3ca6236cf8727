package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/catalog"
	"catalog-service/internal/messaging"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

const testBaseURL = "https://loja.example"

// MockFetcher is a mock implementation of catalog.Fetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchJSON(ctx context.Context, location string) (any, error) {
	args := m.Called(ctx, location)
	return args.Get(0), args.Error(1)
}

type testEnv struct {
	router  *gin.Engine
	catalog *catalog.Catalog
	repo    *repository.CatalogRepository
	contact *messaging.Contact
	fetcher *MockFetcher
}

// Helper to setup test router with every catalog route mounted
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cat := catalog.New()
	cat.ReplaceProducts(catalog.DefaultProducts(), catalog.SourceDefaults)
	repo := repository.NewCatalogRepository(repository.NewMemoryStore(), nil, "catalog:", 0)
	contact := messaging.NewContact("5511999998888")
	fetcher := new(MockFetcher)
	loader := catalog.NewLoader(cat, repo, fetcher, "", logger)

	storefront := NewStorefrontHandler(cat, repo, contact, testBaseURL, logger)
	admin := NewAdminHandler(loader, cat, repo, contact, logger)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/health", HealthCheck)

	sf := r.Group("/api/v1/storefront")
	sf.GET("/products", storefront.GetProducts)
	sf.GET("/products/:code", storefront.GetProduct)
	sf.GET("/products/:code/links", storefront.GetProductLinks)
	sf.GET("/products/:code/gallery", storefront.GetGallery)
	sf.GET("/categories", storefront.GetCategories)
	sf.GET("/share", storefront.GetShareLink)
	sf.GET("/settings", storefront.GetSettings)

	ad := r.Group("/api/v1/admin")
	ad.Use(middleware.AdminGate(true), middleware.DevelopmentAuthMiddleware())
	ad.POST("/import", admin.ImportFile)
	ad.POST("/import/url", admin.ImportURL)
	ad.GET("/import/template", admin.GetImportTemplate)
	ad.GET("/export", admin.Export)
	ad.POST("/reset", admin.Reset)
	ad.PUT("/products", admin.ReplaceProducts)
	ad.POST("/products", admin.CreateProduct)
	ad.PUT("/products/:code", admin.UpdateProduct)
	ad.DELETE("/products/:code", admin.DeleteProduct)
	ad.PUT("/settings/contact", admin.UpdateContact)
	ad.PUT("/settings/theme", admin.UpdateTheme)

	return &testEnv{router: r, catalog: cat, repo: repo, contact: contact, fetcher: fetcher}
}

func (e *testEnv) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(method, path, body string) *httptest.ResponseRecorder {
	return e.do(method, path, bytes.NewBufferString(body), "application/json")
}

func (e *testEnv) upload(t *testing.T, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return e.do(http.MethodPost, "/api/v1/admin/import", &buf, writer.FormDataContentType())
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func productCodes(views []models.ProductView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Code
	}
	return out
}

var errFetch = errors.New("connection refused")
