package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/catalog"
	"catalog-service/internal/messaging"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// StorefrontHandler serves the public catalog endpoints
type StorefrontHandler struct {
	catalog *catalog.Catalog
	repo    *repository.CatalogRepository
	contact *messaging.Contact
	baseURL string
	logger  *logrus.Entry
}

func NewStorefrontHandler(cat *catalog.Catalog, repo *repository.CatalogRepository, contact *messaging.Contact, baseURL string, logger *logrus.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		catalog: cat,
		repo:    repo,
		contact: contact,
		baseURL: baseURL,
		logger:  logger.WithField("component", "storefront_handler"),
	}
}

// pageURL is the public catalog page that share links point at
func (h *StorefrontHandler) pageURL() string {
	return h.baseURL + "/"
}

func (h *StorefrontHandler) productURL(code string) string {
	return h.baseURL + "/products/" + code
}

// GetProducts lists the products matching the query string
// @Summary List products
// @Description Filter and sort the catalog. Parameters equal to their default can be omitted.
// @Tags storefront
// @Produce json
// @Param q query string false "Case-insensitive text over name and description"
// @Param category query string false "Exact category, or all"
// @Param min query number false "Minimum price"
// @Param max query number false "Maximum price"
// @Param sort query string false "default, price-asc or price-desc"
// @Success 200 {object} models.ProductListResponse
// @Router /storefront/products [get]
func (h *StorefrontHandler) GetProducts(c *gin.Context) {
	q := catalog.DecodeQuery(c.Request.URL.Query())
	version := h.catalog.Version()

	products, err := h.repo.CachedListing(c.Request.Context(), version, q, func() []models.Product {
		return h.catalog.Search(q)
	})
	if err != nil {
		h.logger.WithError(err).Warn("Listing cache unavailable, searching directly")
		products = h.catalog.Search(q)
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:       true,
		Data:          productViews(products, h.contact.Get()),
		Count:         len(products),
		Summary:       catalog.ResultSummary(len(products)),
		ActiveFilters: catalog.ActiveFilters(q),
		Query:         q,
		ShareURL:      catalog.ShareURL(h.pageURL(), q),
		Categories:    h.catalog.Categories(),
	})
}

// GetProduct returns one product by display code
// @Summary Get product
// @Tags storefront
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} models.ProductResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /storefront/products/{code} [get]
func (h *StorefrontHandler) GetProduct(c *gin.Context) {
	product, ok := h.catalog.Find(c.Param("code"))
	if !ok {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	number := h.contact.Get()
	view := productView(product, number)
	links := messaging.ProductLinks(number, product, h.productURL(product.Code))
	c.JSON(http.StatusOK, models.ProductResponse{
		Success: true,
		Data:    &view,
		Links:   &links,
	})
}

// GetProductLinks returns the contact links of one product
// @Summary Get product contact links
// @Tags storefront
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /storefront/products/{code}/links [get]
func (h *StorefrontHandler) GetProductLinks(c *gin.Context) {
	product, ok := h.catalog.Find(c.Param("code"))
	if !ok {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    messaging.ProductLinks(h.contact.Get(), product, h.productURL(product.Code)),
	})
}

// GetGallery returns lightbox navigation for a product within the listing
// selected by the query string
// @Summary Gallery navigation
// @Tags storefront
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} models.GalleryResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /storefront/products/{code}/gallery [get]
func (h *StorefrontHandler) GetGallery(c *gin.Context) {
	q := catalog.DecodeQuery(c.Request.URL.Query())
	pos, ok := catalog.Navigate(h.catalog.Search(q), c.Param("code"))
	if !ok {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not in the current listing")
		return
	}
	c.JSON(http.StatusOK, models.GalleryResponse{
		Success: true,
		Data:    &pos,
	})
}

// GetCategories lists the distinct categories in catalog order
// @Summary List categories
// @Tags storefront
// @Produce json
// @Success 200 {object} models.CategoryListResponse
// @Router /storefront/categories [get]
func (h *StorefrontHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.CategoryListResponse{
		Success: true,
		Data:    h.catalog.Categories(),
	})
}

// GetShareLink builds a catalog share link
// @Summary Catalog share link
// @Tags storefront
// @Produce json
// @Param platform query string true "whatsapp, telegram or email"
// @Param campaign query string false "Campaign name (default geral)"
// @Param url query string false "Page to share (default the catalog page)"
// @Success 200 {object} models.ShareResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /storefront/share [get]
func (h *StorefrontHandler) GetShareLink(c *gin.Context) {
	platform := c.Query("platform")
	campaign := messaging.Campaign(c.Query("campaign"))
	pageURL := c.DefaultQuery("url", h.pageURL())

	link, err := messaging.ShareLink(platform, campaign, pageURL)
	if err != nil {
		if errors.Is(err, messaging.ErrUnknownPlatform) {
			respondError(c, http.StatusBadRequest, "UNKNOWN_PLATFORM", "Platform must be whatsapp, telegram or email")
			return
		}
		respondError(c, http.StatusInternalServerError, "SHARE_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ShareResponse{
		Success:  true,
		Platform: platform,
		Campaign: campaign,
		URL:      link,
	})
}

// GetSettings returns the contact number and theme
// @Summary Storefront settings
// @Tags storefront
// @Produce json
// @Success 200 {object} models.SettingsResponse
// @Router /storefront/settings [get]
func (h *StorefrontHandler) GetSettings(c *gin.Context) {
	theme, err := h.repo.LoadTheme(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load theme")
	}
	c.JSON(http.StatusOK, models.SettingsResponse{
		Success: true,
		Data: models.Settings{
			WhatsAppNumber: h.contact.Get(),
			Theme:          theme,
		},
	})
}
