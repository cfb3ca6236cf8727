package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/catalog"
	"catalog-service/internal/importer"
	"catalog-service/internal/messaging"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// AdminHandler serves the catalog maintenance endpoints
type AdminHandler struct {
	loader  *catalog.Loader
	catalog *catalog.Catalog
	repo    *repository.CatalogRepository
	contact *messaging.Contact
	logger  *logrus.Entry
}

func NewAdminHandler(loader *catalog.Loader, cat *catalog.Catalog, repo *repository.CatalogRepository, contact *messaging.Contact, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		loader:  loader,
		catalog: cat,
		repo:    repo,
		contact: contact,
		logger:  logger.WithField("component", "admin_handler"),
	}
}

// respondLoadError maps loader and importer failures to error responses
func (h *AdminHandler) respondLoadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, importer.ErrUnsupportedFormat):
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Only JSON, CSV and XLSX files are supported")
	case errors.Is(err, importer.ErrNotArray):
		respondError(c, http.StatusBadRequest, "INVALID_JSON_ARRAY", "The JSON document must be an array of products")
	case errors.Is(err, importer.ErrEmptyFile):
		respondError(c, http.StatusBadRequest, "EMPTY_FILE", "The file contains no data")
	case errors.Is(err, catalog.ErrInvalidURL):
		respondError(c, http.StatusBadRequest, "INVALID_URL", err.Error())
	default:
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", err.Error())
	}
}

// ImportFile replaces the catalog with an uploaded file
// @Summary Import catalog file
// @Description Accepts .json (array), .csv or .xlsx files with a header row
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Catalog file"
// @Success 200 {object} models.CatalogResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/import [post]
func (h *AdminHandler) ImportFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "Please upload a JSON, CSV or Excel file")
		return
	}
	defer file.Close()

	snap, err := h.loader.ImportFile(actorContext(c), header.Filename, file)
	if err != nil {
		h.logger.WithError(err).WithField("filename", header.Filename).Warn("Catalog import failed")
		h.respondLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogResponse(snap, "Produtos carregados do arquivo"))
}

// ImportURL replaces the catalog with a remote JSON array
// @Summary Import catalog from URL
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.ImportURLRequest true "Remote JSON location"
// @Success 200 {object} models.CatalogResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /admin/import/url [post]
func (h *AdminHandler) ImportURL(c *gin.Context) {
	var req models.ImportURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	snap, err := h.loader.ImportURL(actorContext(c), req.URL)
	if err != nil {
		h.logger.WithError(err).WithField("url", req.URL).Warn("Catalog URL import failed")
		if errors.Is(err, catalog.ErrInvalidURL) || errors.Is(err, importer.ErrNotArray) {
			h.respondLoadError(c, err)
			return
		}
		respondError(c, http.StatusBadGateway, "FETCH_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusOK, catalogResponse(snap, "Produtos carregados via URL"))
}

// GetImportTemplate returns the import template definition or file
// @Summary Import template
// @Tags admin
// @Produce json
// @Param format query string false "json, csv or xlsx"
// @Success 200 {object} map[string]interface{}
// @Router /admin/import/template [get]
func (h *AdminHandler) GetImportTemplate(c *gin.Context) {
	template := models.ProductImportTemplate()

	switch c.DefaultQuery("format", "json") {
	case "csv":
		c.Header("Content-Type", importer.ContentType(models.ImportFormatCSV))
		c.Header("Content-Disposition", "attachment; filename=products_import_template.csv")
		if err := importer.TemplateCSV(c.Writer, template); err != nil {
			h.logger.WithError(err).Error("Failed to write CSV template")
		}
	case "xlsx":
		c.Header("Content-Type", importer.ContentType(models.ImportFormatXLSX))
		c.Header("Content-Disposition", "attachment; filename=products_import_template.xlsx")
		if err := importer.TemplateXLSX(c.Writer, template); err != nil {
			h.logger.WithError(err).Error("Failed to write XLSX template")
		}
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

// Export downloads the canonical collection
// @Summary Export catalog
// @Tags admin
// @Produce json
// @Param format query string false "json (default), csv or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/export [get]
func (h *AdminHandler) Export(c *gin.Context) {
	format, err := importer.ParseFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		h.respondLoadError(c, err)
		return
	}

	data, err := importer.Export(format, h.catalog.Products())
	if err != nil {
		h.logger.WithError(err).Error("Failed to export catalog")
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export products")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=produtos.%s", format))
	c.Data(http.StatusOK, importer.ContentType(format), data)
}

// Reset reloads the products source or the embedded defaults
// @Summary Reset catalog
// @Tags admin
// @Produce json
// @Success 200 {object} models.CatalogResponse
// @Router /admin/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	snap := h.loader.Reset(actorContext(c))
	c.JSON(http.StatusOK, catalogResponse(snap, "Catálogo restaurado"))
}

// ReplaceProducts replaces the whole collection with a raw product list
// @Summary Replace all products
// @Description Body is a JSON array of products, or {"products": [...]}
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} models.CatalogResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [put]
func (h *AdminHandler) ReplaceProducts(c *gin.Context) {
	body, err := importer.DecodeJSON(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if obj, ok := body.(map[string]any); ok {
		body = obj["products"]
	}
	raw, ok := body.([]any)
	if !ok {
		h.respondLoadError(c, importer.ErrNotArray)
		return
	}

	snap := h.loader.Replace(actorContext(c), raw)
	c.JSON(http.StatusOK, catalogResponse(snap, "Produtos atualizados"))
}

// CreateProduct appends one product
// @Summary Add product
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} models.ProductResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	item, ok := h.bindRecord(c)
	if !ok {
		return
	}

	product, _ := h.loader.Append(actorContext(c), item)
	view := productView(product, h.contact.Get())
	c.JSON(http.StatusCreated, models.ProductResponse{
		Success: true,
		Data:    &view,
	})
}

// UpdateProduct merges fields into one product
// @Summary Update product
// @Tags admin
// @Accept json
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} models.ProductResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{code} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	patch, ok := h.bindRecord(c)
	if !ok {
		return
	}

	product, _, err := h.loader.Update(actorContext(c), c.Param("code"), patch)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "UPDATE_FAILED", err.Error())
		return
	}

	view := productView(product, h.contact.Get())
	c.JSON(http.StatusOK, models.ProductResponse{
		Success: true,
		Data:    &view,
	})
}

// DeleteProduct removes one product
// @Summary Delete product
// @Tags admin
// @Produce json
// @Param code path string true "Product code"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{code} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	removed, _, err := h.loader.Delete(actorContext(c), c.Param("code"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", err.Error())
		return
	}

	message := "Product deleted successfully"
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    removed,
		Message: &message,
	})
}

// UpdateContact changes the WhatsApp contact number
// @Summary Update contact number
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.UpdateContactRequest true "Contact number"
// @Success 200 {object} models.SettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/settings/contact [put]
func (h *AdminHandler) UpdateContact(c *gin.Context) {
	var req models.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	number, err := messaging.ValidateNumber(req.Number)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CONTACT", "Informe um número válido com DDI + DDD + número")
		return
	}
	if err := h.repo.SaveContact(c.Request.Context(), number); err != nil {
		h.logger.WithError(err).Error("Failed to persist contact number")
		respondError(c, http.StatusInternalServerError, "SAVE_FAILED", "Failed to save contact number")
		return
	}
	h.contact.Set(number)

	theme, _ := h.repo.LoadTheme(c.Request.Context())
	c.JSON(http.StatusOK, models.SettingsResponse{
		Success: true,
		Data:    models.Settings{WhatsAppNumber: number, Theme: theme},
	})
}

// UpdateTheme changes the storefront theme
// @Summary Update theme
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.UpdateThemeRequest true "dark or light"
// @Success 200 {object} models.SettingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/settings/theme [put]
func (h *AdminHandler) UpdateTheme(c *gin.Context) {
	var req models.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Theme != models.ThemeDark && req.Theme != models.ThemeLight {
		respondError(c, http.StatusBadRequest, "INVALID_THEME", "Theme must be dark or light")
		return
	}
	if err := h.repo.SaveTheme(c.Request.Context(), req.Theme); err != nil {
		h.logger.WithError(err).Error("Failed to persist theme")
		respondError(c, http.StatusInternalServerError, "SAVE_FAILED", "Failed to save theme")
		return
	}

	c.JSON(http.StatusOK, models.SettingsResponse{
		Success: true,
		Data:    models.Settings{WhatsAppNumber: h.contact.Get(), Theme: req.Theme},
	})
}

// bindRecord decodes a single raw product object from the request body
func (h *AdminHandler) bindRecord(c *gin.Context) (map[string]any, bool) {
	body, err := importer.DecodeJSON(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return nil, false
	}
	record, ok := body.(map[string]any)
	if !ok {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Body must be a JSON object")
		return nil, false
	}
	return record, true
}
