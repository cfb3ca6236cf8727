package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/catalog"
	"catalog-service/internal/events"
	"catalog-service/internal/messaging"
	"catalog-service/internal/middleware"
	"catalog-service/internal/models"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: middleware.GetRequestID(c),
	})
}

func catalogResponse(snap catalog.Snapshot, message string) models.CatalogResponse {
	return models.CatalogResponse{
		Success:  true,
		Source:   snap.Source,
		Count:    len(snap.Products),
		Version:  snap.Version,
		LoadedAt: snap.LoadedAt,
		Message:  message,
	}
}

func productView(p models.Product, contactNumber string) models.ProductView {
	return models.ProductView{
		Product:     p,
		PriceLabel:  messaging.FormatPrice(p.Price),
		ImageURL:    catalog.ImageURL(p),
		WhatsAppURL: messaging.InquiryLink(contactNumber, p),
	}
}

func productViews(products []models.Product, contactNumber string) []models.ProductView {
	views := make([]models.ProductView, len(products))
	for i, p := range products {
		views[i] = productView(p, contactNumber)
	}
	return views
}

// actorContext returns the request context carrying the caller as the
// actor of catalog events
func actorContext(c *gin.Context) context.Context {
	return events.WithActor(c.Request.Context(), events.Actor{
		ID:        c.GetString("user_id"),
		Name:      c.GetHeader("X-User-Name"),
		Email:     c.GetHeader("X-User-Email"),
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}
