package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/models"
)

// DevActorID is the actor recorded for admin changes when no caller identity
// is available
const DevActorID = "00000000-0000-0000-0000-000000000001"

// AdminGate lets admin routes through only when enabled. It does not check
// credentials.
func AdminGate(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "ADMIN_DISABLED",
					Message: "Admin endpoints are disabled",
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				RequestID: GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

// DevelopmentAuthMiddleware sets a fixed actor for admin requests
func DevelopmentAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			userID = c.GetHeader("X-User-ID")
		}
		if userID == "" {
			userID = DevActorID
		}

		c.Set("userId", userID)
		c.Set("user_id", userID)
		c.Next()
	}
}
