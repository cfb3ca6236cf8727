package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns a CORS middleware allowing the local storefront dev servers
// plus the given public origins
func CORS(publicOrigins ...string) gin.HandlerFunc {
	origins := []string{
		"http://localhost:3000", // storefront dev server
		"http://localhost:5500", // static file preview
		"http://127.0.0.1:5500",
	}
	for _, o := range publicOrigins {
		if o != "" {
			origins = append(origins, o)
		}
	}

	config := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With", XRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", XRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	return cors.New(config)
}
