package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const contextInvoiceIDKey = "invoice_id"

// corsMiddleware returns nil when no origin is configured; the UI is served
// from the same origin and needs none.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && strings.TrimSpace(origins[0]) == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// tagInvoice exposes the invoice id to the request log and span.
func tagInvoice(c *gin.Context, id string) {
	if id = strings.TrimSpace(id); id != "" {
		c.Set(contextInvoiceIDKey, id)
	}
}
