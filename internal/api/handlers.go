package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/cache"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/db"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/storage"
)

// Handler holds the service dependencies and provides HTTP handlers
type Handler struct {
	db       *db.Database
	cache    *cache.Store
	uploader *storage.Uploader
}

// NewHandler creates a new handler instance
func NewHandler(database *db.Database, store *cache.Store, uploader *storage.Uploader) *Handler {
	return &Handler{
		db:       database,
		cache:    store,
		uploader: uploader,
	}
}

// Health checks the health of the service
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "starting",
			"service": "marketplace-service",
		})
		return
	}
	if err := h.db.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "marketplace-service",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "marketplace-service",
		"timestamp": time.Now().UTC(),
	})
}
