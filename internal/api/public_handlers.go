package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/cache"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/db"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// GetPublicSeller handles GET /sellers/:id: the public aggregate of a
// seller with nested products, reviews and store photos. Reads go
// through the tag cache and the response carries the {source,data}
// envelope reporting where the payload came from.
func (h *Handler) GetPublicSeller(c *gin.Context) {
	sellerID := c.Param("id")
	category := c.Query("category")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "public:seller:" + sellerID + ":" + category
	value, source, err := h.cache.GetOrLoad(ctx, key, []string{cache.TagSeller, cache.TagProduct}, func(ctx context.Context) (interface{}, error) {
		return h.db.GetPublicSellerProfile(ctx, sellerID, category)
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "Seller not found",
				Message: "The seller you are looking for does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load seller",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, cache.Envelope{Source: source, Data: value})
}
