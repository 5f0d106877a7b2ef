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

// AddStorePhoto handles POST /seller/store-photos. The photo arrives as
// a multipart file under the "storePhoto" field and lands on S3 (or
// local disk in development).
func (h *Handler) AddStorePhoto(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	fileHeader, err := c.FormFile("storePhoto")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Missing file",
			Message: "Missing 'storePhoto' form field",
		})
		return
	}
	if fileHeader.Size > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "File too large",
			Message: "File size exceeds 10MB limit",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to open uploaded file",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	if err := validateImageType(file); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid file",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	imageURL, err := h.uploadImage(ctx, "sellers/"+sellerID+"/store", fileHeader, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to upload photo",
			Message: err.Error(),
		})
		return
	}

	photo, err := h.db.AddStorePhoto(ctx, sellerID, imageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "File uploaded but failed to update gallery",
			Message: err.Error(),
		})
		return
	}

	h.cache.Invalidate(cache.TagSeller)
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message: "Photo added",
		Data:    photo,
	})
}

// RemoveStorePhoto handles DELETE /seller/store-photos/:id
func (h *Handler) RemoveStorePhoto(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.db.DeleteStorePhoto(ctx, sellerID, c.Param("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "Photo not found",
				Message: "The photo no longer exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to remove photo",
			Message: err.Error(),
		})
		return
	}

	h.cache.Invalidate(cache.TagSeller)
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Photo removed"})
}
