package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/db"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/pricing"
)

// GetSamples handles GET /buyer/samples
func (h *Handler) GetSamples(c *gin.Context) {
	buyerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	samples, err := h.db.GetSampleRequests(ctx, buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get samples",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Samples retrieved",
		Data:    samples,
	})
}

// CreateSample handles POST /buyer/samples. Samples come in fixed
// weight tiers; custom tiers carry their own weight up to the cap.
func (h *Handler) CreateSample(c *gin.Context) {
	buyerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	var req models.CreateSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	if err := pricing.ValidateSampleTier(req.Tier, req.CustomGrams); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid sample tier",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := h.db.GetProduct(ctx, req.ProductID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Product not found",
			Message: err.Error(),
		})
		return
	}

	sample, err := h.db.CreateSampleRequest(ctx, buyerID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create sample request",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message: "Sample request created",
		Data:    sample,
	})
}

// UpdateSample handles PUT /buyer/samples/:id
func (h *Handler) UpdateSample(c *gin.Context) {
	buyerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	var req models.UpdateSampleTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	if err := pricing.ValidateSampleTier(req.Tier, req.CustomGrams); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid sample tier",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sample, err := h.db.UpdateSampleTier(ctx, buyerID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "Sample request not found",
				Message: "The sample request no longer exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to update sample request",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Sample request updated",
		Data:    sample,
	})
}

// RemoveSample handles DELETE /buyer/samples/:id
func (h *Handler) RemoveSample(c *gin.Context) {
	buyerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.db.RemoveSampleRequest(ctx, buyerID, c.Param("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "Sample request not found",
				Message: "The sample request no longer exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to remove sample request",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.RemoveCartLineResponse{
		Success: true,
		Message: "Sample request removed",
	})
}
