package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/cache"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/db"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/pricing"
)

// GetCart handles GET /buyer/cart: the buyer's lines plus the derived
// subtotal, shipping, tax and total
func (h *Handler) GetCart(c *gin.Context) {
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

	lines, err := h.db.GetCartLines(ctx, buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get cart",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.CartResponse{
		Items:  lines,
		Totals: pricing.Totals(lines),
	})
}

// validateCartAdd checks an add-to-cart increment. An add accumulates
// onto any existing line for the same product, so the order bounds
// apply to the combined line weight, not just the increment.
func validateCartAdd(existingKg, addKg, minOrderWeightKg, availableStockKg float64) error {
	if addKg <= 0 {
		return fmt.Errorf("Please enter a valid weight")
	}
	return pricing.ValidateWeight(existingKg+addKg, minOrderWeightKg, availableStockKg)
}

// AddToCart handles POST /buyer/cart
func (h *Handler) AddToCart(c *gin.Context) {
	buyerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	product, err := h.db.GetProduct(ctx, req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "Product not found",
			Message: err.Error(),
		})
		return
	}
	if !product.IsActive {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Product unavailable",
			Message: "This product is currently not available",
		})
		return
	}

	existing, err := h.db.GetCartWeightForProduct(ctx, buyerID, product.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get cart",
			Message: err.Error(),
		})
		return
	}

	if err := validateCartAdd(existing, req.WeightKg, product.MinOrderWeightKg, product.AvailableStockKg); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid weight",
			Message: err.Error(),
		})
		return
	}

	if err := h.db.UpsertCartLine(ctx, buyerID, product.ID, req.WeightKg, product.PricePerKg); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to add to cart",
			Message: err.Error(),
		})
		return
	}

	h.cache.Invalidate(cache.TagCart)
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Item added to cart"})
}

// UpdateCartLine handles PUT /buyer/cart/:id. The new weight is
// validated against the product's order bounds before anything is
// written; each violated bound gets its own message.
func (h *Handler) UpdateCartLine(c *gin.Context) {
	buyerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	lineID := c.Param("id")

	var req models.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	line, err := h.db.GetCartLine(ctx, buyerID, lineID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "Cart line not found",
				Message: "The item is no longer in your cart",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get cart line",
			Message: err.Error(),
		})
		return
	}

	product, err := h.db.GetProduct(ctx, line.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get product",
			Message: err.Error(),
		})
		return
	}

	if err := pricing.ValidateWeight(req.WeightKg, product.MinOrderWeightKg, product.AvailableStockKg); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid weight",
			Message: err.Error(),
		})
		return
	}

	updated, err := h.db.UpdateCartLineWeight(ctx, buyerID, lineID, req.WeightKg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to update cart line",
			Message: err.Error(),
		})
		return
	}

	h.cache.Invalidate(cache.TagCart)
	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Cart updated",
		Data:    updated,
	})
}

// RemoveCartLine handles DELETE /buyer/cart/:id
func (h *Handler) RemoveCartLine(c *gin.Context) {
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

	if err := h.db.RemoveCartLine(ctx, buyerID, c.Param("id")); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.RemoveCartLineResponse{
				Success: false,
				Message: "The item is no longer in your cart",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to remove cart line",
			Message: err.Error(),
		})
		return
	}

	h.cache.Invalidate(cache.TagCart)
	c.JSON(http.StatusOK, models.RemoveCartLineResponse{
		Success: true,
		Message: "Item removed from cart",
	})
}
