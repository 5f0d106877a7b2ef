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
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/pricing"
)

// CreateOrder handles POST /buyer/orders: places an order from the
// current cart with the totals snapshotted at checkout
func (h *Handler) CreateOrder(c *gin.Context) {
	buyerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	lines, err := h.db.GetCartLines(ctx, buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to read cart",
			Message: err.Error(),
		})
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Cart is empty",
			Message: "Add items to your cart before placing an order",
		})
		return
	}

	order, err := h.db.CreateOrder(ctx, buyerID, lines, pricing.Totals(lines))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to place order",
			Message: err.Error(),
		})
		return
	}

	h.cache.Invalidate(cache.TagCart, cache.TagOrder)
	c.JSON(http.StatusCreated, models.SuccessResponse{
		Message: "Order placed",
		Data:    order,
	})
}

// GetOrders handles GET /buyer/orders
func (h *Handler) GetOrders(c *gin.Context) {
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

	orders, err := h.db.GetOrders(ctx, buyerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Orders retrieved",
		Data:    orders,
	})
}

// AdminListOrders handles GET /admin/orders: every order across buyers
func (h *Handler) AdminListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := h.db.GetAllOrders(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get orders",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Orders retrieved",
		Data:    orders,
	})
}

// AdminUpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}
	if !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid status",
			Message: "Unknown order status: " + string(req.Status),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.db.UpdateOrderStatus(ctx, c.Param("id"), req.Status); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "Order not found",
				Message: "The order you are looking for does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to update order",
			Message: err.Error(),
		})
		return
	}

	h.cache.Invalidate(cache.TagOrder)
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Order status updated"})
}

// GetOrderDetail handles GET /buyer/orders/:id
func (h *Handler) GetOrderDetail(c *gin.Context) {
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

	order, err := h.db.GetOrderDetail(ctx, buyerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "Order not found",
				Message: "The order you are looking for does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get order",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Order retrieved",
		Data:    order,
	})
}
