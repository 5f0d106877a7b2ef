package models

import (
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the order status is a known state
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order represents a placed order, with the cart totals snapshotted
// at checkout time
type Order struct {
	ID        string      `json:"id" db:"id"`
	BuyerID   string      `json:"buyer_id" db:"buyer_id"`
	Subtotal  float64     `json:"subtotal" db:"subtotal"`
	Shipping  float64     `json:"shipping" db:"shipping"`
	Tax       float64     `json:"tax" db:"tax"`
	Total     float64     `json:"total" db:"total"`
	Status    OrderStatus `json:"status" db:"status"`
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem represents a line in a placed order
type OrderItem struct {
	ID         string   `json:"id" db:"id"`
	OrderID    string   `json:"order_id" db:"order_id"`
	ProductID  string   `json:"product_id" db:"product_id"`
	WeightKg   float64  `json:"weight_kg" db:"weight_kg"`
	PricePerKg float64  `json:"price_per_kg" db:"price_per_kg"`
	LineTotal  float64  `json:"line_total" db:"line_total"`
	Product    *Product `json:"product,omitempty"`
}

// UpdateOrderStatusRequest moves an order to a new fulfilment state
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
