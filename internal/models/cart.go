package models

import (
	"time"
)

// CartLine represents one product in a buyer's cart.
// Weight is continuous (kilograms); spice lots are priced per kg.
type CartLine struct {
	ID          string    `json:"id" db:"id"`
	BuyerID     string    `json:"buyer_id" db:"buyer_id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	WeightKg    float64   `json:"weight_kg" db:"weight_kg"`
	PricePerKg  float64   `json:"price_per_kg" db:"price_per_kg"`
	Product     *Product  `json:"product,omitempty"` // Populated when needed
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CartTotals carries the derived aggregates for a cart
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CartResponse is the response format for cart reads
type CartResponse struct {
	Items  []CartLine `json:"items"`
	Totals CartTotals `json:"totals"`
}

// AddToCartRequest represents a request to add a product to the cart
type AddToCartRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	WeightKg  float64 `json:"quantity" binding:"required"`
}

// UpdateCartLineRequest represents a request to change a line's weight.
// The wire field is named quantity to match the storefront contract.
type UpdateCartLineRequest struct {
	WeightKg float64 `json:"quantity" binding:"required"`
}

// RemoveCartLineResponse is returned by DELETE /buyer/cart/:id
type RemoveCartLineResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SampleTier represents the fixed sample weight tiers offered to buyers
type SampleTier string

const (
	SampleTier50g    SampleTier = "50g"
	SampleTier100g   SampleTier = "100g"
	SampleTier250g   SampleTier = "250g"
	SampleTierCustom SampleTier = "custom"
)

// IsValid checks if the sample tier is one of the offered tiers
func (t SampleTier) IsValid() bool {
	switch t {
	case SampleTier50g, SampleTier100g, SampleTier250g, SampleTierCustom:
		return true
	default:
		return false
	}
}

// Grams returns the weight for a fixed tier; custom tiers carry their own weight
func (t SampleTier) Grams() int {
	switch t {
	case SampleTier50g:
		return 50
	case SampleTier100g:
		return 100
	case SampleTier250g:
		return 250
	default:
		return 0
	}
}

// MaxCustomSampleGrams caps custom sample requests
const MaxCustomSampleGrams = 500

// SampleRequest represents a buyer's request for a product sample
type SampleRequest struct {
	ID          string     `json:"id" db:"id"`
	BuyerID     string     `json:"buyer_id" db:"buyer_id"`
	ProductID   string     `json:"product_id" db:"product_id"`
	Tier        SampleTier `json:"tier" db:"tier"`
	CustomGrams int        `json:"custom_grams,omitempty" db:"custom_grams"`
	Product     *Product   `json:"product,omitempty"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// CreateSampleRequest represents a request to add a sample
type CreateSampleRequest struct {
	ProductID   string     `json:"product_id" binding:"required"`
	Tier        SampleTier `json:"tier" binding:"required"`
	CustomGrams int        `json:"custom_grams,omitempty"`
}

// UpdateSampleTierRequest changes the tier of an existing sample request
type UpdateSampleTierRequest struct {
	Tier        SampleTier `json:"tier" binding:"required"`
	CustomGrams int        `json:"custom_grams,omitempty"`
}
