package models

import (
	"time"
)

// Product represents a spice listing offered by a seller
type Product struct {
	ID               string    `json:"id" db:"product_id"`
	SellerID         string    `json:"seller_id" db:"seller_id"`
	Name             string    `json:"name" db:"name"`
	Category         string    `json:"category" db:"category"`
	Description      string    `json:"description" db:"description"`
	PricePerKg       float64   `json:"price_per_kg" db:"price_per_kg"`
	MinOrderWeightKg float64   `json:"min_order_weight_kg" db:"min_order_weight_kg"`
	AvailableStockKg float64   `json:"available_stock_kg" db:"available_stock_kg"`
	Origin           string    `json:"origin" db:"origin"`
	ImageUrls        []string  `json:"image_urls"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// HasStock returns true if the product has any stock left to sell
func (p *Product) HasStock() bool {
	return p.AvailableStockKg > 0
}

// Review is a buyer review shown on the public seller profile
type Review struct {
	ID        string    `json:"id" db:"review_id"`
	SellerID  string    `json:"seller_id" db:"seller_id"`
	BuyerName string    `json:"buyer_name" db:"buyer_name"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StorePhoto is a gallery image on the public seller profile
type StorePhoto struct {
	ID           string    `json:"id" db:"photo_id"`
	SellerID     string    `json:"seller_id" db:"seller_id"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PublicSellerProfile is the aggregate returned by GET /sellers/:id:
// the seller plus nested products, reviews, and store photos
type PublicSellerProfile struct {
	ID                string       `json:"id"`
	CompanyName       string       `json:"company_name"`
	About             string       `json:"about"`
	BusinessLogo      string       `json:"business_logo"`
	BusinessType      string       `json:"business_type"`
	ProductCategories []string     `json:"product_categories"`
	City              string       `json:"city"`
	Country           string       `json:"country"`
	ShippingType      string       `json:"shipping_type"`
	ServiceAreas      []string     `json:"service_areas"`
	SocialLinks       SocialLinks  `json:"social_links"`
	Products          []Product    `json:"products"`
	Reviews           []Review     `json:"reviews"`
	StorePhotos       []StorePhoto `json:"store_photos"`
	AverageRating     float64      `json:"average_rating"`
	MemberSince       time.Time    `json:"member_since"`
}
