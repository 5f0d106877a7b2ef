package models

import (
	"time"
)

// BusinessType represents the kind of exporting business a seller runs
type BusinessType string

const (
	BusinessTypeManufacturer BusinessType = "Manufacturer"
	BusinessTypeExporter     BusinessType = "Exporter"
	BusinessTypeWholesaler   BusinessType = "Wholesaler"
	BusinessTypeFarmerCoop   BusinessType = "FarmerCooperative"
)

// ShippingType represents how a seller ships export orders
type ShippingType string

const (
	ShippingTypeAirCargo       ShippingType = "AirCargo"
	ShippingTypeSeaFreight     ShippingType = "SeaFreight"
	ShippingTypeExpressCourier ShippingType = "ExpressCourier"
	ShippingTypeLandTransport  ShippingType = "LandTransport"
)

// IsValid checks if the shipping type is one of the supported options
func (s ShippingType) IsValid() bool {
	switch s {
	case ShippingTypeAirCargo, ShippingTypeSeaFreight, ShippingTypeExpressCourier, ShippingTypeLandTransport:
		return true
	default:
		return false
	}
}

// Address is a postal address attached to a seller profile
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	State   string `json:"state" db:"state"`
	Country string `json:"country" db:"country"`
	PinCode string `json:"pin_code" db:"pin_code"`
}

// WarehouseAddress mirrors Address with a flag to reuse the business address.
// It is stored but never counted toward profile completion.
type WarehouseAddress struct {
	Address
	SameAsBusiness bool `json:"same_as_business" db:"same_as_business"`
}

// SocialLinks holds the optional social handles for a seller storefront
type SocialLinks struct {
	Website   string `json:"website" db:"website"`
	LinkedIn  string `json:"linkedin" db:"linkedin"`
	Instagram string `json:"instagram" db:"instagram"`
	Facebook  string `json:"facebook" db:"facebook"`
}

// SellerProfile is the authoritative seller record, assembled incrementally
// across four independently-savable sections (basic info, addresses,
// shipping & logistics, social links). Partial profiles are valid persisted
// states at all times.
type SellerProfile struct {
	ID                string           `json:"id" db:"seller_id"`
	FullName          string           `json:"full_name" db:"full_name"`
	CompanyName       string           `json:"company_name" db:"company_name"`
	Email             string           `json:"email" db:"email"`
	Mobile            string           `json:"mobile" db:"mobile"`
	BusinessType      string           `json:"business_type" db:"business_type"`
	ProductCategories []string         `json:"product_categories" db:"product_categories"`
	About             string           `json:"about" db:"about"`
	BusinessLogo      string           `json:"business_logo" db:"business_logo"`
	BusinessAddress   Address          `json:"business_address"`
	WarehouseAddress  WarehouseAddress `json:"warehouse_address"`
	ShippingType      string           `json:"shipping_type" db:"shipping_type"`
	ServiceAreas      []string         `json:"service_areas" db:"service_areas"`
	ReturnPolicy      string           `json:"return_policy" db:"return_policy"`
	SocialLinks       SocialLinks      `json:"social_links"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" db:"updated_at"`
}

// UpdateBasicInfoRequest carries the fields of profile section 1.
// The business logo travels separately as a multipart file when a new
// binary is staged; otherwise the previously persisted URL is resent.
type UpdateBasicInfoRequest struct {
	FullName          string   `json:"full_name" form:"full_name"`
	CompanyName       string   `json:"company_name" form:"company_name"`
	Email             string   `json:"email" form:"email"`
	Mobile            string   `json:"mobile" form:"mobile"`
	BusinessType      string   `json:"business_type" form:"business_type"`
	ProductCategories []string `json:"product_categories" form:"product_categories"`
	About             string   `json:"about" form:"about"`
	BusinessLogo      string   `json:"business_logo" form:"business_logo"`
}

// UpdateAddressRequest carries the fields of profile section 2
type UpdateAddressRequest struct {
	BusinessAddress  Address          `json:"business_address"`
	WarehouseAddress WarehouseAddress `json:"warehouse_address"`
}

// UpdateLogisticsRequest carries the fields of profile section 3
type UpdateLogisticsRequest struct {
	ShippingType string   `json:"shipping_type"`
	ServiceAreas []string `json:"service_areas"`
	ReturnPolicy string   `json:"return_policy"`
}

// UpdateSocialLinksRequest carries the fields of profile section 4
type UpdateSocialLinksRequest struct {
	SocialLinks SocialLinks `json:"social_links"`
}

// FullProfileRequest is the single-shot submit path that sends every
// section at once (separate from the per-section saves)
type FullProfileRequest struct {
	UpdateBasicInfoRequest
	BusinessAddress  Address          `json:"business_address"`
	WarehouseAddress WarehouseAddress `json:"warehouse_address"`
	ShippingType     string           `json:"shipping_type"`
	ServiceAreas     []string         `json:"service_areas"`
	ReturnPolicy     string           `json:"return_policy"`
	SocialLinks      SocialLinks      `json:"social_links"`
}

// ProfileResponse is the seller-facing view of their own profile,
// including the derived completion score
type ProfileResponse struct {
	Profile       SellerProfile `json:"profile"`
	Completion    int           `json:"completion"`
	MissingFields []string      `json:"missing_fields"`
}

// DashboardResponse aggregates the numbers shown on the seller dashboard
type DashboardResponse struct {
	ProductCount      int     `json:"product_count"`
	OrderCount        int     `json:"order_count"`
	PendingOrders     int     `json:"pending_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	ProfileCompletion int     `json:"profile_completion"`
}
