package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

const sellerColumns = `
    seller_id, full_name, company_name, email, mobile, business_type,
    product_categories, about, business_logo,
    biz_street, biz_city, biz_state, biz_country, biz_pin_code,
    wh_street, wh_city, wh_state, wh_country, wh_pin_code, wh_same_as_business,
    shipping_type, service_areas, return_policy,
    website, linkedin, instagram, facebook,
    created_at, updated_at
`

// Section-save statements. Each one touches only its own section's
// columns (plus updated_at) so a save never clobbers another step's
// state; sellers_test.go holds them to that.
const (
	updateBasicInfoQuery = `
        UPDATE sellers
        SET
            full_name = $2,
            company_name = $3,
            email = $4,
            mobile = $5,
            business_type = $6,
            product_categories = $7,
            about = $8,
            business_logo = $9,
            updated_at = CURRENT_TIMESTAMP
        WHERE seller_id = $1
    `
	updateAddressesQuery = `
        UPDATE sellers
        SET
            biz_street = $2,
            biz_city = $3,
            biz_state = $4,
            biz_country = $5,
            biz_pin_code = $6,
            wh_street = $7,
            wh_city = $8,
            wh_state = $9,
            wh_country = $10,
            wh_pin_code = $11,
            wh_same_as_business = $12,
            updated_at = CURRENT_TIMESTAMP
        WHERE seller_id = $1
    `
	updateLogisticsQuery = `
        UPDATE sellers
        SET
            shipping_type = $2,
            service_areas = $3,
            return_policy = $4,
            updated_at = CURRENT_TIMESTAMP
        WHERE seller_id = $1
    `
	updateSocialLinksQuery = `
        UPDATE sellers
        SET
            website = $2,
            linkedin = $3,
            instagram = $4,
            facebook = $5,
            updated_at = CURRENT_TIMESTAMP
        WHERE seller_id = $1
    `
	updateFullProfileQuery = `
        UPDATE sellers
        SET
            full_name = $2,
            company_name = $3,
            email = $4,
            mobile = $5,
            business_type = $6,
            product_categories = $7,
            about = $8,
            business_logo = $9,
            biz_street = $10,
            biz_city = $11,
            biz_state = $12,
            biz_country = $13,
            biz_pin_code = $14,
            wh_street = $15,
            wh_city = $16,
            wh_state = $17,
            wh_country = $18,
            wh_pin_code = $19,
            wh_same_as_business = $20,
            shipping_type = $21,
            service_areas = $22,
            return_policy = $23,
            website = $24,
            linkedin = $25,
            instagram = $26,
            facebook = $27,
            updated_at = CURRENT_TIMESTAMP
        WHERE seller_id = $1
    `
)

func scanSellerProfile(row pgx.Row) (*models.SellerProfile, error) {
	var p models.SellerProfile
	err := row.Scan(
		&p.ID, &p.FullName, &p.CompanyName, &p.Email, &p.Mobile, &p.BusinessType,
		&p.ProductCategories, &p.About, &p.BusinessLogo,
		&p.BusinessAddress.Street, &p.BusinessAddress.City, &p.BusinessAddress.State,
		&p.BusinessAddress.Country, &p.BusinessAddress.PinCode,
		&p.WarehouseAddress.Street, &p.WarehouseAddress.City, &p.WarehouseAddress.State,
		&p.WarehouseAddress.Country, &p.WarehouseAddress.PinCode, &p.WarehouseAddress.SameAsBusiness,
		&p.ShippingType, &p.ServiceAreas, &p.ReturnPolicy,
		&p.SocialLinks.Website, &p.SocialLinks.LinkedIn, &p.SocialLinks.Instagram, &p.SocialLinks.Facebook,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan seller profile: %w", err)
	}
	if p.ProductCategories == nil {
		p.ProductCategories = []string{}
	}
	if p.ServiceAreas == nil {
		p.ServiceAreas = []string{}
	}
	return &p, nil
}

// GetSellerProfile fetches a seller's full profile record
func (db *Database) GetSellerProfile(ctx context.Context, sellerID string) (*models.SellerProfile, error) {
	query := `SELECT ` + sellerColumns + ` FROM sellers WHERE seller_id = $1`
	return scanSellerProfile(db.Pool.QueryRow(ctx, query, sellerID))
}

// CreateSellerProfile inserts the empty profile created at seller signup.
// Every section beyond the identity fields starts blank; the profile is
// filled in incrementally through the section saves.
func (db *Database) CreateSellerProfile(ctx context.Context, sellerID, fullName, companyName, email string) error {
	query := `
        INSERT INTO sellers (seller_id, full_name, company_name, email)
        VALUES ($1, $2, $3, $4)
    `
	if _, err := db.Pool.Exec(ctx, query, sellerID, fullName, companyName, email); err != nil {
		return fmt.Errorf("failed to create seller profile: %w", err)
	}
	return nil
}

// UpdateBasicInfo saves profile section 1. Only the basic-info columns
// are touched so the other sections keep whatever state they had.
func (db *Database) UpdateBasicInfo(ctx context.Context, sellerID string, req models.UpdateBasicInfoRequest) error {
	categories := req.ProductCategories
	if categories == nil {
		categories = []string{}
	}
	result, err := db.Pool.Exec(ctx, updateBasicInfoQuery,
		sellerID,
		req.FullName,
		req.CompanyName,
		req.Email,
		req.Mobile,
		req.BusinessType,
		categories,
		req.About,
		req.BusinessLogo,
	)
	if err != nil {
		return fmt.Errorf("failed to update basic info: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAddresses saves profile section 2 (business + warehouse address)
func (db *Database) UpdateAddresses(ctx context.Context, sellerID string, req models.UpdateAddressRequest) error {
	result, err := db.Pool.Exec(ctx, updateAddressesQuery,
		sellerID,
		req.BusinessAddress.Street,
		req.BusinessAddress.City,
		req.BusinessAddress.State,
		req.BusinessAddress.Country,
		req.BusinessAddress.PinCode,
		req.WarehouseAddress.Street,
		req.WarehouseAddress.City,
		req.WarehouseAddress.State,
		req.WarehouseAddress.Country,
		req.WarehouseAddress.PinCode,
		req.WarehouseAddress.SameAsBusiness,
	)
	if err != nil {
		return fmt.Errorf("failed to update addresses: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLogistics saves profile section 3 (shipping & logistics)
func (db *Database) UpdateLogistics(ctx context.Context, sellerID string, req models.UpdateLogisticsRequest) error {
	areas := req.ServiceAreas
	if areas == nil {
		areas = []string{}
	}
	result, err := db.Pool.Exec(ctx, updateLogisticsQuery, sellerID, req.ShippingType, areas, req.ReturnPolicy)
	if err != nil {
		return fmt.Errorf("failed to update logistics: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSocialLinks saves profile section 4
func (db *Database) UpdateSocialLinks(ctx context.Context, sellerID string, req models.UpdateSocialLinksRequest) error {
	result, err := db.Pool.Exec(ctx, updateSocialLinksQuery,
		sellerID,
		req.SocialLinks.Website,
		req.SocialLinks.LinkedIn,
		req.SocialLinks.Instagram,
		req.SocialLinks.Facebook,
	)
	if err != nil {
		return fmt.Errorf("failed to update social links: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFullProfile is the single-shot submit path: every section is
// written in one transaction, unlike the independent section saves.
func (db *Database) UpdateFullProfile(ctx context.Context, sellerID string, req models.FullProfileRequest) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	categories := req.ProductCategories
	if categories == nil {
		categories = []string{}
	}
	areas := req.ServiceAreas
	if areas == nil {
		areas = []string{}
	}

	result, err := tx.Exec(ctx, updateFullProfileQuery,
		sellerID,
		req.FullName,
		req.CompanyName,
		req.Email,
		req.Mobile,
		req.BusinessType,
		categories,
		req.About,
		req.BusinessLogo,
		req.BusinessAddress.Street,
		req.BusinessAddress.City,
		req.BusinessAddress.State,
		req.BusinessAddress.Country,
		req.BusinessAddress.PinCode,
		req.WarehouseAddress.Street,
		req.WarehouseAddress.City,
		req.WarehouseAddress.State,
		req.WarehouseAddress.Country,
		req.WarehouseAddress.PinCode,
		req.WarehouseAddress.SameAsBusiness,
		req.ShippingType,
		areas,
		req.ReturnPolicy,
		req.SocialLinks.Website,
		req.SocialLinks.LinkedIn,
		req.SocialLinks.Instagram,
		req.SocialLinks.Facebook,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateBusinessLogo stores the persisted logo URL after an upload
func (db *Database) UpdateBusinessLogo(ctx context.Context, sellerID, logoURL string) error {
	query := `
        UPDATE sellers
        SET business_logo = $2, updated_at = CURRENT_TIMESTAMP
        WHERE seller_id = $1
    `
	result, err := db.Pool.Exec(ctx, query, sellerID, logoURL)
	if err != nil {
		return fmt.Errorf("failed to update business logo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
