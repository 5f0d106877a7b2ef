package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// GetProduct fetches a single active product by ID
func (db *Database) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	query := `
        SELECT product_id, seller_id, name, category, description,
               price_per_kg, min_order_weight_kg, available_stock_kg,
               origin, is_active, created_at, updated_at
        FROM products
        WHERE product_id = $1
    `
	var p models.Product
	err := db.Pool.QueryRow(ctx, query, productID).Scan(
		&p.ID, &p.SellerID, &p.Name, &p.Category, &p.Description,
		&p.PricePerKg, &p.MinOrderWeightKg, &p.AvailableStockKg,
		&p.Origin, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	images, err := db.getProductImages(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.ImageUrls = images
	return &p, nil
}

// GetSellerProducts lists a seller's active products, optionally
// filtered by category
func (db *Database) GetSellerProducts(ctx context.Context, sellerID, category string) ([]models.Product, error) {
	query := `
        SELECT product_id, seller_id, name, category, description,
               price_per_kg, min_order_weight_kg, available_stock_kg,
               origin, is_active, created_at, updated_at
        FROM products
        WHERE seller_id = $1 AND is_active = true
          AND ($2 = '' OR category = $2)
        ORDER BY created_at DESC
    `
	rows, err := db.Pool.Query(ctx, query, sellerID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query seller products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.SellerID, &p.Name, &p.Category, &p.Description,
			&p.PricePerKg, &p.MinOrderWeightKg, &p.AvailableStockKg,
			&p.Origin, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	for i := range products {
		images, err := db.getProductImages(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].ImageUrls = images
	}
	return products, nil
}

func (db *Database) getProductImages(ctx context.Context, productID string) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT image_url FROM product_images WHERE product_id = $1 ORDER BY display_order, image_id`,
		productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query product images: %w", err)
	}
	defer rows.Close()

	urls := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// GetSellerReviews lists reviews for a seller, newest first
func (db *Database) GetSellerReviews(ctx context.Context, sellerID string) ([]models.Review, error) {
	query := `
        SELECT review_id, seller_id, buyer_name, rating, comment, created_at
        FROM reviews
        WHERE seller_id = $1
        ORDER BY created_at DESC
    `
	rows, err := db.Pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.SellerID, &r.BuyerName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// GetStorePhotos lists a seller's gallery photos in display order
func (db *Database) GetStorePhotos(ctx context.Context, sellerID string) ([]models.StorePhoto, error) {
	query := `
        SELECT photo_id, seller_id, image_url, display_order, created_at
        FROM store_photos
        WHERE seller_id = $1
        ORDER BY display_order, photo_id
    `
	rows, err := db.Pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query store photos: %w", err)
	}
	defer rows.Close()

	photos := []models.StorePhoto{}
	for rows.Next() {
		var ph models.StorePhoto
		if err := rows.Scan(&ph.ID, &ph.SellerID, &ph.ImageURL, &ph.DisplayOrder, &ph.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan store photo: %w", err)
		}
		photos = append(photos, ph)
	}
	return photos, rows.Err()
}

// AddStorePhoto appends a gallery photo at the end of the display order
func (db *Database) AddStorePhoto(ctx context.Context, sellerID, imageURL string) (*models.StorePhoto, error) {
	query := `
        INSERT INTO store_photos (photo_id, seller_id, image_url, display_order)
        VALUES ($1, $2, $3, (
            SELECT COALESCE(MAX(display_order), 0) + 1
            FROM store_photos
            WHERE seller_id = $2
        ))
        RETURNING photo_id, seller_id, image_url, display_order, created_at
    `
	var ph models.StorePhoto
	err := db.Pool.QueryRow(ctx, query, uuid.New().String(), sellerID, imageURL).Scan(
		&ph.ID, &ph.SellerID, &ph.ImageURL, &ph.DisplayOrder, &ph.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert store photo: %w", err)
	}
	return &ph, nil
}

// DeleteStorePhoto removes a gallery photo, scoped to the seller
func (db *Database) DeleteStorePhoto(ctx context.Context, sellerID, photoID string) error {
	result, err := db.Pool.Exec(ctx,
		`DELETE FROM store_photos WHERE photo_id = $1 AND seller_id = $2`, photoID, sellerID)
	if err != nil {
		return fmt.Errorf("failed to delete store photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPublicSellerProfile assembles the public aggregate for GET /sellers/:id
func (db *Database) GetPublicSellerProfile(ctx context.Context, sellerID, category string) (*models.PublicSellerProfile, error) {
	seller, err := db.GetSellerProfile(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	products, err := db.GetSellerProducts(ctx, sellerID, category)
	if err != nil {
		return nil, err
	}
	reviews, err := db.GetSellerReviews(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	photos, err := db.GetStorePhotos(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	var avg float64
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg = float64(sum) / float64(len(reviews))
	}

	return &models.PublicSellerProfile{
		ID:                seller.ID,
		CompanyName:       seller.CompanyName,
		About:             seller.About,
		BusinessLogo:      seller.BusinessLogo,
		BusinessType:      seller.BusinessType,
		ProductCategories: seller.ProductCategories,
		City:              seller.BusinessAddress.City,
		Country:           seller.BusinessAddress.Country,
		ShippingType:      seller.ShippingType,
		ServiceAreas:      seller.ServiceAreas,
		SocialLinks:       seller.SocialLinks,
		Products:          products,
		Reviews:           reviews,
		StorePhotos:       photos,
		AverageRating:     avg,
		MemberSince:       seller.CreatedAt,
	}, nil
}

// GetSellerStats returns the dashboard counters for a seller
func (db *Database) GetSellerStats(ctx context.Context, sellerID string) (productCount, orderCount, pendingOrders int, revenue float64, err error) {
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE seller_id = $1 AND is_active = true`,
		sellerID).Scan(&productCount)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := `
        SELECT COUNT(DISTINCT o.id),
               COUNT(DISTINCT o.id) FILTER (WHERE o.status = 'pending'),
               COALESCE(SUM(oi.line_total), 0)
        FROM orders o
        JOIN order_items oi ON oi.order_id = o.id
        JOIN products p ON p.product_id = oi.product_id
        WHERE p.seller_id = $1 AND o.status <> 'cancelled'
    `
	err = db.Pool.QueryRow(ctx, query, sellerID).Scan(&orderCount, &pendingOrders, &revenue)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to aggregate orders: %w", err)
	}
	return productCount, orderCount, pendingOrders, revenue, nil
}
