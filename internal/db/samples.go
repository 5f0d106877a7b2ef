package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// GetSampleRequests lists a buyer's sample requests with products populated
func (db *Database) GetSampleRequests(ctx context.Context, buyerID string) ([]models.SampleRequest, error) {
	query := `
        SELECT s.id, s.buyer_id, s.product_id, s.tier, s.custom_grams,
               s.created_at, s.updated_at,
               p.product_id, p.seller_id, p.name, p.category, p.description,
               p.price_per_kg, p.min_order_weight_kg, p.available_stock_kg,
               p.origin, p.is_active, p.created_at, p.updated_at
        FROM sample_requests s
        JOIN products p ON p.product_id = s.product_id
        WHERE s.buyer_id = $1
        ORDER BY s.created_at
    `
	rows, err := db.Pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sample requests: %w", err)
	}
	defer rows.Close()

	samples := []models.SampleRequest{}
	for rows.Next() {
		var s models.SampleRequest
		var product models.Product
		err := rows.Scan(
			&s.ID, &s.BuyerID, &s.ProductID, &s.Tier, &s.CustomGrams,
			&s.CreatedAt, &s.UpdatedAt,
			&product.ID, &product.SellerID, &product.Name, &product.Category, &product.Description,
			&product.PricePerKg, &product.MinOrderWeightKg, &product.AvailableStockKg,
			&product.Origin, &product.IsActive, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sample request: %w", err)
		}
		s.Product = &product
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// CreateSampleRequest adds a sample request for a buyer
func (db *Database) CreateSampleRequest(ctx context.Context, buyerID string, req models.CreateSampleRequest) (*models.SampleRequest, error) {
	s := models.SampleRequest{
		ID:          uuid.New().String(),
		BuyerID:     buyerID,
		ProductID:   req.ProductID,
		Tier:        req.Tier,
		CustomGrams: req.CustomGrams,
	}
	query := `
        INSERT INTO sample_requests (id, buyer_id, product_id, tier, custom_grams)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `
	err := db.Pool.QueryRow(ctx, query, s.ID, s.BuyerID, s.ProductID, s.Tier, s.CustomGrams).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sample request: %w", err)
	}
	return &s, nil
}

// UpdateSampleTier changes the tier on an existing sample request
func (db *Database) UpdateSampleTier(ctx context.Context, buyerID, sampleID string, req models.UpdateSampleTierRequest) (*models.SampleRequest, error) {
	query := `
        UPDATE sample_requests
        SET tier = $3, custom_grams = $4, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1 AND buyer_id = $2
        RETURNING id, buyer_id, product_id, tier, custom_grams, created_at, updated_at
    `
	var s models.SampleRequest
	err := db.Pool.QueryRow(ctx, query, sampleID, buyerID, req.Tier, req.CustomGrams).Scan(
		&s.ID, &s.BuyerID, &s.ProductID, &s.Tier, &s.CustomGrams, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update sample request: %w", err)
	}
	return &s, nil
}

// RemoveSampleRequest deletes a sample request, scoped to the buyer
func (db *Database) RemoveSampleRequest(ctx context.Context, buyerID, sampleID string) error {
	result, err := db.Pool.Exec(ctx,
		`DELETE FROM sample_requests WHERE id = $1 AND buyer_id = $2`, sampleID, buyerID)
	if err != nil {
		return fmt.Errorf("failed to remove sample request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
