package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// GetCartLines returns a buyer's cart lines with the product populated
func (db *Database) GetCartLines(ctx context.Context, buyerID string) ([]models.CartLine, error) {
	query := `
        SELECT c.id, c.buyer_id, c.product_id, c.weight_kg, c.price_per_kg,
               c.created_at, c.updated_at,
               p.product_id, p.seller_id, p.name, p.category, p.description,
               p.price_per_kg, p.min_order_weight_kg, p.available_stock_kg,
               p.origin, p.is_active, p.created_at, p.updated_at
        FROM carts c
        JOIN products p ON p.product_id = c.product_id
        WHERE c.buyer_id = $1
        ORDER BY c.created_at
    `
	rows, err := db.Pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		var product models.Product
		err := rows.Scan(
			&line.ID, &line.BuyerID, &line.ProductID, &line.WeightKg, &line.PricePerKg,
			&line.CreatedAt, &line.UpdatedAt,
			&product.ID, &product.SellerID, &product.Name, &product.Category, &product.Description,
			&product.PricePerKg, &product.MinOrderWeightKg, &product.AvailableStockKg,
			&product.Origin, &product.IsActive, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		line.Product = &product
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart: %w", err)
	}
	return lines, nil
}

// GetCartLine fetches one cart line by ID, scoped to the buyer
func (db *Database) GetCartLine(ctx context.Context, buyerID, lineID string) (*models.CartLine, error) {
	query := `
        SELECT id, buyer_id, product_id, weight_kg, price_per_kg, created_at, updated_at
        FROM carts
        WHERE id = $1 AND buyer_id = $2
    `
	var line models.CartLine
	err := db.Pool.QueryRow(ctx, query, lineID, buyerID).Scan(
		&line.ID, &line.BuyerID, &line.ProductID, &line.WeightKg, &line.PricePerKg,
		&line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart line: %w", err)
	}
	return &line, nil
}

// GetCartWeightForProduct returns the weight already in the buyer's
// cart for a product, or 0 when the cart has no line for it
func (db *Database) GetCartWeightForProduct(ctx context.Context, buyerID, productID string) (float64, error) {
	var weight float64
	err := db.Pool.QueryRow(ctx,
		`SELECT weight_kg FROM carts WHERE buyer_id = $1 AND product_id = $2`,
		buyerID, productID).Scan(&weight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get cart weight: %w", err)
	}
	return weight, nil
}

// UpsertCartLine adds a product to the cart, or adds the weight onto an
// existing line for the same product
func (db *Database) UpsertCartLine(ctx context.Context, buyerID, productID string, weightKg, pricePerKg float64) error {
	query := `
        INSERT INTO carts (id, buyer_id, product_id, weight_kg, price_per_kg)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (buyer_id, product_id)
        DO UPDATE SET weight_kg = carts.weight_kg + EXCLUDED.weight_kg,
                      updated_at = CURRENT_TIMESTAMP
    `
	_, err := db.Pool.Exec(ctx, query, uuid.New().String(), buyerID, productID, weightKg, pricePerKg)
	if err != nil {
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}
	return nil
}

// UpdateCartLineWeight sets the weight of an existing cart line
func (db *Database) UpdateCartLineWeight(ctx context.Context, buyerID, lineID string, weightKg float64) (*models.CartLine, error) {
	query := `
        UPDATE carts
        SET weight_kg = $3, updated_at = CURRENT_TIMESTAMP
        WHERE id = $1 AND buyer_id = $2
        RETURNING id, buyer_id, product_id, weight_kg, price_per_kg, created_at, updated_at
    `
	var line models.CartLine
	err := db.Pool.QueryRow(ctx, query, lineID, buyerID, weightKg).Scan(
		&line.ID, &line.BuyerID, &line.ProductID, &line.WeightKg, &line.PricePerKg,
		&line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}
	return &line, nil
}

// RemoveCartLine deletes a cart line, scoped to the buyer
func (db *Database) RemoveCartLine(ctx context.Context, buyerID, lineID string) error {
	result, err := db.Pool.Exec(ctx,
		`DELETE FROM carts WHERE id = $1 AND buyer_id = $2`, lineID, buyerID)
	if err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearCart removes every line in a buyer's cart (used at checkout)
func (db *Database) ClearCart(ctx context.Context, buyerID string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM carts WHERE buyer_id = $1`, buyerID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
