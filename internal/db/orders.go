package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// CreateOrder places an order from the given cart lines with the totals
// snapshotted at checkout, then clears the cart. Everything runs in one
// transaction so a failed insert leaves the cart untouched.
func (db *Database) CreateOrder(ctx context.Context, buyerID string, lines []models.CartLine, totals models.CartTotals) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := models.Order{
		ID:       uuid.New().String(),
		BuyerID:  buyerID,
		Subtotal: totals.Subtotal,
		Shipping: totals.Shipping,
		Tax:      totals.Tax,
		Total:    totals.Total,
		Status:   models.OrderStatusPending,
	}

	query := `
        INSERT INTO orders (id, buyer_id, subtotal, shipping, tax, total, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at
    `
	err = tx.QueryRow(ctx, query,
		order.ID, order.BuyerID, order.Subtotal, order.Shipping, order.Tax, order.Total, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range lines {
		item := models.OrderItem{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			ProductID:  line.ProductID,
			WeightKg:   line.WeightKg,
			PricePerKg: line.PricePerKg,
			LineTotal:  line.PricePerKg * line.WeightKg,
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, weight_kg, price_per_kg, line_total)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.OrderID, item.ProductID, item.WeightKg, item.PricePerKg, item.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE buyer_id = $1`, buyerID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &order, nil
}

// GetOrders lists a buyer's orders, newest first, without items
func (db *Database) GetOrders(ctx context.Context, buyerID string) ([]models.Order, error) {
	query := `
        SELECT id, buyer_id, subtotal, shipping, tax, total, status, created_at, updated_at
        FROM orders
        WHERE buyer_id = $1
        ORDER BY created_at DESC
    `
	rows, err := db.Pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.BuyerID, &o.Subtotal, &o.Shipping, &o.Tax, &o.Total,
			&o.Status, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetAllOrders lists every order across buyers, newest first, for the
// admin view
func (db *Database) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	query := `
        SELECT id, buyer_id, subtotal, shipping, tax, total, status, created_at, updated_at
        FROM orders
        ORDER BY created_at DESC
    `
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.BuyerID, &o.Subtotal, &o.Shipping, &o.Tax, &o.Total,
			&o.Status, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateOrderStatus moves an order to a new status
func (db *Database) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	result, err := db.Pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOrderDetail fetches one order with its items and their products
func (db *Database) GetOrderDetail(ctx context.Context, buyerID, orderID string) (*models.Order, error) {
	query := `
        SELECT id, buyer_id, subtotal, shipping, tax, total, status, created_at, updated_at
        FROM orders
        WHERE id = $1 AND buyer_id = $2
    `
	var o models.Order
	err := db.Pool.QueryRow(ctx, query, orderID, buyerID).Scan(
		&o.ID, &o.BuyerID, &o.Subtotal, &o.Shipping, &o.Tax, &o.Total,
		&o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	itemQuery := `
        SELECT oi.id, oi.order_id, oi.product_id, oi.weight_kg, oi.price_per_kg, oi.line_total,
               p.product_id, p.seller_id, p.name, p.category, p.description,
               p.price_per_kg, p.min_order_weight_kg, p.available_stock_kg,
               p.origin, p.is_active, p.created_at, p.updated_at
        FROM order_items oi
        JOIN products p ON p.product_id = oi.product_id
        WHERE oi.order_id = $1
    `
	rows, err := db.Pool.Query(ctx, itemQuery, o.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var product models.Product
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.WeightKg, &item.PricePerKg, &item.LineTotal,
			&product.ID, &product.SellerID, &product.Name, &product.Category, &product.Description,
			&product.PricePerKg, &product.MinOrderWeightKg, &product.AvailableStockKg,
			&product.Origin, &product.IsActive, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item.Product = &product
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return &o, nil
}
