package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// ErrDuplicateEmail is returned when a signup email is already registered
var ErrDuplicateEmail = errors.New("email already registered")

// CreateUser inserts a new account. Seller accounts also get their
// empty profile row so the edit flow has something to load into.
func (db *Database) CreateUser(ctx context.Context, email, passwordHash, fullName string, role models.UserRole, companyName string) (*models.User, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user := models.User{
		ID:       uuid.New().String(),
		Email:    email,
		Role:     role,
		FullName: fullName,
	}
	query := `
        INSERT INTO users (user_id, email, password_hash, role, full_name)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at
    `
	err = tx.QueryRow(ctx, query, user.ID, email, passwordHash, role, fullName).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	if role == models.RoleSeller {
		_, err = tx.Exec(ctx,
			`INSERT INTO sellers (seller_id, full_name, company_name, email) VALUES ($1, $2, $3, $4)`,
			user.ID, fullName, companyName, email)
		if err != nil {
			return nil, fmt.Errorf("failed to create seller profile: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &user, nil
}

// GetUserByEmail fetches an account by email for login
func (db *Database) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
        SELECT user_id, email, password_hash, role, full_name, created_at, last_login
        FROM users
        WHERE email = $1
    `
	var u models.User
	err := db.Pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FullName, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// TouchLastLogin records a successful login
func (db *Database) TouchLastLogin(ctx context.Context, userID string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}
