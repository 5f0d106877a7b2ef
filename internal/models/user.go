package models

import (
	"time"
)

// UserRole distinguishes the three account domains
type UserRole string

const (
	RoleBuyer  UserRole = "Buyer"
	RoleSeller UserRole = "Seller"
	RoleAdmin  UserRole = "Admin"
)

// ValidateUserRole checks if a role string is a known role
func ValidateUserRole(role string) bool {
	switch UserRole(role) {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents an authenticated account (buyer, seller or admin)
type User struct {
	ID           string    `json:"id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	FullName     string    `json:"full_name" db:"full_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
}

// SignupRequest registers a new seller account and creates its empty profile
type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	CompanyName string `json:"company_name"`
}

// LoginRequest authenticates an existing account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token alongside the account
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
