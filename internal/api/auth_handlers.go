package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/cache"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/db"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// jwtExpirationHours is the shared token lifetime; the session cookie
// Max-Age is derived from the same value so the two expire together
func jwtExpirationHours() int {
	hours := 24
	if expStr := os.Getenv("JWT_EXPIRATION_HOURS"); expStr != "" {
		if exp, err := strconv.Atoi(expStr); err == nil && exp > 0 {
			hours = exp
		}
	}
	return hours
}

// generateJWTToken creates an HS256 token for the account
func generateJWTToken(userID, email, role string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	expirationHours := jwtExpirationHours()

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * time.Duration(expirationHours)).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// setSessionCookie attaches the token as the session cookie the
// storefront relies on (credentials: include)
func setSessionCookie(c *gin.Context, token string) {
	secure := os.Getenv("COOKIE_SECURE") != "false"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, jwtExpirationHours()*3600, "/", "", secure, true)
}

// SellerSignup handles POST /auth/seller/signup. A new seller gets an
// empty profile row that the edit flow fills in section by section.
func (h *Handler) SellerSignup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to process password",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := h.db.CreateUser(ctx, req.Email, string(hash), req.FullName, models.RoleSeller, req.CompanyName)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "Email already registered",
				Message: "An account with this email already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to create account",
			Message: err.Error(),
		})
		return
	}

	token, err := generateJWTToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to issue token",
			Message: err.Error(),
		})
		return
	}
	setSessionCookie(c, token)

	h.cache.Invalidate(cache.TagSeller)

	c.JSON(http.StatusCreated, models.LoginResponse{Token: token, User: *user})
}

// login is the shared login path; the role parameter restricts which
// accounts may use the endpoint
func (h *Handler) login(c *gin.Context, role models.UserRole) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := h.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		// Same response for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid credentials",
			Message: "Email or password is incorrect",
		})
		return
	}
	if user.Role != role {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid credentials",
			Message: "Email or password is incorrect",
		})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid credentials",
			Message: "Email or password is incorrect",
		})
		return
	}

	token, err := generateJWTToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to issue token",
			Message: err.Error(),
		})
		return
	}
	setSessionCookie(c, token)

	if err := h.db.TouchLastLogin(ctx, user.ID); err != nil {
		log.Printf("[Login] failed to record last login for %s: %v", user.ID, err)
	}

	// Authentication state affects every domain's cached reads
	h.cache.Invalidate(cache.TagBuyer, cache.TagSeller, cache.TagAdmin)

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: *user})
}

// BuyerLogin handles POST /auth/buyer/login
func (h *Handler) BuyerLogin(c *gin.Context) { h.login(c, models.RoleBuyer) }

// SellerLogin handles POST /auth/seller/login
func (h *Handler) SellerLogin(c *gin.Context) { h.login(c, models.RoleSeller) }

// AdminLogin handles POST /auth/admin/login
func (h *Handler) AdminLogin(c *gin.Context) { h.login(c, models.RoleAdmin) }

// Logout clears the session cookie and drops every account-scoped
// cached read
func (h *Handler) Logout(c *gin.Context) {
	secure := os.Getenv("COOKIE_SECURE") != "false"
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)

	h.cache.Invalidate(cache.TagBuyer, cache.TagSeller, cache.TagAdmin)

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Logged out"})
}
