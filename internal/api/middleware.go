package api

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// SessionCookieName is the cookie the storefront sends with
// credentials: include. A Bearer header takes precedence when both are
// present.
const SessionCookieName = "spicelink_session"

// tokenFromRequest extracts the JWT from the Authorization header or
// the session cookie
func tokenFromRequest(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return "", false
		}
		return tokenParts[1], true
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	c.Set("user_id", claims["user_id"])
	c.Set("email", claims["email"])
	if r, ok := claims["role"].(string); ok {
		c.Set("role", r)
	}
}

// OptionalAuthMiddleware parses the token if present and sets claims
// into context. It never rejects the request; use the role middlewares
// on protected routes.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			c.Next()
			return
		}
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			c.Next()
			return
		}
		if claims, err := parseToken(tokenString, secret); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// AuthMiddleware enforces a valid JWT from either transport
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "Authorization required",
				Message: "Provide a Bearer token or a session cookie",
			})
			c.Abort()
			return
		}
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Printf("[AuthMiddleware] JWT_SECRET not set")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Server not configured",
				Message: "JWT secret missing",
			})
			c.Abort()
			return
		}
		claims, err := parseToken(tokenString, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "Invalid token",
				Message: "The provided token is invalid or expired",
			})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// SellerMiddleware requires the Seller role
func SellerMiddleware() gin.HandlerFunc {
	return requireRole(string(models.RoleSeller))
}

// AdminMiddleware requires strict Admin role for moderation endpoints
func AdminMiddleware() gin.HandlerFunc {
	return requireRole(string(models.RoleAdmin))
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		haveVal, exists := c.Get("role")
		have, _ := haveVal.(string)
		if !exists || have != role {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Error:   role + " access required",
				Message: "Your account does not have access to this resource",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts the user ID from the JWT claims in context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}
