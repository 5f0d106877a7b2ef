package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/api"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/cache"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/db"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/logging"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/metrics"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Ensure all log output goes to stdout so the platform captures it
	log.SetOutput(os.Stdout)

	log.Printf("Marketplace Service starting (GIT_SHA=%s BUILD_TIME=%s)", os.Getenv("GIT_SHA"), os.Getenv("BUILD_TIME"))

	// Initialize database connection (non-fatal; allow process to start for /live)
	database, err := db.NewDatabase()
	if err != nil {
		log.Printf("[WARN] Database initialization failed at startup: %v", err)
	}
	if database != nil {
		defer database.Close()
	}

	uploader, err := storage.NewUploader(context.Background())
	if err != nil {
		log.Printf("[WARN] S3 uploader initialization failed: %v", err)
	}

	store := cache.New(5 * time.Minute)

	// Initialize handlers
	handler := api.NewHandler(database, store, uploader)

	// Set up Gin router
	router := setupRouter(handler)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Set up graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

func setupRouter(handler *api.Handler) *gin.Engine {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(logging.RequestID())
	router.Use(logging.JSONLogger())
	router.Use(metrics.Middleware())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Serve uploaded files for local development
	router.Static("/uploads", "./uploads")

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)
	router.GET("/metrics", metrics.Handler())

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Parse JWT if present to expose role info for public reads
		v1.Use(api.OptionalAuthMiddleware())

		// Authentication
		auth := v1.Group("/auth")
		{
			auth.POST("/seller/signup", handler.SellerSignup)
			auth.POST("/buyer/login", handler.BuyerLogin)
			auth.POST("/seller/login", handler.SellerLogin)
			auth.POST("/admin/login", handler.AdminLogin)
			auth.POST("/logout", handler.Logout)
		}

		// Public seller storefront
		v1.GET("/sellers/:id", handler.GetPublicSeller)

		// Buyer scoped (authenticated)
		buyer := v1.Group("/buyer")
		buyer.Use(api.AuthMiddleware())
		{
			buyer.GET("/cart", handler.GetCart)
			buyer.POST("/cart", handler.AddToCart)
			buyer.PUT("/cart/:id", handler.UpdateCartLine)
			buyer.DELETE("/cart/:id", handler.RemoveCartLine)

			buyer.GET("/samples", handler.GetSamples)
			buyer.POST("/samples", handler.CreateSample)
			buyer.PUT("/samples/:id", handler.UpdateSample)
			buyer.DELETE("/samples/:id", handler.RemoveSample)

			buyer.POST("/orders", handler.CreateOrder)
			buyer.GET("/orders", handler.GetOrders)
			buyer.GET("/orders/:id", handler.GetOrderDetail)
		}

		// Seller scoped (authenticated, Seller role)
		seller := v1.Group("/seller")
		seller.Use(api.AuthMiddleware(), api.SellerMiddleware())
		{
			seller.GET("/profile", handler.GetOwnProfile)
			seller.PUT("/profile", handler.UpdateFullProfile)
			seller.PUT("/profile/basic", handler.UpdateBasicInfo)
			seller.PUT("/profile/address", handler.UpdateAddresses)
			seller.PUT("/profile/logistics", handler.UpdateLogistics)
			seller.PUT("/profile/social", handler.UpdateSocialLinks)
			seller.DELETE("/profile/logo", handler.RemoveLogo)

			seller.GET("/dashboard", handler.Dashboard)

			seller.POST("/store-photos", handler.AddStorePhoto)
			seller.DELETE("/store-photos/:id", handler.RemoveStorePhoto)
		}

		// Admin scoped (authenticated, Admin role)
		admin := v1.Group("/admin")
		admin.Use(api.AuthMiddleware(), api.AdminMiddleware())
		{
			admin.GET("/orders", handler.AdminListOrders)
			admin.PUT("/orders/:id/status", handler.AdminUpdateOrderStatus)
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "marketplace-service",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}

// corsMiddleware adds CORS headers so the storefront can call from the
// browser with credentials
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := os.Getenv("CORS_ALLOW_ORIGIN")
		if origin == "" {
			origin = "http://localhost:3000"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
