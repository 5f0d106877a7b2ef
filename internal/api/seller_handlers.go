package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/cache"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/db"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/profile"
	"github.com/spicelink/spicelink/backend/marketplace-service/internal/storage"
)

// GetOwnProfile handles GET /seller/profile. The response is wrapped in
// the {source,data} envelope so the storefront can tell cache hits from
// fresh reads.
func (h *Handler) GetOwnProfile(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "seller:profile:" + sellerID
	value, source, err := h.cache.GetOrLoad(ctx, key, []string{cache.TagSeller}, func(ctx context.Context) (interface{}, error) {
		p, err := h.db.GetSellerProfile(ctx, sellerID)
		if err != nil {
			return nil, err
		}
		return models.ProfileResponse{
			Profile:       *p,
			Completion:    profile.CalculateProgress(p),
			MissingFields: profile.MissingFields(p),
		}, nil
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "No profile data found",
				Message: "Create your seller profile to get started",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load profile",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, cache.Envelope{Source: source, Data: value})
}

func validateBasicInfo(req models.UpdateBasicInfoRequest) error {
	switch {
	case strings.TrimSpace(req.FullName) == "":
		return fmt.Errorf("Full name is required")
	case strings.TrimSpace(req.CompanyName) == "":
		return fmt.Errorf("Company name is required")
	case strings.TrimSpace(req.Email) == "":
		return fmt.Errorf("Email is required")
	case strings.TrimSpace(req.Mobile) == "":
		return fmt.Errorf("Mobile number is required")
	case strings.TrimSpace(req.BusinessType) == "":
		return fmt.Errorf("Business type is required")
	case len(req.ProductCategories) == 0:
		return fmt.Errorf("Select at least one product category")
	}
	return nil
}

// stagedLogo pulls an optional logo file out of a multipart request.
// Returns nil when the request is plain JSON or carries no file.
func stagedLogo(c *gin.Context) (*multipart.FileHeader, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}
	fileHeader, err := c.FormFile("businessLogo")
	if err != nil {
		// Multipart saves without a staged file are valid
		return nil, nil
	}
	if fileHeader.Size > 10*1024*1024 {
		return nil, fmt.Errorf("File size exceeds 10MB limit")
	}
	return fileHeader, nil
}

func validateImageType(file multipart.File) error {
	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	file.Seek(0, 0)
	if !allowedTypes[http.DetectContentType(buffer)] {
		return fmt.Errorf("Invalid file type. Only images are allowed")
	}
	return nil
}

// uploadImage pushes a validated image to S3, falling back to local
// disk when AWS is not configured
func (h *Handler) uploadImage(ctx context.Context, keyPrefix string, fileHeader *multipart.FileHeader, file multipart.File) (string, error) {
	imageURL, err := h.uploader.UploadImage(ctx, keyPrefix, fileHeader, file)
	if err != nil {
		log.Printf("S3 upload failed, falling back to local storage: %v", err)
		imageURL, err = storage.UploadToLocal(keyPrefix, fileHeader, file)
		if err != nil {
			return "", err
		}
	}
	return imageURL, nil
}

// UpdateBasicInfo handles PUT /seller/profile/basic (section 1). The
// request is JSON, or multipart form data when a new logo file is
// staged; a staged file wins over the resent URL string.
func (h *Handler) UpdateBasicInfo(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	var req models.UpdateBasicInfoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	if err := validateBasicInfo(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	fileHeader, err := stagedLogo(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid logo file",
			Message: err.Error(),
		})
		return
	}
	if fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to open uploaded file",
				Message: err.Error(),
			})
			return
		}
		defer file.Close()

		if err := validateImageType(file); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid logo file",
				Message: err.Error(),
			})
			return
		}

		imageURL, err := h.uploadImage(ctx, "sellers/"+sellerID+"/logo", fileHeader, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Failed to upload logo",
				Message: err.Error(),
			})
			return
		}
		req.BusinessLogo = imageURL
	}

	if err := h.db.UpdateBasicInfo(ctx, sellerID, req); err != nil {
		h.respondProfileUpdateError(c, err)
		return
	}

	h.cache.Invalidate(cache.TagSeller)
	h.respondWithProfile(c, sellerID, "Basic info saved")
}

// UpdateAddresses handles PUT /seller/profile/address (section 2)
func (h *Handler) UpdateAddresses(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	var req models.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.BusinessAddress.Street) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Validation failed",
			Message: "Street address is required",
		})
		return
	}

	if req.WarehouseAddress.SameAsBusiness {
		req.WarehouseAddress.Address = req.BusinessAddress
		req.WarehouseAddress.SameAsBusiness = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.db.UpdateAddresses(ctx, sellerID, req); err != nil {
		h.respondProfileUpdateError(c, err)
		return
	}

	h.cache.Invalidate(cache.TagSeller)
	h.respondWithProfile(c, sellerID, "Address saved")
}

// UpdateLogistics handles PUT /seller/profile/logistics (section 3)
func (h *Handler) UpdateLogistics(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	var req models.UpdateLogisticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	if req.ShippingType != "" && !models.ShippingType(req.ShippingType).IsValid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid shipping type",
			Message: "Shipping type must be one of: AirCargo, SeaFreight, ExpressCourier, LandTransport",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.db.UpdateLogistics(ctx, sellerID, req); err != nil {
		h.respondProfileUpdateError(c, err)
		return
	}

	h.cache.Invalidate(cache.TagSeller)
	h.respondWithProfile(c, sellerID, "Shipping & logistics saved")
}

// UpdateSocialLinks handles PUT /seller/profile/social (section 4).
// Social links are never required and never validated field-by-field.
func (h *Handler) UpdateSocialLinks(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	var req models.UpdateSocialLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.db.UpdateSocialLinks(ctx, sellerID, req); err != nil {
		h.respondProfileUpdateError(c, err)
		return
	}

	h.cache.Invalidate(cache.TagSeller)
	h.respondWithProfile(c, sellerID, "Social links saved")
}

// UpdateFullProfile handles PUT /seller/profile, the single-shot submit
// path that sends every section at once
func (h *Handler) UpdateFullProfile(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	var req models.FullProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
		})
		return
	}

	if err := validateBasicInfo(req.UpdateBasicInfoRequest); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}
	if req.ShippingType != "" && !models.ShippingType(req.ShippingType).IsValid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid shipping type",
			Message: "Shipping type must be one of: AirCargo, SeaFreight, ExpressCourier, LandTransport",
		})
		return
	}

	if req.WarehouseAddress.SameAsBusiness {
		req.WarehouseAddress.Address = req.BusinessAddress
		req.WarehouseAddress.SameAsBusiness = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.db.UpdateFullProfile(ctx, sellerID, req); err != nil {
		h.respondProfileUpdateError(c, err)
		return
	}

	h.cache.Invalidate(cache.TagSeller)
	h.respondWithProfile(c, sellerID, "Profile saved")
}

// RemoveLogo handles DELETE /seller/profile/logo: clears the staged
// logo URL so the profile renders without one
func (h *Handler) RemoveLogo(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.db.UpdateBusinessLogo(ctx, sellerID, ""); err != nil {
		h.respondProfileUpdateError(c, err)
		return
	}

	h.cache.Invalidate(cache.TagSeller)
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "Logo removed"})
}

// Dashboard handles GET /seller/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	sellerID, ok := GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "Invalid user",
			Message: "Could not extract user ID from token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, orders, pending, revenue, err := h.db.GetSellerStats(ctx, sellerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load dashboard",
			Message: err.Error(),
		})
		return
	}

	p, err := h.db.GetSellerProfile(ctx, sellerID)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load dashboard",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.DashboardResponse{
		ProductCount:      products,
		OrderCount:        orders,
		PendingOrders:     pending,
		TotalRevenue:      revenue,
		ProfileCompletion: profile.CalculateProgress(p),
	})
}

// respondWithProfile returns the freshly persisted profile with its
// recomputed completion score after a successful section save
func (h *Handler) respondWithProfile(c *gin.Context, sellerID, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := h.db.GetSellerProfile(ctx, sellerID)
	if err != nil {
		// The save succeeded; report that even if the re-read failed
		log.Printf("[SellerProfile] re-read after save failed for %s: %v", sellerID, err)
		c.JSON(http.StatusOK, models.SuccessResponse{Message: message})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: message,
		Data: models.ProfileResponse{
			Profile:       *p,
			Completion:    profile.CalculateProgress(p),
			MissingFields: profile.MissingFields(p),
		},
	})
}

func (h *Handler) respondProfileUpdateError(c *gin.Context, err error) {
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "No profile data found",
			Message: "Create your seller profile to get started",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "Failed to save profile",
		Message: err.Error(),
	})
}
