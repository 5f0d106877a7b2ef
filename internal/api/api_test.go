package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// setGinTestMode ensures Gin does not write noisy logs during tests
func setGinTestMode() { gin.SetMode(gin.TestMode) }

func secureRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/secure", func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestLiveEndpoint(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	r.GET("/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	setGinTestMode()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	w := httptest.NewRecorder()
	secureRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing token, got %d", w.Code)
	}
}

func TestAuthMiddleware_RejectsMalformedHeader(t *testing.T) {
	setGinTestMode()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	secureRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-Bearer header, got %d", w.Code)
	}
}

func TestAuthMiddleware_AcceptsBearerToken(t *testing.T) {
	setGinTestMode()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := generateJWTToken("seller-1", "asha@malabarspice.example", string(models.RoleSeller))
	if err != nil {
		t.Fatalf("generateJWTToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	secureRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid Bearer token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddleware_AcceptsSessionCookie(t *testing.T) {
	setGinTestMode()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := generateJWTToken("buyer-1", "buyer@example.com", string(models.RoleBuyer))
	if err != nil {
		t.Fatalf("generateJWTToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	secureRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid session cookie, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddleware_RejectsTokenSignedWithWrongSecret(t *testing.T) {
	setGinTestMode()
	os.Setenv("JWT_SECRET", "other-secret")
	token, err := generateJWTToken("buyer-1", "buyer@example.com", string(models.RoleBuyer))
	if err != nil {
		t.Fatalf("generateJWTToken: %v", err)
	}
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	secureRouter().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong-secret token, got %d", w.Code)
	}
}

func TestSellerMiddleware_ForbidsBuyerRole(t *testing.T) {
	setGinTestMode()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := generateJWTToken("buyer-1", "buyer@example.com", string(models.RoleBuyer))
	if err != nil {
		t.Fatalf("generateJWTToken: %v", err)
	}

	r := gin.New()
	r.Use(AuthMiddleware(), SellerMiddleware())
	r.GET("/seller/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	req := httptest.NewRequest(http.MethodGet, "/seller/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for buyer on seller route, got %d", w.Code)
	}
}

func TestAdminMiddleware_ForbidsSellerRole(t *testing.T) {
	setGinTestMode()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := generateJWTToken("seller-1", "asha@malabarspice.example", string(models.RoleSeller))
	if err != nil {
		t.Fatalf("generateJWTToken: %v", err)
	}

	r := gin.New()
	r.Use(AuthMiddleware(), AdminMiddleware())
	r.GET("/admin/orders", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for seller on admin route, got %d", w.Code)
	}
}

func TestValidateCartAdd_CombinedWeightBoundedByStock(t *testing.T) {
	// A second add accumulates onto the existing line, so 60 + 60
	// against 100 kg of stock must be rejected
	if err := validateCartAdd(60, 60, 1, 100); err == nil || err.Error() != "Only 100 kg available in stock" {
		t.Fatalf("expected stock error for accumulated weight, got %v", err)
	}
	if err := validateCartAdd(0, 60, 1, 100); err != nil {
		t.Fatalf("expected first add to pass, got %v", err)
	}
	if err := validateCartAdd(95, 5, 1, 100); err != nil {
		t.Fatalf("expected add filling remaining stock to pass, got %v", err)
	}
	if err := validateCartAdd(50, 0, 1, 100); err == nil || err.Error() != "Please enter a valid weight" {
		t.Fatalf("expected invalid-weight error for zero increment, got %v", err)
	}
	if err := validateCartAdd(0, 0.5, 1, 100); err == nil || err.Error() != "Minimum order weight is 1 kg" {
		t.Fatalf("expected minimum-order error, got %v", err)
	}
	// Topping up an existing line past the minimum is fine even when
	// the increment alone is below it
	if err := validateCartAdd(2, 0.5, 1, 100); err != nil {
		t.Fatalf("expected top-up above minimum to pass, got %v", err)
	}
}

func TestSetSessionCookie_MaxAgeTracksTokenExpiry(t *testing.T) {
	setGinTestMode()
	os.Setenv("JWT_EXPIRATION_HOURS", "48")
	os.Setenv("COOKIE_SECURE", "false")
	defer os.Unsetenv("JWT_EXPIRATION_HOURS")
	defer os.Unsetenv("COOKIE_SECURE")

	r := gin.New()
	r.POST("/login", func(c *gin.Context) {
		setSessionCookie(c, "token-value")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	cookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "Max-Age=172800") {
		t.Fatalf("expected cookie Max-Age to follow the 48h token expiry, got %q", cookie)
	}
}

func TestValidateBasicInfo_FirstMissingFieldWins(t *testing.T) {
	req := models.UpdateBasicInfoRequest{}
	if err := validateBasicInfo(req); err == nil || err.Error() != "Full name is required" {
		t.Fatalf("expected full-name error first, got %v", err)
	}

	req.FullName = "Asha Nair"
	req.CompanyName = "Malabar Spice Exports"
	if err := validateBasicInfo(req); err == nil || err.Error() != "Email is required" {
		t.Fatalf("expected email error, got %v", err)
	}

	req.Email = "asha@malabarspice.example"
	req.Mobile = "+91 98470 11223"
	req.BusinessType = "Exporter"
	if err := validateBasicInfo(req); err == nil || err.Error() != "Select at least one product category" {
		t.Fatalf("expected category error, got %v", err)
	}

	req.ProductCategories = []string{"Cardamom"}
	if err := validateBasicInfo(req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}
