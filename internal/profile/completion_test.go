package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

func fullProfile() *models.SellerProfile {
	return &models.SellerProfile{
		FullName:          "Asha Nair",
		CompanyName:       "Malabar Spice Exports",
		Email:             "asha@malabarspice.example",
		Mobile:            "+91 98470 11223",
		BusinessType:      "Exporter",
		ProductCategories: []string{"Cardamom", "Black Pepper"},
		About:             "Third-generation cardamom growers in Idukki.",
		BusinessLogo:      "https://assets.spicelink.com/sellers/1/logo.png",
		BusinessAddress: models.Address{
			Street:  "14 Spice Market Road",
			City:    "Kochi",
			State:   "Kerala",
			Country: "India",
			PinCode: "682001",
		},
	}
}

func TestCalculateProgress_EmptyProfile(t *testing.T) {
	assert.Equal(t, 0, CalculateProgress(&models.SellerProfile{}))
}

func TestCalculateProgress_NilProfile(t *testing.T) {
	assert.Equal(t, 0, CalculateProgress(nil))
	assert.Len(t, MissingFields(nil), 13)
}

func TestCalculateProgress_FullProfile(t *testing.T) {
	p := fullProfile()
	assert.Equal(t, 100, CalculateProgress(p))
	assert.Empty(t, MissingFields(p))
}

func TestCalculateProgress_RemovingAnyScoredFieldDecreasesScore(t *testing.T) {
	clearers := map[string]func(p *models.SellerProfile){
		"full name":   func(p *models.SellerProfile) { p.FullName = "" },
		"company":     func(p *models.SellerProfile) { p.CompanyName = "" },
		"email":       func(p *models.SellerProfile) { p.Email = "" },
		"mobile":      func(p *models.SellerProfile) { p.Mobile = "" },
		"biz type":    func(p *models.SellerProfile) { p.BusinessType = "" },
		"categories":  func(p *models.SellerProfile) { p.ProductCategories = nil },
		"about":       func(p *models.SellerProfile) { p.About = "" },
		"logo":        func(p *models.SellerProfile) { p.BusinessLogo = "" },
		"street":      func(p *models.SellerProfile) { p.BusinessAddress.Street = "" },
		"city":        func(p *models.SellerProfile) { p.BusinessAddress.City = "" },
		"state":       func(p *models.SellerProfile) { p.BusinessAddress.State = "" },
		"country":     func(p *models.SellerProfile) { p.BusinessAddress.Country = "" },
		"pin code":    func(p *models.SellerProfile) { p.BusinessAddress.PinCode = "" },
	}
	require.Len(t, clearers, 13)

	for name, clear := range clearers {
		p := fullProfile()
		clear(p)
		assert.Less(t, CalculateProgress(p), 100, "clearing %s should lower the score", name)
		assert.Len(t, MissingFields(p), 1, "clearing %s should leave one prompt", name)
	}
}

func TestCalculateProgress_IgnoresUnscoredFields(t *testing.T) {
	p := fullProfile()
	before := CalculateProgress(p)

	p.WarehouseAddress = models.WarehouseAddress{
		Address: models.Address{
			Street:  "Warehouse Lane 3",
			City:    "Kochi",
			State:   "Kerala",
			Country: "India",
			PinCode: "682002",
		},
		SameAsBusiness: false,
	}
	p.ShippingType = string(models.ShippingTypeSeaFreight)
	p.ServiceAreas = []string{"EU", "Middle East"}
	p.ReturnPolicy = "Returns accepted within 14 days of delivery."
	p.SocialLinks = models.SocialLinks{
		Website:   "https://malabarspice.example",
		LinkedIn:  "malabar-spice",
		Instagram: "@malabarspice",
		Facebook:  "malabarspice",
	}

	assert.Equal(t, before, CalculateProgress(p))

	// And clearing them must not change the score either
	empty := &models.SellerProfile{ShippingType: string(models.ShippingTypeAirCargo)}
	assert.Equal(t, 0, CalculateProgress(empty))
}

func TestCalculateProgress_Rounding(t *testing.T) {
	p := &models.SellerProfile{FullName: "Asha Nair"}
	// 1/13 → 7.69 → 8
	assert.Equal(t, 8, CalculateProgress(p))

	p = &models.SellerProfile{
		FullName:          "Asha Nair",
		CompanyName:       "Malabar Spice Exports",
		Email:             "asha@malabarspice.example",
		Mobile:            "+91 98470 11223",
		BusinessType:      "Exporter",
		ProductCategories: []string{"Cardamom"},
		About:             "Growers.",
	}
	// 7/13 → 53.85 → 54
	assert.Equal(t, 54, CalculateProgress(p))
}

func TestCalculateProgress_BlankStringsDoNotCount(t *testing.T) {
	p := fullProfile()
	p.About = "   "
	assert.Equal(t, 92, CalculateProgress(p)) // 12/13 → 92.3 → 92
	assert.Equal(t, []string{"• About your business"}, MissingFields(p))
}

func TestMissingFields_OrderMatchesScorer(t *testing.T) {
	got := MissingFields(&models.SellerProfile{})
	want := []string{
		"• Full name",
		"• Company name",
		"• Email address",
		"• Mobile number",
		"• Business type",
		"• Product categories",
		"• About your business",
		"• Business logo",
		"• Business address: street",
		"• Business address: city",
		"• Business address: state",
		"• Business address: country",
		"• Business address: PIN code",
	}
	assert.Equal(t, want, got)
}
