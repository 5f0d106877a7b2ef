// Package profile derives the completion score and the missing-field
// prompts for a seller profile from a single declarative field list,
// so the two can never drift apart.
package profile

import (
	"math"
	"strings"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

// descriptor ties a scored field to its user-facing prompt
type descriptor struct {
	prompt string
	filled func(p *models.SellerProfile) bool
}

func nonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// scoredFields is the fixed list of the 13 fields that count toward
// completion: 6 basic-info fields, 2 about/logo fields, and the 5
// business-address fields. Warehouse address, shipping & logistics,
// and social links are stored but intentionally never scored, keeping
// the denominator stable as the profile grows elsewhere.
var scoredFields = []descriptor{
	{"Full name", func(p *models.SellerProfile) bool { return nonBlank(p.FullName) }},
	{"Company name", func(p *models.SellerProfile) bool { return nonBlank(p.CompanyName) }},
	{"Email address", func(p *models.SellerProfile) bool { return nonBlank(p.Email) }},
	{"Mobile number", func(p *models.SellerProfile) bool { return nonBlank(p.Mobile) }},
	{"Business type", func(p *models.SellerProfile) bool { return nonBlank(p.BusinessType) }},
	{"Product categories", func(p *models.SellerProfile) bool { return len(p.ProductCategories) > 0 }},
	{"About your business", func(p *models.SellerProfile) bool { return nonBlank(p.About) }},
	{"Business logo", func(p *models.SellerProfile) bool { return nonBlank(p.BusinessLogo) }},
	{"Business address: street", func(p *models.SellerProfile) bool { return nonBlank(p.BusinessAddress.Street) }},
	{"Business address: city", func(p *models.SellerProfile) bool { return nonBlank(p.BusinessAddress.City) }},
	{"Business address: state", func(p *models.SellerProfile) bool { return nonBlank(p.BusinessAddress.State) }},
	{"Business address: country", func(p *models.SellerProfile) bool { return nonBlank(p.BusinessAddress.Country) }},
	{"Business address: PIN code", func(p *models.SellerProfile) bool { return nonBlank(p.BusinessAddress.PinCode) }},
}

// CalculateProgress returns the completion percentage in [0,100] as
// round(100 * filled / 13). A nil profile scores 0.
func CalculateProgress(p *models.SellerProfile) int {
	if p == nil {
		return 0
	}
	filled := 0
	for _, d := range scoredFields {
		if d.filled(p) {
			filled++
		}
	}
	return int(math.Round(float64(filled) * 100 / float64(len(scoredFields))))
}

// MissingFields returns one bullet-prefixed prompt per unmet scored
// field, in the same fixed order the scorer uses. A nil profile yields
// the full prompt list.
func MissingFields(p *models.SellerProfile) []string {
	missing := []string{}
	for _, d := range scoredFields {
		if p == nil || !d.filled(p) {
			missing = append(missing, "• "+d.prompt)
		}
	}
	return missing
}
