// Package pricing owns the cart arithmetic. All intermediate math runs
// on shopspring decimals so the 8% tax rounding is exact regardless of
// how the line weights divide.
package pricing

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

var (
	taxRate           = decimal.NewFromFloat(0.08)
	freeShippingAbove = decimal.NewFromInt(100)
	flatShippingFee   = decimal.NewFromInt(15)
)

// Totals derives subtotal, shipping, tax and total for a set of cart
// lines: subtotal = Σ(price_per_kg × weight_kg), shipping is waived at
// a subtotal of 100 and flat 15 below it, tax is 8% of the subtotal
// rounded to 2 decimals.
func Totals(lines []models.CartLine) models.CartTotals {
	subtotal := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromFloat(line.PricePerKg)
		weight := decimal.NewFromFloat(line.WeightKg)
		subtotal = subtotal.Add(price.Mul(weight))
	}
	subtotal = subtotal.Round(2)

	shipping := flatShippingFee
	if subtotal.GreaterThanOrEqual(freeShippingAbove) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax)

	return models.CartTotals{
		Subtotal: subtotal.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidateWeight checks a requested cart-line weight against the
// product's order bounds. Each violated bound gets its own message so
// the storefront can surface the specific problem.
func ValidateWeight(weightKg, minOrderWeightKg, availableStockKg float64) error {
	if weightKg <= 0 {
		return fmt.Errorf("Please enter a valid weight")
	}
	if weightKg < minOrderWeightKg {
		return fmt.Errorf("Minimum order weight is %s kg", formatKg(minOrderWeightKg))
	}
	if weightKg > availableStockKg {
		return fmt.Errorf("Only %s kg available in stock", formatKg(availableStockKg))
	}
	return nil
}

// ValidateSampleTier checks a sample tier selection. Custom tiers carry
// their own weight, capped at MaxCustomSampleGrams.
func ValidateSampleTier(tier models.SampleTier, customGrams int) error {
	if !tier.IsValid() {
		return fmt.Errorf("Sample tier must be one of: 50g, 100g, 250g, custom")
	}
	if tier == models.SampleTierCustom {
		if customGrams <= 0 {
			return fmt.Errorf("Please enter a valid sample weight")
		}
		if customGrams > models.MaxCustomSampleGrams {
			return fmt.Errorf("Custom samples are limited to %d g", models.MaxCustomSampleGrams)
		}
	}
	return nil
}
