package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spicelink/spicelink/backend/marketplace-service/internal/models"
)

func TestTotals_FreeShippingAboveThreshold(t *testing.T) {
	lines := []models.CartLine{
		{WeightKg: 5, PricePerKg: 450},
		{WeightKg: 2.5, PricePerKg: 280},
	}

	got := Totals(lines)

	assert.Equal(t, 2950.0, got.Subtotal) // 2250 + 700
	assert.Equal(t, 0.0, got.Shipping)
	assert.Equal(t, 236.0, got.Tax)
	assert.Equal(t, 3186.0, got.Total)
}

func TestTotals_FlatShippingBelowThreshold(t *testing.T) {
	lines := []models.CartLine{
		{WeightKg: 0.1, PricePerKg: 450},
	}

	got := Totals(lines)

	assert.Equal(t, 45.0, got.Subtotal)
	assert.Equal(t, 15.0, got.Shipping)
	assert.Equal(t, 3.6, got.Tax)
	assert.Equal(t, 63.6, got.Total)
}

func TestTotals_ThresholdBoundary(t *testing.T) {
	got := Totals([]models.CartLine{{WeightKg: 1, PricePerKg: 100}})
	assert.Equal(t, 100.0, got.Subtotal)
	assert.Equal(t, 0.0, got.Shipping)

	got = Totals([]models.CartLine{{WeightKg: 1, PricePerKg: 99.99}})
	assert.Equal(t, 99.99, got.Subtotal)
	assert.Equal(t, 15.0, got.Shipping)
}

func TestTotals_TaxRounding(t *testing.T) {
	// 10.01 × 0.08 = 0.8008, which must round to 0.80 exactly
	got := Totals([]models.CartLine{{WeightKg: 1, PricePerKg: 10.01}})
	assert.Equal(t, 0.8, got.Tax)

	// 3 × 0.1 × 12.5 would drift on float math; decimals keep it at 3.75
	got = Totals([]models.CartLine{
		{WeightKg: 0.1, PricePerKg: 12.5},
		{WeightKg: 0.1, PricePerKg: 12.5},
		{WeightKg: 0.1, PricePerKg: 12.5},
	})
	assert.Equal(t, 3.75, got.Subtotal)
	assert.Equal(t, 0.3, got.Tax)
}

func TestTotals_TotalIsSumOfParts(t *testing.T) {
	carts := [][]models.CartLine{
		{{WeightKg: 5, PricePerKg: 450}},
		{{WeightKg: 0.5, PricePerKg: 30}},
		{{WeightKg: 2, PricePerKg: 49.5}, {WeightKg: 1.25, PricePerKg: 88}},
	}
	for _, lines := range carts {
		got := Totals(lines)
		assert.InDelta(t, got.Subtotal+got.Shipping+got.Tax, got.Total, 1e-9)
	}
}

func TestValidateWeight(t *testing.T) {
	cases := []struct {
		name    string
		weight  float64
		wantErr string
	}{
		{"zero", 0, "Please enter a valid weight"},
		{"negative", -2, "Please enter a valid weight"},
		{"below minimum", 0.5, "Minimum order weight is 1 kg"},
		{"over stock", 150, "Only 100 kg available in stock"},
		{"at minimum", 1, ""},
		{"at stock", 100, ""},
		{"in range", 10, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWeight(tc.weight, 1, 100)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateWeight_FractionalMinimum(t *testing.T) {
	err := ValidateWeight(0.1, 0.25, 100)
	assert.EqualError(t, err, "Minimum order weight is 0.25 kg")
}

func TestValidateSampleTier(t *testing.T) {
	assert.NoError(t, ValidateSampleTier(models.SampleTier50g, 0))
	assert.NoError(t, ValidateSampleTier(models.SampleTier100g, 0))
	assert.NoError(t, ValidateSampleTier(models.SampleTier250g, 0))
	assert.NoError(t, ValidateSampleTier(models.SampleTierCustom, 500))

	assert.Error(t, ValidateSampleTier(models.SampleTier("1kg"), 0))
	assert.EqualError(t, ValidateSampleTier(models.SampleTierCustom, 0), "Please enter a valid sample weight")
	assert.EqualError(t, ValidateSampleTier(models.SampleTierCustom, 501), "Custom samples are limited to 500 g")
}
