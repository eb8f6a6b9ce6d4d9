package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webdev26/facture-api/internal/domain/enum"
	"github.com/webdev26/facture-api/pkg/apperror"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		items        []LineItem
		discount     Discount
		wantSubtotal float64
		wantDiscount float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name:         "single item no discount",
			items:        []LineItem{{UnitPrice: 100, Quantity: 1, TaxRatePercent: 20}},
			discount:     None(),
			wantSubtotal: 100,
			wantDiscount: 0,
			wantTax:      20,
			wantTotal:    120,
		},
		{
			name:         "percentage discount reduces taxable base",
			items:        []LineItem{{UnitPrice: 100, Quantity: 2, TaxRatePercent: 10}},
			discount:     Discount{Type: enum.DiscountTypePercentage, Value: 10},
			wantSubtotal: 200,
			wantDiscount: 20,
			wantTax:      18,
			wantTotal:    198,
		},
		{
			name: "fixed discount clamped to subtotal",
			items: []LineItem{
				{UnitPrice: 50, Quantity: 1, TaxRatePercent: 0},
				{UnitPrice: 50, Quantity: 1, TaxRatePercent: 20},
			},
			discount:     Discount{Type: enum.DiscountTypeFixed, Value: 150},
			wantSubtotal: 100,
			wantDiscount: 100,
			wantTax:      0,
			wantTotal:    0,
		},
		{
			name: "mixed tax rates distribute discount proportionally",
			items: []LineItem{
				{UnitPrice: 100, Quantity: 1, TaxRatePercent: 20},
				{UnitPrice: 300, Quantity: 1, TaxRatePercent: 10},
			},
			discount: Discount{Type: enum.DiscountTypeFixed, Value: 40},
			// shares: 25% and 75% of 400; taxables: 100-10=90, 300-30=270
			wantSubtotal: 400,
			wantDiscount: 40,
			wantTax:      90*0.20 + 270*0.10,
			wantTotal:    400 - 40 + 45,
		},
		{
			name:         "quantity multiplies the line value",
			items:        []LineItem{{UnitPrice: 12.5, Quantity: 4, TaxRatePercent: 0}},
			discount:     None(),
			wantSubtotal: 50,
			wantDiscount: 0,
			wantTax:      0,
			wantTotal:    50,
		},
		{
			name:         "zero subtotal yields zero everything",
			items:        []LineItem{{UnitPrice: 0, Quantity: 1, TaxRatePercent: 20}},
			discount:     Discount{Type: enum.DiscountTypeFixed, Value: 50},
			wantSubtotal: 0,
			wantDiscount: 0,
			wantTax:      0,
			wantTotal:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := Compute(tt.items, tt.discount)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantSubtotal, totals.Subtotal, 1e-9)
			assert.InDelta(t, tt.wantDiscount, totals.DiscountAmount, 1e-9)
			assert.InDelta(t, tt.wantTax, totals.TaxTotal, 1e-9)
			assert.InDelta(t, tt.wantTotal, totals.Total, 1e-9)
		})
	}
}

func TestCompute_DiscountCap(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 30, Quantity: 3, TaxRatePercent: 7},
		{UnitPrice: 10, Quantity: 1, TaxRatePercent: 20},
	}

	for _, value := range []float64{0, 50, 100, 100.01, 1000} {
		totals, err := Compute(items, Discount{Type: enum.DiscountTypeFixed, Value: value})
		require.NoError(t, err)
		assert.LessOrEqual(t, totals.DiscountAmount, totals.Subtotal,
			"fixed discount %v must never exceed the subtotal", value)
	}

	for _, pct := range []float64{0, 10, 50, 100} {
		totals, err := Compute(items, Discount{Type: enum.DiscountTypePercentage, Value: pct})
		require.NoError(t, err)
		assert.InDelta(t, totals.Subtotal*pct/100, totals.DiscountAmount, 1e-9)
		assert.LessOrEqual(t, totals.DiscountAmount, totals.Subtotal+1e-9)
	}
}

func TestCompute_TaxConservation(t *testing.T) {
	// The distribution must not lose or create value: with a flat 100% tax
	// rate on every line, the tax total equals the discounted subtotal.
	items := []LineItem{
		{UnitPrice: 19.99, Quantity: 3, TaxRatePercent: 100},
		{UnitPrice: 0.01, Quantity: 7, TaxRatePercent: 100},
		{UnitPrice: 1234.56, Quantity: 1, TaxRatePercent: 100},
	}

	totals, err := Compute(items, Discount{Type: enum.DiscountTypeFixed, Value: 500})
	require.NoError(t, err)
	assert.InDelta(t, totals.Subtotal-totals.DiscountAmount, totals.TaxTotal, 1e-9)
}

func TestCompute_Deterministic(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 99.99, Quantity: 2, TaxRatePercent: 14},
		{UnitPrice: 45, Quantity: 1, TaxRatePercent: 20},
	}
	discount := Discount{Type: enum.DiscountTypePercentage, Value: 12.5}

	first, err := Compute(items, discount)
	require.NoError(t, err)
	second, err := Compute(items, discount)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompute_Validation(t *testing.T) {
	tests := []struct {
		name      string
		items     []LineItem
		discount  Discount
		wantField string
	}{
		{
			name:      "empty line items",
			items:     nil,
			discount:  None(),
			wantField: "items",
		},
		{
			name:      "negative unit price",
			items:     []LineItem{{UnitPrice: -1, Quantity: 1}},
			discount:  None(),
			wantField: "items[0].unit_price",
		},
		{
			name:      "zero quantity",
			items:     []LineItem{{UnitPrice: 10, Quantity: 0}},
			discount:  None(),
			wantField: "items[0].quantity",
		},
		{
			name:      "tax rate above 100",
			items:     []LineItem{{UnitPrice: 10, Quantity: 1, TaxRatePercent: 120}},
			discount:  None(),
			wantField: "items[0].tax_rate_percent",
		},
		{
			name:      "unknown discount type",
			items:     []LineItem{{UnitPrice: 10, Quantity: 1}},
			discount:  Discount{Type: enum.DiscountType(9), Value: 5},
			wantField: "discount.type",
		},
		{
			name:      "negative discount value",
			items:     []LineItem{{UnitPrice: 10, Quantity: 1}},
			discount:  Discount{Type: enum.DiscountTypeFixed, Value: -5},
			wantField: "discount.value",
		},
		{
			name:      "percentage above 100",
			items:     []LineItem{{UnitPrice: 10, Quantity: 1}},
			discount:  Discount{Type: enum.DiscountTypePercentage, Value: 101},
			wantField: "discount.value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := Compute(tt.items, tt.discount)
			require.Error(t, err)
			assert.Nil(t, totals)

			appErr := apperror.GetAppError(err)
			require.NotEmpty(t, appErr.Errors)

			found := false
			for _, fe := range appErr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			assert.True(t, found, "expected a field error on %s, got %+v", tt.wantField, appErr.Errors)
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 10.56, Round2(10.556))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 19.99, Round2(19.99))
}
