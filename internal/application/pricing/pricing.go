package pricing

import (
	"fmt"
	"math"

	"github.com/webdev26/facture-api/internal/domain/enum"
	"github.com/webdev26/facture-api/pkg/apperror"
)

// LineItem is the pricing view of one invoice line: a unit price, a tax rate
// and a quantity. Identity fields live on the entity, not here.
type LineItem struct {
	UnitPrice      float64
	TaxRatePercent float64
	Quantity       int
}

// LineTotal returns the pre-discount, pre-tax value of the line
func (li LineItem) LineTotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// Discount is an optional invoice-level reduction, either a percentage of the
// subtotal or a fixed amount clamped to the subtotal.
type Discount struct {
	Type  enum.DiscountType
	Value float64
}

// None is the zero discount
func None() Discount {
	return Discount{Type: enum.DiscountTypePercentage, Value: 0}
}

// Totals is the computed money bundle of an invoice. Values are unrounded;
// callers round to two decimals at presentation time only.
type Totals struct {
	Subtotal       float64
	DiscountAmount float64
	TaxTotal       float64
	Total          float64
}

// Compute derives the invoice totals from its line items and discount.
//
// The discount is distributed across line items proportionally to each item's
// share of the subtotal before tax is applied. Items can carry different tax
// rates, so reducing a single aggregate tax figure would misallocate tax; the
// per-item distribution keeps Σ taxable == subtotal − discount exactly.
//
// Compute performs no I/O and fails only on invalid input.
func Compute(items []LineItem, discount Discount) (*Totals, error) {
	if err := validate(items, discount); err != nil {
		return nil, err
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}

	var discountAmount float64
	switch discount.Type {
	case enum.DiscountTypePercentage:
		discountAmount = subtotal * discount.Value / 100
	case enum.DiscountTypeFixed:
		discountAmount = math.Min(discount.Value, subtotal)
	}

	var taxTotal float64
	for _, item := range items {
		lineTotal := item.LineTotal()
		var share float64
		if subtotal > 0 {
			share = lineTotal / subtotal
		}
		taxable := lineTotal - share*discountAmount
		taxTotal += taxable * item.TaxRatePercent / 100
	}

	return &Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxTotal:       taxTotal,
		Total:          subtotal - discountAmount + taxTotal,
	}, nil
}

func validate(items []LineItem, discount Discount) error {
	var fieldErrors []apperror.FieldError

	if len(items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "items",
			Message: "at least one line item is required",
		})
	}
	for i, item := range items {
		prefix := fmt.Sprintf("items[%d]", i)
		if item.UnitPrice < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   prefix + ".unit_price",
				Message: "unit price must not be negative",
			})
		}
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   prefix + ".quantity",
				Message: "quantity must be at least 1",
			})
		}
		if item.TaxRatePercent < 0 || item.TaxRatePercent > 100 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   prefix + ".tax_rate_percent",
				Message: "tax rate must be between 0 and 100",
			})
		}
	}

	if !discount.Type.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "discount.type",
			Message: "discount type must be percentage or fixed",
		})
	}
	if discount.Value < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "discount.value",
			Message: "discount value must not be negative",
		})
	}
	if discount.Type == enum.DiscountTypePercentage && discount.Value > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "discount.value",
			Message: "percentage discount cannot exceed 100",
		})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// Round2 rounds a monetary value to two decimals for presentation
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
