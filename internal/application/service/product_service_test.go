package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/pkg/apperror"
)

func newProductFixture(t *testing.T) (*ProductService, uuid.UUID, *entity.Business) {
	t.Helper()

	businessRepo := newFakeBusinessRepo()
	owner := uuid.New()
	business := &entity.Business{OwnerID: owner, Name: "Webdev 26", SequenceStart: 1}
	require.NoError(t, businessRepo.Create(context.Background(), business))

	return NewProductService(newFakeProductRepo(), businessRepo), owner, business
}

func TestCreateProduct_RejectsInvalidPricing(t *testing.T) {
	svc, owner, business := newProductFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		unitPrice float64
		taxRate   float64
		wantField string
	}{
		{name: "negative price", unitPrice: -1, taxRate: 20, wantField: "unit_price"},
		{name: "negative tax rate", unitPrice: 10, taxRate: -5, wantField: "tax_rate_percent"},
		{name: "tax rate above 100", unitPrice: 10, taxRate: 120, wantField: "tax_rate_percent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, &CreateProductInput{
				OwnerID:        owner,
				BusinessID:     business.ID,
				Name:           "Prestation",
				UnitPrice:      tt.unitPrice,
				TaxRatePercent: tt.taxRate,
			})
			require.Error(t, err)
			appErr := apperror.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 422, appErr.Code)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.wantField, appErr.Errors[0].Field)
		})
	}
}

func TestCreateProduct_ZeroRateIsValid(t *testing.T) {
	svc, owner, business := newProductFixture(t)

	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		OwnerID:        owner,
		BusinessID:     business.ID,
		Name:           "Service exonéré",
		UnitPrice:      0,
		TaxRatePercent: 0,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, product.UnitPrice, 0.001)
}

func TestUpdateProduct_ValidatesMergedValues(t *testing.T) {
	svc, owner, business := newProductFixture(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, &CreateProductInput{
		OwnerID:        owner,
		BusinessID:     business.ID,
		Name:           "Maintenance",
		UnitPrice:      200,
		TaxRatePercent: 20,
	})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, &UpdateProductInput{
		OwnerID:   owner,
		ID:        product.ID,
		UnitPrice: floatPtr(-50),
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 422, appErr.Code)
}
