package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/internal/domain/repository"
	"github.com/webdev26/facture-api/pkg/apperror"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	businessRepo repository.BusinessRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, businessRepo repository.BusinessRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		businessRepo: businessRepo,
	}
}

func (s *ProductService) ownedBusiness(ctx context.Context, ownerID, businessID uuid.UUID) (*entity.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, apperror.NewNotFoundError("Business")
	}
	if business.OwnerID != ownerID {
		return nil, apperror.ErrForbidden
	}
	return business, nil
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	OwnerID        uuid.UUID
	BusinessID     uuid.UUID
	Name           string
	Description    *string
	UnitPrice      float64
	TaxRatePercent float64
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if _, err := s.ownedBusiness(ctx, input.OwnerID, input.BusinessID); err != nil {
		return nil, err
	}

	if err := validateProductPricing(input.UnitPrice, input.TaxRatePercent); err != nil {
		return nil, err
	}

	product := &entity.Product{
		BusinessID:     input.BusinessID,
		Name:           input.Name,
		Description:    input.Description,
		UnitPrice:      input.UnitPrice,
		TaxRatePercent: input.TaxRatePercent,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// validateProductPricing rejects prices and rates the pricing engine would
// refuse at invoicing time.
func validateProductPricing(unitPrice, taxRate float64) error {
	var fieldErrors []apperror.FieldError
	if unitPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "unit_price",
			Message: "must not be negative",
		})
	}
	if taxRate < 0 || taxRate > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "tax_rate_percent",
			Message: "must be between 0 and 100",
		})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// GetProduct retrieves a product reachable by the owner
func (s *ProductService) GetProduct(ctx context.Context, ownerID, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if _, err := s.ownedBusiness(ctx, ownerID, product.BusinessID); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProductsInput represents the input for listing products
type ListProductsInput struct {
	OwnerID    uuid.UUID
	BusinessID uuid.UUID
	Pagination *pagination.PaginationParams
	Search     string
	SortBy     string
	SortOrder  string
}

// ListProducts lists products of one business with filtering
func (s *ProductService) ListProducts(ctx context.Context, input *ListProductsInput) (*pagination.PaginatedResult[entity.Product], error) {
	if _, err := s.ownedBusiness(ctx, input.OwnerID, input.BusinessID); err != nil {
		return nil, err
	}

	params := &repository.ProductFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	products, total, err := s.productRepo.List(ctx, input.BusinessID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	OwnerID        uuid.UUID
	ID             uuid.UUID
	Name           *string
	Description    *string
	UnitPrice      *float64
	TaxRatePercent *float64
}

// UpdateProduct updates a catalog product. Invoices issued earlier keep the
// item snapshot taken at creation time.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.UnitPrice != nil {
		product.UnitPrice = *input.UnitPrice
	}
	if input.TaxRatePercent != nil {
		product.TaxRatePercent = *input.TaxRatePercent
	}

	if err := validateProductPricing(product.UnitPrice, product.TaxRatePercent); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a catalog product
func (s *ProductService) DeleteProduct(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, ownerID, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
