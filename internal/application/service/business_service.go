package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/internal/domain/repository"
	"github.com/webdev26/facture-api/pkg/apperror"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// BusinessService handles business-related operations
type BusinessService struct {
	businessRepo         repository.BusinessRepository
	defaultSequenceStart int
}

// NewBusinessService creates a new business service
func NewBusinessService(businessRepo repository.BusinessRepository, defaultSequenceStart int) *BusinessService {
	return &BusinessService{
		businessRepo:         businessRepo,
		defaultSequenceStart: defaultSequenceStart,
	}
}

// CreateBusinessInput represents the create business input
type CreateBusinessInput struct {
	OwnerID uuid.UUID

	Name    string
	Email   *string
	Phone   *string
	ICE     *string
	Address *string
	City    *string
	LogoURL *string

	BankAccountLabel *string
	BankCurrency     *string
	RIB              *string
	IBAN             *string
	BIC              *string

	Capital         *string
	TradeRegister   *string
	ProfessionalTax *string
	FiscalID        *string

	SequenceStart *int
}

// CreateBusiness creates a new business for the owner
func (s *BusinessService) CreateBusiness(ctx context.Context, input *CreateBusinessInput) (*entity.Business, error) {
	sequenceStart := s.defaultSequenceStart
	if input.SequenceStart != nil && *input.SequenceStart > 0 {
		sequenceStart = *input.SequenceStart
	}

	business := &entity.Business{
		OwnerID:          input.OwnerID,
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		ICE:              input.ICE,
		Address:          input.Address,
		City:             input.City,
		LogoURL:          input.LogoURL,
		BankAccountLabel: input.BankAccountLabel,
		BankCurrency:     input.BankCurrency,
		RIB:              input.RIB,
		IBAN:             input.IBAN,
		BIC:              input.BIC,
		Capital:          input.Capital,
		TradeRegister:    input.TradeRegister,
		ProfessionalTax:  input.ProfessionalTax,
		FiscalID:         input.FiscalID,
		SequenceStart:    sequenceStart,
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	return business, nil
}

// GetBusiness retrieves a business owned by the given user
func (s *BusinessService) GetBusiness(ctx context.Context, ownerID, id uuid.UUID) (*entity.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
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

// ListBusinesses lists the owner's businesses with pagination
func (s *BusinessService) ListBusinesses(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Business], error) {
	businesses, total, err := s.businessRepo.List(ctx, ownerID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(businesses, pag), nil
}

// UpdateBusinessInput represents the update business input
type UpdateBusinessInput struct {
	OwnerID uuid.UUID
	ID      uuid.UUID

	Name    *string
	Email   *string
	Phone   *string
	ICE     *string
	Address *string
	City    *string
	LogoURL *string

	BankAccountLabel *string
	BankCurrency     *string
	RIB              *string
	IBAN             *string
	BIC              *string

	Capital         *string
	TradeRegister   *string
	ProfessionalTax *string
	FiscalID        *string

	SequenceStart *int
}

// UpdateBusiness updates an existing business. Omitted fields are left as is;
// already issued invoices keep their snapshot regardless.
func (s *BusinessService) UpdateBusiness(ctx context.Context, input *UpdateBusinessInput) (*entity.Business, error) {
	business, err := s.GetBusiness(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		business.Name = *input.Name
	}
	if input.Email != nil {
		business.Email = input.Email
	}
	if input.Phone != nil {
		business.Phone = input.Phone
	}
	if input.ICE != nil {
		business.ICE = input.ICE
	}
	if input.Address != nil {
		business.Address = input.Address
	}
	if input.City != nil {
		business.City = input.City
	}
	if input.LogoURL != nil {
		business.LogoURL = input.LogoURL
	}
	if input.BankAccountLabel != nil {
		business.BankAccountLabel = input.BankAccountLabel
	}
	if input.BankCurrency != nil {
		business.BankCurrency = input.BankCurrency
	}
	if input.RIB != nil {
		business.RIB = input.RIB
	}
	if input.IBAN != nil {
		business.IBAN = input.IBAN
	}
	if input.BIC != nil {
		business.BIC = input.BIC
	}
	if input.Capital != nil {
		business.Capital = input.Capital
	}
	if input.TradeRegister != nil {
		business.TradeRegister = input.TradeRegister
	}
	if input.ProfessionalTax != nil {
		business.ProfessionalTax = input.ProfessionalTax
	}
	if input.FiscalID != nil {
		business.FiscalID = input.FiscalID
	}
	if input.SequenceStart != nil && *input.SequenceStart > 0 {
		business.SequenceStart = *input.SequenceStart
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	return business, nil
}

// DeleteBusiness deletes a business owned by the given user
func (s *BusinessService) DeleteBusiness(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetBusiness(ctx, ownerID, id); err != nil {
		return err
	}
	return s.businessRepo.Delete(ctx, id)
}
