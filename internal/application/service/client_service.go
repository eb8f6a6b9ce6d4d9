package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/internal/domain/repository"
	"github.com/webdev26/facture-api/pkg/apperror"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// ClientService handles client-related operations
type ClientService struct {
	clientRepo   repository.ClientRepository
	businessRepo repository.BusinessRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, businessRepo repository.BusinessRepository) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		businessRepo: businessRepo,
	}
}

// ownedBusiness checks that the business exists and belongs to the owner
func (s *ClientService) ownedBusiness(ctx context.Context, ownerID, businessID uuid.UUID) (*entity.Business, error) {
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

// CreateClientInput represents the create client input
type CreateClientInput struct {
	OwnerID    uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Email      *string
	Mobile     *string
	ICE        *string
	Address    *string
}

// CreateClient creates a new client under one of the owner's businesses
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	if _, err := s.ownedBusiness(ctx, input.OwnerID, input.BusinessID); err != nil {
		return nil, err
	}

	client := &entity.Client{
		BusinessID: input.BusinessID,
		Name:       input.Name,
		Email:      input.Email,
		Mobile:     input.Mobile,
		ICE:        input.ICE,
		Address:    input.Address,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client reachable by the owner
func (s *ClientService) GetClient(ctx context.Context, ownerID, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	if _, err := s.ownedBusiness(ctx, ownerID, client.BusinessID); err != nil {
		return nil, err
	}
	return client, nil
}

// ListClients lists clients of one business with pagination
func (s *ClientService) ListClients(ctx context.Context, ownerID, businessID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	if _, err := s.ownedBusiness(ctx, ownerID, businessID); err != nil {
		return nil, err
	}

	clients, total, err := s.clientRepo.List(ctx, businessID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	OwnerID uuid.UUID
	ID      uuid.UUID
	Name    *string
	Email   *string
	Mobile  *string
	ICE     *string
	Address *string
}

// UpdateClient updates an existing client
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.GetClient(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Mobile != nil {
		client.Mobile = input.Mobile
	}
	if input.ICE != nil {
		client.ICE = input.ICE
	}
	if input.Address != nil {
		client.Address = input.Address
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient deletes a client. Issued invoices keep their client snapshot.
func (s *ClientService) DeleteClient(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.GetClient(ctx, ownerID, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}
