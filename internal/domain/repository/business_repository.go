package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// BusinessRepository defines the interface for business data operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the businesses owned by ownerID with page-based pagination.
	List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Business, int64, error)
	// ListByOwner returns all businesses of an owner without pagination
	// (dropdown population on the dashboard).
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Business, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
