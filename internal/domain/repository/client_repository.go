package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/domain/entity"
	"github.com/webdev26/facture-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns clients of a business with page-based pagination.
	List(ctx context.Context, businessID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error)
	// ListByBusinesses returns all clients across the given businesses
	// (owner-wide dashboard listing).
	ListByBusinesses(ctx context.Context, businessIDs []uuid.UUID) ([]entity.Client, error)
	CountByBusinesses(ctx context.Context, businessIDs []uuid.UUID) (int64, error)
}
