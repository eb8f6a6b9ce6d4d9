package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/webdev26/facture-api/internal/domain/entity"
	domainRepo "github.com/webdev26/facture-api/internal/domain/repository"
	"github.com/webdev26/facture-api/pkg/pagination"
	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) domainRepo.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &client, err
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Client{}, "id = ?", id).Error
}

func (r *clientRepository) List(ctx context.Context, businessID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{}).
		Where("business_id = ?", businessID)

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR ice ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&clients).Error

	return clients, total, err
}

func (r *clientRepository) ListByBusinesses(ctx context.Context, businessIDs []uuid.UUID) ([]entity.Client, error) {
	var clients []entity.Client
	err := r.db.WithContext(ctx).
		Scopes(businessScope(businessIDs)).
		Order("name ASC").
		Find(&clients).Error
	return clients, err
}

func (r *clientRepository) CountByBusinesses(ctx context.Context, businessIDs []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Client{}).
		Scopes(businessScope(businessIDs)).
		Count(&count).Error
	return count, err
}
