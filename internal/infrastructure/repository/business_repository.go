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

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) domainRepo.BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var business entity.Business
	err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &business, err
}

func (r *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}

func (r *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Business{}, "id = ?", id).Error
}

func (r *businessRepository) List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Business, int64, error) {
	var businesses []entity.Business
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Business{}).
		Where("owner_id = ?", ownerID)

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
		Find(&businesses).Error

	return businesses, total, err
}

func (r *businessRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Business, error) {
	var businesses []entity.Business
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&businesses).Error
	return businesses, err
}

func (r *businessRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Business{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}
