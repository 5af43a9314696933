package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/domain/tenancy"
	"github.com/rentmanager/backend/internal/infrastructure/persistence/models"
)

// GormTenantUnitRepository implements TenantUnitDirectory using GORM
type GormTenantUnitRepository struct {
	db *gorm.DB
}

// NewGormTenantUnitRepository creates a new GormTenantUnitRepository
func NewGormTenantUnitRepository(db *gorm.DB) *GormTenantUnitRepository {
	return &GormTenantUnitRepository{db: db}
}

// FindByIDForLandlord finds a tenant/unit by ID scoped to a landlord
func (r *GormTenantUnitRepository) FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*tenancy.TenantUnit, error) {
	var model models.TenantUnitModel
	if err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND id = ?", landlordID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForLandlord reports whether the tenant/unit belongs to the landlord
func (r *GormTenantUnitRepository) ExistsForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TenantUnitModel{}).
		Where("landlord_id = ? AND id = ?", landlordID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ tenancy.TenantUnitDirectory = (*GormTenantUnitRepository)(nil)
