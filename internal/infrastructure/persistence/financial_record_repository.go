package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rentmanager/backend/internal/domain/finance"
	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/infrastructure/persistence/models"
)

// GormFinancialRecordRepository implements FinancialRecordRepository using GORM
type GormFinancialRecordRepository struct {
	db *gorm.DB
}

// NewGormFinancialRecordRepository creates a new GormFinancialRecordRepository
func NewGormFinancialRecordRepository(db *gorm.DB) *GormFinancialRecordRepository {
	return &GormFinancialRecordRepository{db: db}
}

// Save persists the record. Updates only land when the stored row still
// carries the previous version, see GormRentInvoiceRepository.Save.
func (r *GormFinancialRecordRepository) Save(ctx context.Context, record *finance.FinancialRecord) error {
	model := models.FinancialRecordModelFromDomain(record)
	if model.ID == 0 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		record.ID = model.ID
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.FinancialRecordModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("*").Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByIDForLandlord finds a record by ID scoped to a landlord
func (r *GormFinancialRecordRepository) FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*finance.FinancialRecord, error) {
	return r.findByID(r.db.WithContext(ctx), id, landlordID)
}

// FindByIDForLandlordLocked finds a record by ID and takes a row lock for
// the duration of the enclosing transaction.
func (r *GormFinancialRecordRepository) FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*finance.FinancialRecord, error) {
	return r.findByID(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		id, landlordID)
}

func (r *GormFinancialRecordRepository) findByID(db *gorm.DB, id int64, landlordID uuid.UUID) (*finance.FinancialRecord, error) {
	var model models.FinancialRecordModel
	if err := db.Where("landlord_id = ? AND id = ?", landlordID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ finance.FinancialRecordRepository = (*GormFinancialRecordRepository)(nil)
