package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rentmanager/backend/internal/domain/maintenance"
	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/infrastructure/persistence/models"
)

// GormMaintenanceInvoiceRepository implements maintenance InvoiceRepository
// using GORM
type GormMaintenanceInvoiceRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceInvoiceRepository creates a new GormMaintenanceInvoiceRepository
func NewGormMaintenanceInvoiceRepository(db *gorm.DB) *GormMaintenanceInvoiceRepository {
	return &GormMaintenanceInvoiceRepository{db: db}
}

// Save persists the invoice. Updates only land when the stored row still
// carries the previous version, see GormRentInvoiceRepository.Save.
func (r *GormMaintenanceInvoiceRepository) Save(ctx context.Context, invoice *maintenance.Invoice) error {
	model := models.MaintenanceInvoiceModelFromDomain(invoice)
	if model.ID == 0 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		invoice.ID = model.ID
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.MaintenanceInvoiceModel{}).
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

// FindByIDForLandlord finds an invoice by ID scoped to a landlord
func (r *GormMaintenanceInvoiceRepository) FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*maintenance.Invoice, error) {
	return r.findOne(r.db.WithContext(ctx), "landlord_id = ? AND id = ?", landlordID, id)
}

// FindByIDForLandlordLocked finds an invoice by ID and takes a row lock
// for the duration of the enclosing transaction.
func (r *GormMaintenanceInvoiceRepository) FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*maintenance.Invoice, error) {
	return r.findOne(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		"landlord_id = ? AND id = ?", landlordID, id)
}

// FindByNumberForLandlord finds an invoice by its number
func (r *GormMaintenanceInvoiceRepository) FindByNumberForLandlord(ctx context.Context, landlordID uuid.UUID, invoiceNumber string) (*maintenance.Invoice, error) {
	return r.findOne(r.db.WithContext(ctx),
		"landlord_id = ? AND invoice_number = ?", landlordID, invoiceNumber)
}

func (r *GormMaintenanceInvoiceRepository) findOne(db *gorm.DB, query string, args ...any) (*maintenance.Invoice, error) {
	var model models.MaintenanceInvoiceModel
	if err := db.Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ maintenance.InvoiceRepository = (*GormMaintenanceInvoiceRepository)(nil)
