package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rentmanager/backend/internal/domain/invoicing"
	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/infrastructure/persistence/models"
)

// GormRentInvoiceRepository implements RentInvoiceRepository using GORM
type GormRentInvoiceRepository struct {
	db *gorm.DB
}

// NewGormRentInvoiceRepository creates a new GormRentInvoiceRepository
func NewGormRentInvoiceRepository(db *gorm.DB) *GormRentInvoiceRepository {
	return &GormRentInvoiceRepository{db: db}
}

// Save persists the invoice. Updates are guarded by the version column:
// mutations bump the version, and the write only lands when the stored
// row still carries the previous one, so two concurrent settlements
// cannot both mark the same invoice paid.
func (r *GormRentInvoiceRepository) Save(ctx context.Context, invoice *invoicing.RentInvoice) error {
	model := models.RentInvoiceModelFromDomain(invoice)
	if model.ID == 0 {
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return err
		}
		invoice.ID = model.ID
		return nil
	}

	result := r.db.WithContext(ctx).Model(&models.RentInvoiceModel{}).
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
func (r *GormRentInvoiceRepository) FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*invoicing.RentInvoice, error) {
	return r.findByID(r.db.WithContext(ctx), id, landlordID)
}

// FindByIDForLandlordLocked finds an invoice by ID and takes a row lock
// for the duration of the enclosing transaction.
func (r *GormRentInvoiceRepository) FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*invoicing.RentInvoice, error) {
	return r.findByID(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		id, landlordID)
}

func (r *GormRentInvoiceRepository) findByID(db *gorm.DB, id int64, landlordID uuid.UUID) (*invoicing.RentInvoice, error) {
	var model models.RentInvoiceModel
	if err := db.Where("landlord_id = ? AND id = ?", landlordID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByNumber finds an unpaid invoice by number for a tenant/unit
func (r *GormRentInvoiceRepository) FindOpenByNumber(ctx context.Context, landlordID uuid.UUID, tenantUnitID int64, invoiceNumber string) (*invoicing.RentInvoice, error) {
	var model models.RentInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND tenant_unit_id = ? AND invoice_number = ? AND status IN ?",
			landlordID, tenantUnitID, invoiceNumber, openInvoiceStatuses()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByTenantUnit finds all unpaid invoices for a tenant/unit
func (r *GormRentInvoiceRepository) FindOpenByTenantUnit(ctx context.Context, landlordID uuid.UUID, tenantUnitID int64) ([]*invoicing.RentInvoice, error) {
	var invoiceModels []models.RentInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND tenant_unit_id = ? AND status IN ?",
			landlordID, tenantUnitID, openInvoiceStatuses()).
		Order("due_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]*invoicing.RentInvoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToDomain()
	}
	return invoices, nil
}

func openInvoiceStatuses() []invoicing.InvoiceStatus {
	return []invoicing.InvoiceStatus{
		invoicing.InvoiceStatusGenerated,
		invoicing.InvoiceStatusSent,
		invoicing.InvoiceStatusOverdue,
	}
}

var _ invoicing.RentInvoiceRepository = (*GormRentInvoiceRepository)(nil)
