package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/infrastructure/persistence/models"
)

// GormPaymentEntryRepository implements PaymentEntryRepository using GORM
type GormPaymentEntryRepository struct {
	db *gorm.DB
}

// NewGormPaymentEntryRepository creates a new GormPaymentEntryRepository
func NewGormPaymentEntryRepository(db *gorm.DB) *GormPaymentEntryRepository {
	return &GormPaymentEntryRepository{db: db}
}

// Save persists the entry, creating or updating as needed
func (r *GormPaymentEntryRepository) Save(ctx context.Context, entry *ledger.PaymentEntry) error {
	model := models.PaymentEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves the entry with optimistic locking
func (r *GormPaymentEntryRepository) SaveWithLock(ctx context.Context, entry *ledger.PaymentEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.PaymentEntryModel
		if err := tx.Select("version").Where("id = ?", entry.ID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(models.PaymentEntryModelFromDomain(entry)).Error
			}
			return err
		}

		// Domain model already incremented the version
		expectedVersion := entry.Version - 1
		if current.Version != expectedVersion {
			return shared.ErrConcurrencyConflict
		}

		model := models.PaymentEntryModelFromDomain(entry)
		result := tx.Model(model).
			Where("id = ? AND version = ?", entry.ID, expectedVersion).
			Save(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// FindByIDForLandlord finds an entry by ID scoped to a landlord
func (r *GormPaymentEntryRepository) FindByIDForLandlord(ctx context.Context, id, landlordID uuid.UUID) (*ledger.PaymentEntry, error) {
	var model models.PaymentEntryModel
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

// FindByLandlord lists entries for a landlord with filtering and a total count
func (r *GormPaymentEntryRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter ledger.EntryFilter) ([]*ledger.PaymentEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentEntryModel{}).
		Where("landlord_id = ?", landlordID)
	query = applyEntryFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var entryModels []models.PaymentEntryModel
	if err := query.Order("created_at DESC").Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]*ledger.PaymentEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, total, nil
}

// FindBySource finds entries linked to a specific document
func (r *GormPaymentEntryRepository) FindBySource(ctx context.Context, landlordID uuid.UUID, ref ledger.SourceRef) ([]*ledger.PaymentEntry, error) {
	var entryModels []models.PaymentEntryModel
	if err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND source_type = ? AND source_id = ?", landlordID, ref.Kind, ref.ID).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*ledger.PaymentEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// FindSettledUnlinked finds settled entries that never resolved a source
// pointer, oldest first. Used for manual reconciliation review.
func (r *GormPaymentEntryRepository) FindSettledUnlinked(ctx context.Context, landlordID uuid.UUID, limit int) ([]*ledger.PaymentEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var entryModels []models.PaymentEntryModel
	if err := r.db.WithContext(ctx).
		Where("landlord_id = ? AND status IN ? AND source_type IS NULL",
			landlordID, []ledger.EntryStatus{ledger.StatusCompleted, ledger.StatusPartial}).
		Order("created_at ASC").
		Limit(limit).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*ledger.PaymentEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

func applyEntryFilter(query *gorm.DB, filter ledger.EntryFilter) *gorm.DB {
	if filter.TenantUnitID != nil {
		query = query.Where("tenant_unit_id = ?", *filter.TenantUnitID)
	}
	if filter.PaymentType != nil {
		query = query.Where("payment_type = ?", *filter.PaymentType)
	}
	if filter.Direction != nil {
		query = query.Where("flow_direction = ?", *filter.Direction)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.SourceKind != nil {
		query = query.Where("source_type = ?", *filter.SourceKind)
	}
	if filter.Unlinked {
		query = query.Where("source_type IS NULL")
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("lower(description) LIKE ? OR lower(reference_number) LIKE ?", pattern, pattern)
	}
	if filter.From != nil {
		query = query.Where("transaction_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("transaction_date <= ?", *filter.To)
	}
	return query
}

var _ ledger.PaymentEntryRepository = (*GormPaymentEntryRepository)(nil)
