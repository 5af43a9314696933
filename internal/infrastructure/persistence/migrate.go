package persistence

import (
	"gorm.io/gorm"

	"github.com/rentmanager/backend/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates the schema for every table this service
// owns. Order matters: tenant units before the documents that reference
// them, documents before the ledger.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TenantUnitModel{},
		&models.RentInvoiceModel{},
		&models.FinancialRecordModel{},
		&models.MaintenanceInvoiceModel{},
		&models.PaymentEntryModel{},
	)
}
