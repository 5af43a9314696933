package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentmanager/backend/internal/domain/finance"
	"github.com/rentmanager/backend/internal/domain/invoicing"
	"github.com/rentmanager/backend/internal/domain/maintenance"
	"github.com/rentmanager/backend/internal/domain/tenancy"
)

// RentInvoiceModel is the persistence model for rent invoices
type RentInvoiceModel struct {
	ID            int64                   `gorm:"primaryKey;autoIncrement"`
	LandlordID    uuid.UUID               `gorm:"type:uuid;not null;index;uniqueIndex:idx_rent_invoices_landlord_number,priority:1"`
	TenantUnitID  int64                   `gorm:"not null;index"`
	InvoiceNumber string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_rent_invoices_landlord_number,priority:2"`
	RentAmount    decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	LateFee       decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Status        invoicing.InvoiceStatus `gorm:"type:varchar(20);not null;index"`
	DueDate       *time.Time
	PaidDate      *time.Time
	PaymentMethod string    `gorm:"type:varchar(50)"`
	Version       int       `gorm:"not null;default:1"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RentInvoiceModel) TableName() string {
	return "rent_invoices"
}

// ToDomain converts the persistence model to a domain RentInvoice
func (m *RentInvoiceModel) ToDomain() *invoicing.RentInvoice {
	return &invoicing.RentInvoice{
		ID:            m.ID,
		LandlordID:    m.LandlordID,
		TenantUnitID:  m.TenantUnitID,
		InvoiceNumber: m.InvoiceNumber,
		RentAmount:    m.RentAmount,
		LateFee:       m.LateFee,
		Status:        m.Status,
		DueDate:       m.DueDate,
		PaidDate:      m.PaidDate,
		PaymentMethod: m.PaymentMethod,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// RentInvoiceModelFromDomain converts a domain RentInvoice to its
// persistence model
func RentInvoiceModelFromDomain(i *invoicing.RentInvoice) *RentInvoiceModel {
	return &RentInvoiceModel{
		ID:            i.ID,
		LandlordID:    i.LandlordID,
		TenantUnitID:  i.TenantUnitID,
		InvoiceNumber: i.InvoiceNumber,
		RentAmount:    i.RentAmount,
		LateFee:       i.LateFee,
		Status:        i.Status,
		DueDate:       i.DueDate,
		PaidDate:      i.PaidDate,
		PaymentMethod: i.PaymentMethod,
		Version:       i.Version,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// FinancialRecordModel is the persistence model for financial records
type FinancialRecordModel struct {
	ID            int64              `gorm:"primaryKey;autoIncrement"`
	LandlordID    uuid.UUID          `gorm:"type:uuid;not null;index"`
	TenantUnitID  *int64             `gorm:"index"`
	RecordType    finance.RecordType `gorm:"type:varchar(30);not null;index"`
	Description   string             `gorm:"type:varchar(500)"`
	Amount        decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Status        finance.RecordStatus `gorm:"type:varchar(20);not null;index"`
	InvoiceNumber string             `gorm:"type:varchar(50);index"`
	PaidDate      *time.Time
	PaymentMethod string    `gorm:"type:varchar(50)"`
	Version       int       `gorm:"not null;default:1"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FinancialRecordModel) TableName() string {
	return "financial_records"
}

// ToDomain converts the persistence model to a domain FinancialRecord
func (m *FinancialRecordModel) ToDomain() *finance.FinancialRecord {
	return &finance.FinancialRecord{
		ID:            m.ID,
		LandlordID:    m.LandlordID,
		TenantUnitID:  m.TenantUnitID,
		RecordType:    m.RecordType,
		Description:   m.Description,
		Amount:        m.Amount,
		Status:        m.Status,
		InvoiceNumber: m.InvoiceNumber,
		PaidDate:      m.PaidDate,
		PaymentMethod: m.PaymentMethod,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FinancialRecordModelFromDomain converts a domain FinancialRecord to its
// persistence model
func FinancialRecordModelFromDomain(r *finance.FinancialRecord) *FinancialRecordModel {
	return &FinancialRecordModel{
		ID:            r.ID,
		LandlordID:    r.LandlordID,
		TenantUnitID:  r.TenantUnitID,
		RecordType:    r.RecordType,
		Description:   r.Description,
		Amount:        r.Amount,
		Status:        r.Status,
		InvoiceNumber: r.InvoiceNumber,
		PaidDate:      r.PaidDate,
		PaymentMethod: r.PaymentMethod,
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// MaintenanceInvoiceModel is the persistence model for maintenance invoices
type MaintenanceInvoiceModel struct {
	ID            int64                     `gorm:"primaryKey;autoIncrement"`
	LandlordID    uuid.UUID                 `gorm:"type:uuid;not null;index;uniqueIndex:idx_maintenance_invoices_landlord_number,priority:1"`
	TenantUnitID  *int64                    `gorm:"index"`
	InvoiceNumber string                    `gorm:"type:varchar(50);not null;uniqueIndex:idx_maintenance_invoices_landlord_number,priority:2"`
	GrandTotal    decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Status        maintenance.InvoiceStatus `gorm:"type:varchar(20);not null;index"`
	PaidDate      *time.Time
	PaymentMethod string    `gorm:"type:varchar(50)"`
	Version       int       `gorm:"not null;default:1"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MaintenanceInvoiceModel) TableName() string {
	return "maintenance_invoices"
}

// ToDomain converts the persistence model to a domain maintenance Invoice
func (m *MaintenanceInvoiceModel) ToDomain() *maintenance.Invoice {
	return &maintenance.Invoice{
		ID:            m.ID,
		LandlordID:    m.LandlordID,
		TenantUnitID:  m.TenantUnitID,
		InvoiceNumber: m.InvoiceNumber,
		GrandTotal:    m.GrandTotal,
		Status:        m.Status,
		PaidDate:      m.PaidDate,
		PaymentMethod: m.PaymentMethod,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// MaintenanceInvoiceModelFromDomain converts a domain maintenance Invoice
// to its persistence model
func MaintenanceInvoiceModelFromDomain(i *maintenance.Invoice) *MaintenanceInvoiceModel {
	return &MaintenanceInvoiceModel{
		ID:            i.ID,
		LandlordID:    i.LandlordID,
		TenantUnitID:  i.TenantUnitID,
		InvoiceNumber: i.InvoiceNumber,
		GrandTotal:    i.GrandTotal,
		Status:        i.Status,
		PaidDate:      i.PaidDate,
		PaymentMethod: i.PaymentMethod,
		Version:       i.Version,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// TenantUnitModel is the persistence model for tenant/unit rows
type TenantUnitModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	LandlordID uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantName string    `gorm:"type:varchar(200)"`
	UnitLabel  string    `gorm:"type:varchar(100)"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantUnitModel) TableName() string {
	return "tenant_units"
}

// ToDomain converts the persistence model to a domain TenantUnit
func (m *TenantUnitModel) ToDomain() *tenancy.TenantUnit {
	return &tenancy.TenantUnit{
		ID:         m.ID,
		LandlordID: m.LandlordID,
		TenantName: m.TenantName,
		UnitLabel:  m.UnitLabel,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// TenantUnitModelFromDomain converts a domain TenantUnit to its
// persistence model
func TenantUnitModelFromDomain(t *tenancy.TenantUnit) *TenantUnitModel {
	return &TenantUnitModel{
		ID:         t.ID,
		LandlordID: t.LandlordID,
		TenantName: t.TenantName,
		UnitLabel:  t.UnitLabel,
		Active:     t.Active,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
