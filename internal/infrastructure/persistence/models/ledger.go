package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/domain/shared/valueobject"
)

// PaymentEntryModel is the persistence model for ledger entries. The
// source pointer is stored as two nullable columns rather than the legacy
// composite string.
type PaymentEntryModel struct {
	LandlordAggregateModel
	TenantUnitID    *int64               `gorm:"index"`
	PaymentType     ledger.PaymentType   `gorm:"type:varchar(30);not null;index"`
	FlowDirection   ledger.FlowDirection `gorm:"type:varchar(10);not null"`
	Amount          decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency        string               `gorm:"type:varchar(3);not null"`
	TransactionDate *time.Time           `gorm:"index"`
	DueDate         *time.Time
	Status          ledger.EntryStatus `gorm:"type:varchar(20);not null;index"`
	PaymentMethod   string             `gorm:"type:varchar(50)"`
	ReferenceNumber string             `gorm:"type:varchar(100)"`
	Description     string             `gorm:"type:text"`
	SourceType      *ledger.SourceKind `gorm:"type:varchar(30);index:idx_payment_entries_source"`
	SourceID        *int64             `gorm:"index:idx_payment_entries_source"`
	Metadata        ledger.Metadata    `gorm:"type:jsonb"`
	CapturedAt      *time.Time
	VoidedAt        *time.Time
}

// TableName returns the table name for GORM
func (PaymentEntryModel) TableName() string {
	return "payment_entries"
}

// ToDomain converts the persistence model to a domain PaymentEntry
func (m *PaymentEntryModel) ToDomain() *ledger.PaymentEntry {
	entry := &ledger.PaymentEntry{
		LandlordAggregateRoot: shared.LandlordAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: m.BaseModel.ToDomain(),
				Version:    m.Version,
			},
			LandlordID: m.LandlordID,
			CreatedBy:  m.CreatedBy,
		},
		TenantUnitID:    m.TenantUnitID,
		PaymentType:     m.PaymentType,
		Direction:       m.FlowDirection,
		Amount:          m.Amount,
		Currency:        valueobject.Currency(m.Currency),
		TransactionDate: m.TransactionDate,
		DueDate:         m.DueDate,
		Status:          m.Status,
		PaymentMethod:   m.PaymentMethod,
		ReferenceNumber: m.ReferenceNumber,
		Description:     m.Description,
		Metadata:        m.Metadata,
		CapturedAt:      m.CapturedAt,
		VoidedAt:        m.VoidedAt,
	}
	if m.SourceType != nil && m.SourceID != nil {
		entry.Source = &ledger.SourceRef{Kind: *m.SourceType, ID: *m.SourceID}
	}
	return entry
}

// PaymentEntryModelFromDomain converts a domain PaymentEntry to its
// persistence model
func PaymentEntryModelFromDomain(e *ledger.PaymentEntry) *PaymentEntryModel {
	m := &PaymentEntryModel{
		TenantUnitID:    e.TenantUnitID,
		PaymentType:     e.PaymentType,
		FlowDirection:   e.Direction,
		Amount:          e.Amount,
		Currency:        string(e.Currency),
		TransactionDate: e.TransactionDate,
		DueDate:         e.DueDate,
		Status:          e.Status,
		PaymentMethod:   e.PaymentMethod,
		ReferenceNumber: e.ReferenceNumber,
		Description:     e.Description,
		Metadata:        e.Metadata,
		CapturedAt:      e.CapturedAt,
		VoidedAt:        e.VoidedAt,
	}
	m.FromDomainLandlordAggregateRoot(e.LandlordAggregateRoot)
	if e.Source != nil {
		kind := e.Source.Kind
		id := e.Source.ID
		m.SourceType = &kind
		m.SourceID = &id
	}
	return m
}
