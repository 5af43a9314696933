package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentmanager/backend/internal/domain/shared"
)

// RecordStatus is the lifecycle status of a financial record
type RecordStatus string

const (
	RecordStatusPending   RecordStatus = "pending"
	RecordStatusPaid      RecordStatus = "paid"
	RecordStatusCancelled RecordStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordStatusPending, RecordStatusPaid, RecordStatusCancelled:
		return true
	}
	return false
}

// RecordType categorises what the record tracks
type RecordType string

const (
	RecordTypeMaintenance RecordType = "maintenance"
	RecordTypeUtility     RecordType = "utility"
	RecordTypeInsurance   RecordType = "insurance"
	RecordTypeTax         RecordType = "tax"
	RecordTypeOther       RecordType = "other"
)

// FinancialRecord is a generic income or expense obligation tracked
// outside the rent invoice cycle. Maintenance-typed records carry the
// number of the maintenance invoice they mirror, and settling the record
// must settle that invoice too.
type FinancialRecord struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	LandlordID    uuid.UUID
	TenantUnitID  *int64
	RecordType    RecordType
	Description   string
	Amount        decimal.Decimal
	Status        RecordStatus
	InvoiceNumber string
	PaidDate      *time.Time
	PaymentMethod string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Touch records a mutation at the given time.
func (r *FinancialRecord) Touch(now time.Time) {
	r.UpdatedAt = now
}

// IsPaid reports whether the record has been settled
func (r *FinancialRecord) IsPaid() bool {
	return r.Status == RecordStatusPaid
}

// IsMaintenanceLinked reports whether settling this record must also
// settle a maintenance invoice.
func (r *FinancialRecord) IsMaintenanceLinked() bool {
	return r.RecordType == RecordTypeMaintenance && r.InvoiceNumber != ""
}

// MarkPaid settles the record, idempotently.
func (r *FinancialRecord) MarkPaid(paidDate time.Time, paymentMethod string, now time.Time) bool {
	if r.IsPaid() {
		return false
	}
	r.Status = RecordStatusPaid
	d := paidDate
	r.PaidDate = &d
	if paymentMethod != "" {
		r.PaymentMethod = paymentMethod
	}
	r.Touch(now)
	r.Version++
	return true
}

// Reopen reverts a paid record back to pending
func (r *FinancialRecord) Reopen(now time.Time) bool {
	if !r.IsPaid() {
		return false
	}
	r.Status = RecordStatusPending
	r.PaidDate = nil
	r.PaymentMethod = ""
	r.Touch(now)
	r.Version++
	return true
}

// Validate checks the record invariants
func (r *FinancialRecord) Validate() error {
	if r.LandlordID == uuid.Nil {
		return shared.NewValidationError("landlord_id", "Landlord is required")
	}
	if !r.Amount.IsPositive() {
		return shared.NewValidationError("amount", "Amount must be greater than zero")
	}
	if !r.Status.IsValid() {
		return shared.NewValidationError("status", "Invalid record status")
	}
	return nil
}
