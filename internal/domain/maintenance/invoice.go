package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentmanager/backend/internal/domain/shared"
)

// InvoiceStatus is the lifecycle status of a maintenance invoice
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice is a contractor invoice raised against a maintenance job.
// GrandTotal already includes labour, parts and tax.
type Invoice struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	LandlordID    uuid.UUID
	TenantUnitID  *int64
	InvoiceNumber string
	GrandTotal    decimal.Decimal
	Status        InvoiceStatus
	PaidDate      *time.Time
	PaymentMethod string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Touch records a mutation at the given time.
func (i *Invoice) Touch(now time.Time) {
	i.UpdatedAt = now
}

// IsPaid reports whether the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// MarkPaid settles the invoice, idempotently.
func (i *Invoice) MarkPaid(paidDate time.Time, paymentMethod string, now time.Time) bool {
	if i.IsPaid() {
		return false
	}
	i.Status = InvoiceStatusPaid
	d := paidDate
	i.PaidDate = &d
	if paymentMethod != "" {
		i.PaymentMethod = paymentMethod
	}
	i.Touch(now)
	i.Version++
	return true
}

// Validate checks the invoice invariants
func (i *Invoice) Validate() error {
	if i.LandlordID == uuid.Nil {
		return shared.NewValidationError("landlord_id", "Landlord is required")
	}
	if !i.GrandTotal.IsPositive() {
		return shared.NewValidationError("grand_total", "Grand total must be greater than zero")
	}
	if !i.Status.IsValid() {
		return shared.NewValidationError("status", "Invalid invoice status")
	}
	return nil
}
