package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentmanager/backend/internal/domain/shared"
)

// InvoiceStatus is the lifecycle status of a rent invoice
type InvoiceStatus string

const (
	InvoiceStatusGenerated InvoiceStatus = "generated"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a known value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusGenerated, InvoiceStatusSent, InvoiceStatusOverdue,
		InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the invoice still awaits payment
func (s InvoiceStatus) IsOpen() bool {
	switch s {
	case InvoiceStatusGenerated, InvoiceStatusSent, InvoiceStatusOverdue:
		return true
	}
	return false
}

// RentInvoice is a periodic rent demand issued against a tenant/unit.
// Invoices carry an integer primary key because they predate the ledger
// and are referenced by number from bank statements.
type RentInvoice struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	LandlordID    uuid.UUID
	TenantUnitID  int64
	InvoiceNumber string
	RentAmount    decimal.Decimal
	LateFee       decimal.Decimal
	Status        InvoiceStatus
	DueDate       *time.Time
	PaidDate      *time.Time
	PaymentMethod string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Touch records a mutation at the given time.
func (i *RentInvoice) Touch(now time.Time) {
	i.UpdatedAt = now
}

// TotalPayable is the full amount required to settle the invoice,
// rent plus any accrued late fee.
func (i *RentInvoice) TotalPayable() decimal.Decimal {
	return i.RentAmount.Add(i.LateFee)
}

// IsPaid reports whether the invoice has already been settled
func (i *RentInvoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// MarkPaid settles the invoice. Calling it on an already paid invoice is
// a no-op so that replayed settlements stay idempotent.
func (i *RentInvoice) MarkPaid(paidDate time.Time, paymentMethod string, now time.Time) bool {
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

// Reopen reverts a paid invoice back to sent, used when the settling
// payment is voided.
func (i *RentInvoice) Reopen(now time.Time) bool {
	if !i.IsPaid() {
		return false
	}
	i.Status = InvoiceStatusSent
	i.PaidDate = nil
	i.PaymentMethod = ""
	i.Touch(now)
	i.Version++
	return true
}

// Validate checks the invoice invariants
func (i *RentInvoice) Validate() error {
	if i.LandlordID == uuid.Nil {
		return shared.NewValidationError("landlord_id", "Landlord is required")
	}
	if i.TenantUnitID <= 0 {
		return shared.NewValidationError("tenant_unit_id", "Tenant unit is required")
	}
	if i.RentAmount.IsNegative() || i.LateFee.IsNegative() {
		return shared.NewValidationError("rent_amount", "Invoice amounts cannot be negative")
	}
	if !i.Status.IsValid() {
		return shared.NewValidationError("status", "Invalid invoice status")
	}
	return nil
}
