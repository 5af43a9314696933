package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/domain/shared/valueobject"
)

// PaymentEntry is one row in the unified payment ledger: a single money
// movement, optionally linked to the document it settles. Entries are
// created once, optionally captured and optionally voided; they are never
// deleted.
type PaymentEntry struct {
	shared.LandlordAggregateRoot
	TenantUnitID    *int64
	PaymentType     PaymentType
	Direction       FlowDirection
	Amount          decimal.Decimal
	Currency        valueobject.Currency
	TransactionDate *time.Time
	DueDate         *time.Time
	Status          EntryStatus
	PaymentMethod   string
	ReferenceNumber string
	Description     string
	Source          *SourceRef
	Metadata        Metadata
	CapturedAt      *time.Time
	VoidedAt        *time.Time
}

// NewPaymentEntry creates a ledger entry. The flow direction is always
// taken from the payment type registry regardless of caller input, and
// capture/void timestamps are stamped when the initial status warrants it.
func NewPaymentEntry(
	landlordID uuid.UUID,
	paymentType PaymentType,
	amount valueobject.Money,
	status EntryStatus,
	now time.Time,
) (*PaymentEntry, error) {
	def, err := DefinitionFor(paymentType)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "Amount must be greater than zero")
	}
	if len(amount.Currency()) != 3 {
		return nil, shared.NewValidationError("currency", "Currency must be a 3-letter code")
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("status", fmt.Sprintf("Invalid payment status %q", status))
	}

	e := &PaymentEntry{
		LandlordAggregateRoot: shared.NewLandlordAggregateRoot(landlordID),
		PaymentType:           paymentType,
		Direction:             def.Direction,
		Amount:                amount.Amount(),
		Currency:              amount.Currency(),
		Status:                status,
		Metadata:              Metadata{},
	}

	switch {
	case status == StatusCompleted:
		t := now
		e.CapturedAt = &t
	case status == StatusCancelled:
		t := now
		e.VoidedAt = &t
	}

	return e, nil
}

// AttachTenantUnit links the entry to a tenant/unit
func (e *PaymentEntry) AttachTenantUnit(tenantUnitID int64) {
	e.TenantUnitID = &tenantUnitID
}

// SetSource binds the entry to the document it settles
func (e *PaymentEntry) SetSource(ref *SourceRef) {
	e.Source = ref
}

// SetPaymentDetail records how the money moved
func (e *PaymentEntry) SetPaymentDetail(method, referenceNumber string) {
	if method != "" {
		e.PaymentMethod = method
	}
	if referenceNumber != "" {
		e.ReferenceNumber = referenceNumber
	}
}

// SetDescription sets the free-text description
func (e *PaymentEntry) SetDescription(description string) {
	e.Description = description
}

// SetTransactionDate sets the date the money actually moved
func (e *PaymentEntry) SetTransactionDate(t time.Time) {
	e.TransactionDate = &t
}

// SetDueDate sets the expected payment date
func (e *PaymentEntry) SetDueDate(t time.Time) {
	e.DueDate = &t
}

// MergeMetadata folds keys into the entry metadata without replacing it
func (e *PaymentEntry) MergeMetadata(meta map[string]any) {
	e.Metadata.Merge(meta)
}

// IsSettled returns true when the entry should drive reconciliation
func (e *PaymentEntry) IsSettled() bool {
	return e.Status.IsSettled()
}

// IsPartial returns true for partial settlements
func (e *PaymentEntry) IsPartial() bool {
	return e.Status == StatusPartial
}

// Capture transitions the entry into a settled status. Legal from any
// non-terminal state only.
func (e *PaymentEntry) Capture(
	status EntryStatus,
	transactionDate *time.Time,
	paymentMethod, referenceNumber string,
	meta map[string]any,
	now time.Time,
) error {
	if !status.IsCaptureStatus() {
		return shared.NewValidationError("status",
			fmt.Sprintf("Capture status must be %s or %s, got %q", StatusCompleted, StatusPartial, status))
	}
	if e.Status.IsTerminal() {
		return shared.NewIllegalTransition(
			fmt.Sprintf("Cannot capture payment in terminal status %s", e.Status))
	}

	switch {
	case transactionDate != nil:
		e.TransactionDate = transactionDate
	case e.TransactionDate == nil:
		t := now
		e.TransactionDate = &t
	}

	e.SetPaymentDetail(paymentMethod, referenceNumber)
	e.MergeMetadata(meta)

	captured := now
	e.CapturedAt = &captured
	e.VoidedAt = nil
	e.Status = status
	e.Touch(now)
	e.IncrementVersion()

	return nil
}

// Void transitions the entry into a terminal status. Legal from any
// non-terminal state only; a terminal entry can never be voided again.
func (e *PaymentEntry) Void(
	status EntryStatus,
	voidedAt *time.Time,
	reason string,
	meta map[string]any,
	now time.Time,
) error {
	if !status.IsVoidStatus() {
		return shared.NewValidationError("status",
			fmt.Sprintf("Void status must be one of %s, %s, %s, got %q",
				StatusCancelled, StatusFailed, StatusRefunded, status))
	}
	if e.Status.IsTerminal() {
		return shared.NewIllegalTransition(
			fmt.Sprintf("Cannot void payment in terminal status %s", e.Status))
	}

	if voidedAt != nil {
		e.VoidedAt = voidedAt
	} else {
		t := now
		e.VoidedAt = &t
	}

	e.MergeMetadata(meta)
	if reason != "" {
		e.MergeMetadata(map[string]any{"void_reason": reason})
	}

	e.Status = status
	e.Touch(now)
	e.IncrementVersion()

	return nil
}
