package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentmanager/backend/internal/domain/ledger"
)

// CreateEntryRequest represents a request to record a payment on the ledger.
// SourceID is deliberately untyped: callers send it as a number, a numeric
// string or a composite "type:123" string, and normalization decomposes it.
type CreateEntryRequest struct {
	PaymentType     string          `json:"payment_type" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Currency        string          `json:"currency"`
	TenantUnitID    *int64          `json:"tenant_unit_id"`
	Status          string          `json:"status"`
	TransactionDate *time.Time      `json:"transaction_date"`
	DueDate         *time.Time      `json:"due_date"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Description     string          `json:"description"`
	SourceType      string          `json:"source_type"`
	SourceID        any             `json:"source_id"`
	Metadata        map[string]any  `json:"metadata"`
	CreatedBy       *uuid.UUID      `json:"-"` // Set from JWT context, not from request body
}

// CaptureEntryRequest represents a request to settle an entry
type CaptureEntryRequest struct {
	Status          string         `json:"status" binding:"required"`
	TransactionDate *time.Time     `json:"transaction_date"`
	PaymentMethod   string         `json:"payment_method"`
	ReferenceNumber string         `json:"reference_number"`
	Metadata        map[string]any `json:"metadata"`
}

// VoidEntryRequest represents a request to void an entry
type VoidEntryRequest struct {
	Status   string         `json:"status" binding:"required"`
	VoidedAt *time.Time     `json:"voided_at"`
	Reason   string         `json:"reason"`
	Metadata map[string]any `json:"metadata"`
}

// EntryListFilter defines filtering options for ledger list queries
type EntryListFilter struct {
	TenantUnitID *int64     `form:"tenant_unit_id"`
	PaymentType  string     `form:"payment_type"`
	Direction    string     `form:"direction"`
	Status       string     `form:"status"`
	SourceType   string     `form:"source_type"`
	Unlinked     bool       `form:"unlinked"`
	Search       string     `form:"search"`
	FromDate     *time.Time `form:"from_date"`
	ToDate       *time.Time `form:"to_date"`
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID              uuid.UUID         `json:"id"`
	LandlordID      uuid.UUID         `json:"landlord_id"`
	TenantUnitID    *int64            `json:"tenant_unit_id,omitempty"`
	PaymentType     string            `json:"payment_type"`
	FlowDirection   string            `json:"flow_direction"`
	Amount          decimal.Decimal   `json:"amount"`
	Currency        string            `json:"currency"`
	TransactionDate *time.Time        `json:"transaction_date,omitempty"`
	DueDate         *time.Time        `json:"due_date,omitempty"`
	Status          string            `json:"status"`
	PaymentMethod   string            `json:"payment_method,omitempty"`
	ReferenceNumber string            `json:"reference_number,omitempty"`
	Description     string            `json:"description,omitempty"`
	Source          *ledger.SourceRef `json:"source,omitempty"`
	Metadata        map[string]any    `json:"metadata,omitempty"`
	CapturedAt      *time.Time        `json:"captured_at,omitempty"`
	VoidedAt        *time.Time        `json:"voided_at,omitempty"`
	CreatedBy       *uuid.UUID        `json:"created_by,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Version         int               `json:"version"`
}

func toEntryResponse(e *ledger.PaymentEntry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		LandlordID:      e.LandlordID,
		TenantUnitID:    e.TenantUnitID,
		PaymentType:     string(e.PaymentType),
		FlowDirection:   string(e.Direction),
		Amount:          e.Amount,
		Currency:        string(e.Currency),
		TransactionDate: e.TransactionDate,
		DueDate:         e.DueDate,
		Status:          string(e.Status),
		PaymentMethod:   e.PaymentMethod,
		ReferenceNumber: e.ReferenceNumber,
		Description:     e.Description,
		Source:          e.Source,
		Metadata:        e.Metadata,
		CapturedAt:      e.CapturedAt,
		VoidedAt:        e.VoidedAt,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		Version:         e.Version,
	}
}
