package maintenance

import (
	"context"

	"github.com/google/uuid"
)

// InvoiceRepository persists maintenance invoices
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*Invoice, error)
	FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*Invoice, error)
	FindByNumberForLandlord(ctx context.Context, landlordID uuid.UUID, invoiceNumber string) (*Invoice, error)
}
