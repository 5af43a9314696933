package invoicing

import (
	"context"

	"github.com/google/uuid"
)

// RentInvoiceRepository persists rent invoices. The Locked variant takes a
// row lock for the duration of the enclosing transaction and is what
// reconciliation uses before mutating invoice state.
type RentInvoiceRepository interface {
	Save(ctx context.Context, invoice *RentInvoice) error
	FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*RentInvoice, error)
	FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*RentInvoice, error)
	FindOpenByNumber(ctx context.Context, landlordID uuid.UUID, tenantUnitID int64, invoiceNumber string) (*RentInvoice, error)
	FindOpenByTenantUnit(ctx context.Context, landlordID uuid.UUID, tenantUnitID int64) ([]*RentInvoice, error)
}
