package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryFilter narrows ledger listings. Zero values mean "no constraint".
type EntryFilter struct {
	TenantUnitID *int64
	PaymentType  *PaymentType
	Direction    *FlowDirection
	Status       *EntryStatus
	SourceKind   *SourceKind
	// Unlinked restricts to entries without a source pointer.
	Unlinked bool
	// Search matches description and reference number, case-insensitive.
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// PaymentEntryRepository persists ledger entries. All lookups are scoped
// by landlord id.
type PaymentEntryRepository interface {
	Save(ctx context.Context, entry *PaymentEntry) error
	SaveWithLock(ctx context.Context, entry *PaymentEntry) error
	FindByIDForLandlord(ctx context.Context, id, landlordID uuid.UUID) (*PaymentEntry, error)
	FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter EntryFilter) ([]*PaymentEntry, int64, error)
	FindBySource(ctx context.Context, landlordID uuid.UUID, ref SourceRef) ([]*PaymentEntry, error)
	FindSettledUnlinked(ctx context.Context, landlordID uuid.UUID, limit int) ([]*PaymentEntry, error)
}
