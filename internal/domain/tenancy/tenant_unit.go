package tenancy

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TenantUnit is an active tenancy: a tenant occupying a unit under a
// landlord. The ledger only needs it for ownership checks, so the type
// stays deliberately thin here.
type TenantUnit struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	LandlordID uuid.UUID
	TenantName string
	UnitLabel  string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TenantUnitDirectory answers ownership questions about tenant/units.
type TenantUnitDirectory interface {
	FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*TenantUnit, error)
	ExistsForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (bool, error)
}
