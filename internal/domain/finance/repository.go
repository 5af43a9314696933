package finance

import (
	"context"

	"github.com/google/uuid"
)

// FinancialRecordRepository persists financial records
type FinancialRecordRepository interface {
	Save(ctx context.Context, record *FinancialRecord) error
	FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*FinancialRecord, error)
	FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*FinancialRecord, error)
}
