package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rentmanager/backend/internal/domain/finance"
	"github.com/rentmanager/backend/internal/domain/invoicing"
	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/maintenance"
	"github.com/rentmanager/backend/internal/domain/tenancy"
)

type MockPaymentEntryRepository struct {
	mock.Mock
}

func (m *MockPaymentEntryRepository) Save(ctx context.Context, entry *ledger.PaymentEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPaymentEntryRepository) SaveWithLock(ctx context.Context, entry *ledger.PaymentEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPaymentEntryRepository) FindByIDForLandlord(ctx context.Context, id, landlordID uuid.UUID) (*ledger.PaymentEntry, error) {
	args := m.Called(ctx, id, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PaymentEntry), args.Error(1)
}

func (m *MockPaymentEntryRepository) FindByLandlord(ctx context.Context, landlordID uuid.UUID, filter ledger.EntryFilter) ([]*ledger.PaymentEntry, int64, error) {
	args := m.Called(ctx, landlordID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*ledger.PaymentEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentEntryRepository) FindBySource(ctx context.Context, landlordID uuid.UUID, ref ledger.SourceRef) ([]*ledger.PaymentEntry, error) {
	args := m.Called(ctx, landlordID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.PaymentEntry), args.Error(1)
}

func (m *MockPaymentEntryRepository) FindSettledUnlinked(ctx context.Context, landlordID uuid.UUID, limit int) ([]*ledger.PaymentEntry, error) {
	args := m.Called(ctx, landlordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.PaymentEntry), args.Error(1)
}

type MockRentInvoiceRepository struct {
	mock.Mock
}

func (m *MockRentInvoiceRepository) Save(ctx context.Context, invoice *invoicing.RentInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockRentInvoiceRepository) FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*invoicing.RentInvoice, error) {
	args := m.Called(ctx, id, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.RentInvoice), args.Error(1)
}

func (m *MockRentInvoiceRepository) FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*invoicing.RentInvoice, error) {
	args := m.Called(ctx, id, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.RentInvoice), args.Error(1)
}

func (m *MockRentInvoiceRepository) FindOpenByNumber(ctx context.Context, landlordID uuid.UUID, tenantUnitID int64, invoiceNumber string) (*invoicing.RentInvoice, error) {
	args := m.Called(ctx, landlordID, tenantUnitID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.RentInvoice), args.Error(1)
}

func (m *MockRentInvoiceRepository) FindOpenByTenantUnit(ctx context.Context, landlordID uuid.UUID, tenantUnitID int64) ([]*invoicing.RentInvoice, error) {
	args := m.Called(ctx, landlordID, tenantUnitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*invoicing.RentInvoice), args.Error(1)
}

type MockFinancialRecordRepository struct {
	mock.Mock
}

func (m *MockFinancialRecordRepository) Save(ctx context.Context, record *finance.FinancialRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFinancialRecordRepository) FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*finance.FinancialRecord, error) {
	args := m.Called(ctx, id, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialRecord), args.Error(1)
}

func (m *MockFinancialRecordRepository) FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*finance.FinancialRecord, error) {
	args := m.Called(ctx, id, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.FinancialRecord), args.Error(1)
}

type MockMaintenanceInvoiceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceInvoiceRepository) Save(ctx context.Context, invoice *maintenance.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockMaintenanceInvoiceRepository) FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*maintenance.Invoice, error) {
	args := m.Called(ctx, id, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.Invoice), args.Error(1)
}

func (m *MockMaintenanceInvoiceRepository) FindByIDForLandlordLocked(ctx context.Context, id int64, landlordID uuid.UUID) (*maintenance.Invoice, error) {
	args := m.Called(ctx, id, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.Invoice), args.Error(1)
}

func (m *MockMaintenanceInvoiceRepository) FindByNumberForLandlord(ctx context.Context, landlordID uuid.UUID, invoiceNumber string) (*maintenance.Invoice, error) {
	args := m.Called(ctx, landlordID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.Invoice), args.Error(1)
}

type MockTenantUnitDirectory struct {
	mock.Mock
}

func (m *MockTenantUnitDirectory) FindByIDForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (*tenancy.TenantUnit, error) {
	args := m.Called(ctx, id, landlordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.TenantUnit), args.Error(1)
}

func (m *MockTenantUnitDirectory) ExistsForLandlord(ctx context.Context, id int64, landlordID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, landlordID)
	return args.Bool(0), args.Error(1)
}

type MockSourceLinker struct {
	mock.Mock
}

func (m *MockSourceLinker) Link(ctx context.Context, entry *ledger.PaymentEntry) (*ledger.SourceRef, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SourceRef), args.Error(1)
}
