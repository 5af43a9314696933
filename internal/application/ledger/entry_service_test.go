package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentmanager/backend/internal/domain/invoicing"
	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/domain/shared/valueobject"
)

type serviceFixture struct {
	entries             *MockPaymentEntryRepository
	units               *MockTenantUnitDirectory
	rentInvoices        *MockRentInvoiceRepository
	financialRecords    *MockFinancialRecordRepository
	maintenanceInvoices *MockMaintenanceInvoiceRepository
	linker              *MockSourceLinker
	service             *PaymentEntryService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		entries:             new(MockPaymentEntryRepository),
		units:               new(MockTenantUnitDirectory),
		rentInvoices:        new(MockRentInvoiceRepository),
		financialRecords:    new(MockFinancialRecordRepository),
		maintenanceInvoices: new(MockMaintenanceInvoiceRepository),
		linker:              new(MockSourceLinker),
	}
	norm := NewEntryNormalizer(f.units, f.rentInvoices, nil, fixedNow)
	recon := NewReconciliationService(f.rentInvoices, f.financialRecords, f.maintenanceInvoices, fixedNow)
	f.service = NewPaymentEntryService(f.entries, norm, f.linker, recon, zap.NewNop(), fixedNow)
	return f
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()
	landlordID := uuid.New()
	unitID := int64(7)

	t.Run("pending entry persists without reconciliation", func(t *testing.T) {
		f := newServiceFixture()
		f.units.On("ExistsForLandlord", ctx, unitID, landlordID).Return(true, nil)
		f.entries.On("Save", ctx, mock.AnythingOfType("*ledger.PaymentEntry")).Return(nil)

		resp, err := f.service.CreateEntry(ctx, landlordID, CreateEntryRequest{
			PaymentType:  "rent",
			Amount:       decimal.NewFromFloat(1500),
			TenantUnitID: &unitID,
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "income", resp.FlowDirection)
		f.linker.AssertNotCalled(t, "Link", mock.Anything, mock.Anything)
		f.rentInvoices.AssertNotCalled(t, "FindByIDForLandlordLocked", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("settled entry auto-links and settles its invoice", func(t *testing.T) {
		f := newServiceFixture()
		f.units.On("ExistsForLandlord", ctx, unitID, landlordID).Return(true, nil)
		f.entries.On("Save", ctx, mock.AnythingOfType("*ledger.PaymentEntry")).Return(nil)

		invoice := &invoicing.RentInvoice{
			ID:           42,
			LandlordID:   landlordID,
			TenantUnitID: unitID,
			RentAmount:   decimal.NewFromFloat(1500),
			Status:       invoicing.InvoiceStatusSent,
		}
		ref := &ledger.SourceRef{Kind: ledger.SourceRentInvoice, ID: 42}
		f.linker.On("Link", ctx, mock.AnythingOfType("*ledger.PaymentEntry")).Return(ref, nil)
		f.rentInvoices.On("FindByIDForLandlordLocked", ctx, int64(42), landlordID).Return(invoice, nil)
		f.rentInvoices.On("Save", ctx, invoice).Return(nil)

		resp, err := f.service.CreateEntry(ctx, landlordID, CreateEntryRequest{
			PaymentType:   "rent",
			Amount:        decimal.NewFromFloat(1500),
			TenantUnitID:  &unitID,
			Status:        "completed",
			PaymentMethod: "bank_transfer",
			Description:   "Transfer for RINV-202601-42",
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		require.NotNil(t, resp.Source)
		assert.Equal(t, int64(42), resp.Source.ID)
		assert.Equal(t, invoicing.InvoiceStatusPaid, invoice.Status)
		// Save is called twice: once for the entry, once for the linked pointer
		f.entries.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("explicit source skips the linker", func(t *testing.T) {
		f := newServiceFixture()
		invoice := &invoicing.RentInvoice{
			ID:         42,
			LandlordID: landlordID,
			RentAmount: decimal.NewFromFloat(100),
			Status:     invoicing.InvoiceStatusSent,
		}
		f.rentInvoices.On("FindByIDForLandlord", ctx, int64(42), landlordID).Return(invoice, nil)
		f.rentInvoices.On("FindByIDForLandlordLocked", ctx, int64(42), landlordID).Return(invoice, nil)
		f.rentInvoices.On("Save", ctx, invoice).Return(nil)
		f.entries.On("Save", ctx, mock.AnythingOfType("*ledger.PaymentEntry")).Return(nil)

		_, err := f.service.CreateEntry(ctx, landlordID, CreateEntryRequest{
			PaymentType: "other_income",
			Amount:      decimal.NewFromFloat(100),
			SourceType:  "rent_invoice",
			SourceID:    int64(42),
		})
		require.NoError(t, err)
		f.linker.AssertNotCalled(t, "Link", mock.Anything, mock.Anything)
	})

	t.Run("reconciliation failure never fails the create", func(t *testing.T) {
		f := newServiceFixture()
		f.entries.On("Save", ctx, mock.AnythingOfType("*ledger.PaymentEntry")).Return(nil)
		f.rentInvoices.On("FindByIDForLandlord", ctx, int64(42), landlordID).Return(nil, shared.ErrNotFound)
		f.rentInvoices.On("FindByIDForLandlordLocked", ctx, int64(42), landlordID).Return(nil, errors.New("database down"))

		resp, err := f.service.CreateEntry(ctx, landlordID, CreateEntryRequest{
			PaymentType: "other_income",
			Amount:      decimal.NewFromFloat(100),
			SourceType:  "rent_invoice",
			SourceID:    int64(42),
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("linker failure never fails the create", func(t *testing.T) {
		f := newServiceFixture()
		f.entries.On("Save", ctx, mock.AnythingOfType("*ledger.PaymentEntry")).Return(nil)
		f.linker.On("Link", ctx, mock.AnythingOfType("*ledger.PaymentEntry")).Return(nil, errors.New("lookup timeout"))

		resp, err := f.service.CreateEntry(ctx, landlordID, CreateEntryRequest{
			PaymentType: "other_income",
			Amount:      decimal.NewFromFloat(100),
		})
		require.NoError(t, err)
		assert.Nil(t, resp.Source)
	})

	t.Run("normalize failure stops before persistence", func(t *testing.T) {
		f := newServiceFixture()

		_, err := f.service.CreateEntry(ctx, landlordID, CreateEntryRequest{
			PaymentType: "bogus",
			Amount:      decimal.NewFromFloat(100),
		})
		require.Error(t, err)
		f.entries.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCaptureEntry(t *testing.T) {
	ctx := context.Background()
	landlordID := uuid.New()

	pendingEntry := func(t *testing.T) *ledger.PaymentEntry {
		entry, err := ledger.NewPaymentEntry(landlordID, ledger.PaymentTypeRent,
			valueobject.NewMoneyMVRFromFloat(1500), ledger.StatusPending, testClock)
		require.NoError(t, err)
		entry.AttachTenantUnit(7)
		return entry
	}

	t.Run("capture settles and reconciles", func(t *testing.T) {
		f := newServiceFixture()
		entry := pendingEntry(t)
		entry.SetSource(&ledger.SourceRef{Kind: ledger.SourceRentInvoice, ID: 42})

		invoice := &invoicing.RentInvoice{
			ID:           42,
			LandlordID:   landlordID,
			TenantUnitID: 7,
			RentAmount:   decimal.NewFromFloat(1500),
			Status:       invoicing.InvoiceStatusOverdue,
		}

		f.entries.On("FindByIDForLandlord", ctx, entry.ID, landlordID).Return(entry, nil)
		f.entries.On("SaveWithLock", ctx, entry).Return(nil)
		f.rentInvoices.On("FindByIDForLandlordLocked", ctx, int64(42), landlordID).Return(invoice, nil)
		f.rentInvoices.On("Save", ctx, invoice).Return(nil)

		resp, err := f.service.CaptureEntry(ctx, landlordID, entry.ID, CaptureEntryRequest{
			Status:        "completed",
			PaymentMethod: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, invoicing.InvoiceStatusPaid, invoice.Status)
	})

	t.Run("capturing a voided entry fails with transition error", func(t *testing.T) {
		f := newServiceFixture()
		entry := pendingEntry(t)
		require.NoError(t, entry.Void(ledger.StatusCancelled, nil, "", nil, testClock))
		f.entries.On("FindByIDForLandlord", ctx, entry.ID, landlordID).Return(entry, nil)

		_, err := f.service.CaptureEntry(ctx, landlordID, entry.ID, CaptureEntryRequest{Status: "completed"})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ILLEGAL_TRANSITION", domainErr.Code)
		f.entries.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("concurrency conflict surfaces", func(t *testing.T) {
		f := newServiceFixture()
		entry := pendingEntry(t)
		f.entries.On("FindByIDForLandlord", ctx, entry.ID, landlordID).Return(entry, nil)
		f.entries.On("SaveWithLock", ctx, entry).Return(shared.ErrConcurrencyConflict)

		_, err := f.service.CaptureEntry(ctx, landlordID, entry.ID, CaptureEntryRequest{Status: "completed"})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("unknown entry surfaces not found", func(t *testing.T) {
		f := newServiceFixture()
		id := uuid.New()
		f.entries.On("FindByIDForLandlord", ctx, id, landlordID).Return(nil, shared.ErrNotFound)

		_, err := f.service.CaptureEntry(ctx, landlordID, id, CaptureEntryRequest{Status: "completed"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestVoidEntry(t *testing.T) {
	ctx := context.Background()
	landlordID := uuid.New()

	t.Run("void persists without reconciliation", func(t *testing.T) {
		f := newServiceFixture()
		entry, err := ledger.NewPaymentEntry(landlordID, ledger.PaymentTypeOtherIncome,
			valueobject.NewMoneyMVRFromFloat(100), ledger.StatusPending, testClock)
		require.NoError(t, err)

		f.entries.On("FindByIDForLandlord", ctx, entry.ID, landlordID).Return(entry, nil)
		f.entries.On("SaveWithLock", ctx, entry).Return(nil)

		resp, err := f.service.VoidEntry(ctx, landlordID, entry.ID, VoidEntryRequest{
			Status: "cancelled",
			Reason: "duplicate entry",
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "duplicate entry", resp.Metadata["void_reason"])
		f.linker.AssertNotCalled(t, "Link", mock.Anything, mock.Anything)
	})
}

func TestListEntries(t *testing.T) {
	ctx := context.Background()
	landlordID := uuid.New()

	t.Run("maps filter and paginates", func(t *testing.T) {
		f := newServiceFixture()
		entry, err := ledger.NewPaymentEntry(landlordID, ledger.PaymentTypeRent,
			valueobject.NewMoneyMVRFromFloat(1500), ledger.StatusPending, testClock)
		require.NoError(t, err)

		f.entries.On("FindByLandlord", ctx, landlordID, mock.MatchedBy(func(filter ledger.EntryFilter) bool {
			return filter.Limit == 10 && filter.Offset == 20 &&
				filter.Status != nil && *filter.Status == ledger.StatusPending
		})).Return([]*ledger.PaymentEntry{entry}, int64(31), nil)

		responses, total, err := f.service.ListEntries(ctx, landlordID, EntryListFilter{
			Status:   "pending",
			Page:     3,
			PageSize: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(31), total)
		require.Len(t, responses, 1)
		assert.Equal(t, "pending", responses[0].Status)
	})

	t.Run("defaults page and size", func(t *testing.T) {
		f := newServiceFixture()
		f.entries.On("FindByLandlord", ctx, landlordID, mock.MatchedBy(func(filter ledger.EntryFilter) bool {
			return filter.Limit == 20 && filter.Offset == 0
		})).Return([]*ledger.PaymentEntry{}, int64(0), nil)

		_, _, err := f.service.ListEntries(ctx, landlordID, EntryListFilter{})
		require.NoError(t, err)
	})

	t.Run("carries direction, unlinked and search filters", func(t *testing.T) {
		f := newServiceFixture()
		f.entries.On("FindByLandlord", ctx, landlordID, mock.MatchedBy(func(filter ledger.EntryFilter) bool {
			return filter.Direction != nil && *filter.Direction == ledger.FlowOutgoing &&
				filter.Unlinked && filter.Search == "march rent"
		})).Return([]*ledger.PaymentEntry{}, int64(0), nil)

		_, _, err := f.service.ListEntries(ctx, landlordID, EntryListFilter{
			Direction: "outgoing",
			Unlinked:  true,
			Search:    "  march rent ",
		})
		require.NoError(t, err)
	})

	t.Run("rejects invalid filter values", func(t *testing.T) {
		f := newServiceFixture()

		_, _, err := f.service.ListEntries(ctx, landlordID, EntryListFilter{Status: "paid"})
		require.Error(t, err)

		_, _, err = f.service.ListEntries(ctx, landlordID, EntryListFilter{PaymentType: "bogus"})
		require.Error(t, err)

		_, _, err = f.service.ListEntries(ctx, landlordID, EntryListFilter{SourceType: "purchase_order"})
		require.Error(t, err)

		_, _, err = f.service.ListEntries(ctx, landlordID, EntryListFilter{Direction: "sideways"})
		require.Error(t, err)
		f.entries.AssertNotCalled(t, "FindByLandlord", mock.Anything, mock.Anything, mock.Anything)
	})
}
