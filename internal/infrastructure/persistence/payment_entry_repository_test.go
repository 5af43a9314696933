package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/domain/shared/valueobject"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func newLedgerEntry(t *testing.T, landlordID uuid.UUID, status ledger.EntryStatus) *ledger.PaymentEntry {
	t.Helper()
	entry, err := ledger.NewPaymentEntry(
		landlordID,
		ledger.PaymentTypeRent,
		valueobject.NewMoneyMVRFromFloat(1500),
		status,
		time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	entry.AttachTenantUnit(7)
	return entry
}

func TestGormPaymentEntryRepositorySaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentEntryRepository(db)
	ctx := context.Background()
	landlordID := uuid.New()

	t.Run("round-trips an entry", func(t *testing.T) {
		entry := newLedgerEntry(t, landlordID, ledger.StatusPending)
		entry.SetSource(&ledger.SourceRef{Kind: ledger.SourceRentInvoice, ID: 42})
		entry.SetPaymentDetail("bank_transfer", "TXN-9")
		entry.SetDescription("March rent")
		entry.MergeMetadata(map[string]any{"channel": "app"})
		require.NoError(t, repo.Save(ctx, entry))

		found, err := repo.FindByIDForLandlord(ctx, entry.ID, landlordID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, found.ID)
		assert.Equal(t, ledger.PaymentTypeRent, found.PaymentType)
		assert.Equal(t, ledger.FlowIncome, found.Direction)
		assert.True(t, found.Amount.Equal(decimal.NewFromInt(1500)))
		assert.Equal(t, valueobject.MVR, found.Currency)
		require.NotNil(t, found.TenantUnitID)
		assert.Equal(t, int64(7), *found.TenantUnitID)
		require.NotNil(t, found.Source)
		assert.Equal(t, ledger.SourceRentInvoice, found.Source.Kind)
		assert.Equal(t, int64(42), found.Source.ID)
		assert.Equal(t, "bank_transfer", found.PaymentMethod)
		assert.Equal(t, "app", found.Metadata["channel"])
	})

	t.Run("scopes lookups by landlord", func(t *testing.T) {
		entry := newLedgerEntry(t, landlordID, ledger.StatusPending)
		require.NoError(t, repo.Save(ctx, entry))

		_, err := repo.FindByIDForLandlord(ctx, entry.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing entry yields not found", func(t *testing.T) {
		_, err := repo.FindByIDForLandlord(ctx, uuid.New(), landlordID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPaymentEntryRepositorySaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentEntryRepository(db)
	ctx := context.Background()
	landlordID := uuid.New()

	t.Run("creates when the entry does not exist yet", func(t *testing.T) {
		entry := newLedgerEntry(t, landlordID, ledger.StatusPending)
		require.NoError(t, repo.SaveWithLock(ctx, entry))

		found, err := repo.FindByIDForLandlord(ctx, entry.ID, landlordID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.Version)
	})

	t.Run("saves with matching version", func(t *testing.T) {
		entry := newLedgerEntry(t, landlordID, ledger.StatusPending)
		require.NoError(t, repo.Save(ctx, entry))

		now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)
		require.NoError(t, entry.Capture(ledger.StatusCompleted, nil, "cash", "", nil, now))
		require.NoError(t, repo.SaveWithLock(ctx, entry))

		found, err := repo.FindByIDForLandlord(ctx, entry.ID, landlordID)
		require.NoError(t, err)
		assert.Equal(t, ledger.StatusCompleted, found.Status)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		entry := newLedgerEntry(t, landlordID, ledger.StatusPending)
		require.NoError(t, repo.Save(ctx, entry))

		now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

		stale, err := repo.FindByIDForLandlord(ctx, entry.ID, landlordID)
		require.NoError(t, err)

		require.NoError(t, entry.Capture(ledger.StatusCompleted, nil, "", "", nil, now))
		require.NoError(t, repo.SaveWithLock(ctx, entry))

		require.NoError(t, stale.Void(ledger.StatusCancelled, nil, "", nil, now))
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormPaymentEntryRepositoryFindByLandlord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentEntryRepository(db)
	ctx := context.Background()
	landlordID := uuid.New()

	seed := func(t *testing.T, status ledger.EntryStatus, paymentType ledger.PaymentType) *ledger.PaymentEntry {
		entry, err := ledger.NewPaymentEntry(landlordID, paymentType,
			valueobject.NewMoneyMVRFromFloat(100), status,
			time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		if paymentType == ledger.PaymentTypeRent {
			entry.AttachTenantUnit(7)
		}
		require.NoError(t, repo.Save(ctx, entry))
		return entry
	}

	seed(t, ledger.StatusPending, ledger.PaymentTypeRent)
	seed(t, ledger.StatusCompleted, ledger.PaymentTypeRent)
	seed(t, ledger.StatusCompleted, ledger.PaymentTypeOtherExpense)

	// Another landlord's entry must never show up
	other, err := ledger.NewPaymentEntry(uuid.New(), ledger.PaymentTypeOtherIncome,
		valueobject.NewMoneyMVRFromFloat(50), ledger.StatusCompleted,
		time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("lists all entries for the landlord", func(t *testing.T) {
		entries, total, err := repo.FindByLandlord(ctx, landlordID, ledger.EntryFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, entries, 3)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := ledger.StatusCompleted
		entries, total, err := repo.FindByLandlord(ctx, landlordID, ledger.EntryFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, entries, 2)
	})

	t.Run("filters by payment type and tenant unit", func(t *testing.T) {
		pt := ledger.PaymentTypeRent
		unitID := int64(7)
		entries, total, err := repo.FindByLandlord(ctx, landlordID, ledger.EntryFilter{
			PaymentType:  &pt,
			TenantUnitID: &unitID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, entries, 2)
	})

	t.Run("paginates while counting the full set", func(t *testing.T) {
		entries, total, err := repo.FindByLandlord(ctx, landlordID, ledger.EntryFilter{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, entries, 2)
	})

	t.Run("filters by flow direction", func(t *testing.T) {
		dir := ledger.FlowOutgoing
		_, total, err := repo.FindByLandlord(ctx, landlordID, ledger.EntryFilter{Direction: &dir})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("searches description and skips linked entries when unlinked is set", func(t *testing.T) {
		linked, err := ledger.NewPaymentEntry(landlordID, ledger.PaymentTypeRent,
			valueobject.NewMoneyMVRFromFloat(1500), ledger.StatusCompleted,
			time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		linked.AttachTenantUnit(7)
		linked.Description = "March rent transfer via BML"
		linked.ReferenceNumber = "RCPT-2026-77"
		linked.SetSource(&ledger.SourceRef{Kind: ledger.SourceRentInvoice, ID: 9})
		require.NoError(t, repo.Save(ctx, linked))

		entries, total, err := repo.FindByLandlord(ctx, landlordID, ledger.EntryFilter{Search: "march RENT"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, linked.ID, entries[0].ID)

		_, total, err = repo.FindByLandlord(ctx, landlordID, ledger.EntryFilter{Unlinked: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total, "the linked entry must be excluded")
	})
}

func TestGormPaymentEntryRepositoryFindBySource(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentEntryRepository(db)
	ctx := context.Background()
	landlordID := uuid.New()
	ref := ledger.SourceRef{Kind: ledger.SourceRentInvoice, ID: 42}

	linked := newLedgerEntry(t, landlordID, ledger.StatusCompleted)
	linked.SetSource(&ref)
	require.NoError(t, repo.Save(ctx, linked))

	unlinked := newLedgerEntry(t, landlordID, ledger.StatusCompleted)
	require.NoError(t, repo.Save(ctx, unlinked))

	entries, err := repo.FindBySource(ctx, landlordID, ref)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, linked.ID, entries[0].ID)
}

func TestGormPaymentEntryRepositoryFindSettledUnlinked(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentEntryRepository(db)
	ctx := context.Background()
	landlordID := uuid.New()

	settledUnlinked := newLedgerEntry(t, landlordID, ledger.StatusCompleted)
	require.NoError(t, repo.Save(ctx, settledUnlinked))

	settledLinked := newLedgerEntry(t, landlordID, ledger.StatusCompleted)
	settledLinked.SetSource(&ledger.SourceRef{Kind: ledger.SourceRentInvoice, ID: 42})
	require.NoError(t, repo.Save(ctx, settledLinked))

	pendingUnlinked := newLedgerEntry(t, landlordID, ledger.StatusPending)
	require.NoError(t, repo.Save(ctx, pendingUnlinked))

	entries, err := repo.FindSettledUnlinked(ctx, landlordID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, settledUnlinked.ID, entries[0].ID)
}
