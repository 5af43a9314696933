package invoicing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice() *RentInvoice {
	return &RentInvoice{
		ID:            42,
		LandlordID:    uuid.New(),
		TenantUnitID:  7,
		InvoiceNumber: "INV-202601-42",
		RentAmount:    decimal.NewFromFloat(1400),
		LateFee:       decimal.NewFromFloat(100),
		Status:        InvoiceStatusSent,
		Version:       1,
	}
}

func TestInvoiceStatusIsOpen(t *testing.T) {
	assert.True(t, InvoiceStatusGenerated.IsOpen())
	assert.True(t, InvoiceStatusSent.IsOpen())
	assert.True(t, InvoiceStatusOverdue.IsOpen())
	assert.False(t, InvoiceStatusPaid.IsOpen())
	assert.False(t, InvoiceStatusCancelled.IsOpen())
}

func TestRentInvoiceTotalPayable(t *testing.T) {
	inv := newTestInvoice()
	assert.True(t, inv.TotalPayable().Equal(decimal.NewFromInt(1500)))

	inv.LateFee = decimal.Zero
	assert.True(t, inv.TotalPayable().Equal(decimal.NewFromInt(1400)))
}

func TestRentInvoiceMarkPaid(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	paidDate := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)

	t.Run("settles an open invoice", func(t *testing.T) {
		inv := newTestInvoice()
		changed := inv.MarkPaid(paidDate, "bank_transfer", now)
		assert.True(t, changed)
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		require.NotNil(t, inv.PaidDate)
		assert.Equal(t, paidDate, *inv.PaidDate)
		assert.Equal(t, "bank_transfer", inv.PaymentMethod)
		assert.Equal(t, now, inv.UpdatedAt)
		assert.Equal(t, 2, inv.Version)
	})

	t.Run("keeps existing method when none given", func(t *testing.T) {
		inv := newTestInvoice()
		inv.PaymentMethod = "cash"
		inv.MarkPaid(paidDate, "", now)
		assert.Equal(t, "cash", inv.PaymentMethod)
	})

	t.Run("is idempotent on an already paid invoice", func(t *testing.T) {
		inv := newTestInvoice()
		require.True(t, inv.MarkPaid(paidDate, "cash", now))

		later := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		changed := inv.MarkPaid(later, "card", now)
		assert.False(t, changed)
		assert.Equal(t, paidDate, *inv.PaidDate)
		assert.Equal(t, "cash", inv.PaymentMethod)
		assert.Equal(t, 2, inv.Version)
	})
}

func TestRentInvoiceReopen(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	t.Run("reverts a paid invoice to sent", func(t *testing.T) {
		inv := newTestInvoice()
		require.True(t, inv.MarkPaid(now, "cash", now))

		changed := inv.Reopen(now)
		assert.True(t, changed)
		assert.Equal(t, InvoiceStatusSent, inv.Status)
		assert.Nil(t, inv.PaidDate)
		assert.Empty(t, inv.PaymentMethod)
	})

	t.Run("no-op on an open invoice", func(t *testing.T) {
		inv := newTestInvoice()
		assert.False(t, inv.Reopen(now))
		assert.Equal(t, InvoiceStatusSent, inv.Status)
	})
}

func TestRentInvoiceValidate(t *testing.T) {
	t.Run("valid invoice passes", func(t *testing.T) {
		assert.NoError(t, newTestInvoice().Validate())
	})

	t.Run("missing landlord fails", func(t *testing.T) {
		inv := newTestInvoice()
		inv.LandlordID = uuid.Nil
		assert.Error(t, inv.Validate())
	})

	t.Run("missing tenant unit fails", func(t *testing.T) {
		inv := newTestInvoice()
		inv.TenantUnitID = 0
		assert.Error(t, inv.Validate())
	})

	t.Run("negative amounts fail", func(t *testing.T) {
		inv := newTestInvoice()
		inv.LateFee = decimal.NewFromInt(-1)
		assert.Error(t, inv.Validate())
	})
}
