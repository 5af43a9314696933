package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rentmanager/backend/internal/domain/invoicing"
	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/shared"
	"github.com/rentmanager/backend/internal/domain/shared/valueobject"
	"github.com/rentmanager/backend/internal/domain/tenancy"
)

// EntryNormalizer turns a loosely-typed create payload into a fully-typed
// PaymentEntry ready to persist. It is a pure transform over validated
// inputs plus a clock read; it never writes anything.
type EntryNormalizer struct {
	units    tenancy.TenantUnitDirectory
	invoices invoicing.RentInvoiceRepository
	methods  map[string]struct{}
	now      NowFunc
}

// NewEntryNormalizer creates a new EntryNormalizer. allowedMethods is the
// configured payment method list; an empty list accepts any method.
func NewEntryNormalizer(
	units tenancy.TenantUnitDirectory,
	invoices invoicing.RentInvoiceRepository,
	allowedMethods []string,
	now NowFunc,
) *EntryNormalizer {
	methods := make(map[string]struct{}, len(allowedMethods))
	for _, m := range allowedMethods {
		methods[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	return &EntryNormalizer{
		units:    units,
		invoices: invoices,
		methods:  methods,
		now:      now,
	}
}

// Normalize validates and types a create request. Each step short-circuits
// with a field-tagged validation error; a bad source pointer is the one
// exception, it silently resolves to no linkage at all.
func (n *EntryNormalizer) Normalize(ctx context.Context, landlordID uuid.UUID, req CreateEntryRequest) (*ledger.PaymentEntry, error) {
	paymentType := ledger.PaymentType(strings.TrimSpace(req.PaymentType))
	def, err := ledger.DefinitionFor(paymentType)
	if err != nil {
		return nil, err
	}

	if def.RequiresTenantUnit && (req.TenantUnitID == nil || *req.TenantUnitID <= 0) {
		return nil, shared.NewValidationError("tenant_unit_id",
			fmt.Sprintf("Payment type %s requires a tenant unit", paymentType))
	}
	// A unit pointer is validated whenever one is supplied, required or not:
	// an entry must never reference another landlord's unit.
	if req.TenantUnitID != nil && *req.TenantUnitID > 0 {
		ok, err := n.units.ExistsForLandlord(ctx, *req.TenantUnitID, landlordID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, shared.NewValidationError("tenant_unit_id",
				"Tenant unit not found for this landlord")
		}
	}

	status := def.DefaultStatus
	if s := strings.TrimSpace(req.Status); s != "" {
		status = ledger.EntryStatus(s)
		if !status.IsValid() {
			return nil, shared.NewValidationError("status",
				fmt.Sprintf("Invalid payment status %q", s))
		}
	}

	if !req.Amount.IsPositive() {
		return nil, shared.NewValidationError("amount", "Amount must be greater than zero")
	}

	currency, err := valueobject.NormalizeCurrencyCode(req.Currency)
	if err != nil {
		return nil, shared.NewValidationError("currency", err.Error())
	}

	if err := n.checkPaymentMethod(req.PaymentMethod); err != nil {
		return nil, err
	}

	money, err := valueobject.NewMoney(req.Amount, currency)
	if err != nil {
		return nil, shared.NewValidationError("currency", err.Error())
	}

	entry, err := ledger.NewPaymentEntry(landlordID, paymentType, money, status, n.now())
	if err != nil {
		return nil, err
	}

	if req.TenantUnitID != nil && *req.TenantUnitID > 0 {
		entry.AttachTenantUnit(*req.TenantUnitID)
	}

	switch {
	case req.TransactionDate != nil:
		entry.SetTransactionDate(*req.TransactionDate)
	case status.IsSettled():
		entry.SetTransactionDate(n.now())
	}
	if req.DueDate != nil {
		entry.SetDueDate(*req.DueDate)
	}

	entry.SetPaymentDetail(req.PaymentMethod, req.ReferenceNumber)
	entry.SetDescription(strings.TrimSpace(req.Description))
	entry.MergeMetadata(req.Metadata)
	if req.CreatedBy != nil {
		entry.SetCreatedBy(*req.CreatedBy)
	}

	ref := n.resolveSource(req)
	if ref != nil {
		if err := n.rejectPaidInvoice(ctx, landlordID, ref); err != nil {
			return nil, err
		}
		entry.SetSource(ref)
	}

	return entry, nil
}

// resolveSource extracts the source pointer from the explicit payload
// fields, falling back to metadata keys older clients still send.
func (n *EntryNormalizer) resolveSource(req CreateEntryRequest) *ledger.SourceRef {
	if ref := ledger.ResolveSourceRef(req.SourceType, req.SourceID); ref != nil {
		return ref
	}
	if req.Metadata == nil {
		return nil
	}
	return ledger.ResolveSourceRef(req.Metadata["source_type"], req.Metadata["source_id"])
}

// rejectPaidInvoice blocks a new entry from pointing at a rent invoice
// that has already been settled.
func (n *EntryNormalizer) rejectPaidInvoice(ctx context.Context, landlordID uuid.UUID, ref *ledger.SourceRef) error {
	if ref.Kind != ledger.SourceRentInvoice {
		return nil
	}
	invoice, err := n.invoices.FindByIDForLandlord(ctx, ref.ID, landlordID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if invoice.IsPaid() {
		return shared.NewValidationError("source_id",
			fmt.Sprintf("Rent invoice %d is already paid", ref.ID))
	}
	return nil
}

func (n *EntryNormalizer) checkPaymentMethod(method string) error {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" || len(n.methods) == 0 {
		return nil
	}
	if _, ok := n.methods[method]; !ok {
		return shared.NewValidationError("payment_method",
			fmt.Sprintf("Payment method %q is not configured", method))
	}
	return nil
}
