package ledger

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/rentmanager/backend/internal/domain/invoicing"
	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/shared"
)

// Invoice numbers look like RINV-202501-003: an uppercase prefix, a year
// and month, and a running sequence. The generic phrase pattern catches
// bank narrations like "Invoice RINV-202501-003 settled".
var (
	invoiceNumberPattern = regexp.MustCompile(`\b([A-Z]{2,6}-\d{6}-\d{1,5})\b`)
	invoicePhrasePattern = regexp.MustCompile(`(?i)\binvoice\s+([A-Za-z0-9-]+)`)
)

// SourceLinker resolves a missing source pointer for a settled entry.
// It exists as an interface so the free-text matching can be swapped for
// a stricter mechanism without touching reconciliation.
type SourceLinker interface {
	Link(ctx context.Context, entry *ledger.PaymentEntry) (*ledger.SourceRef, error)
}

// DescriptionLinker scans an entry's free-text description for an invoice
// number and binds it to an open rent invoice of the same tenant/unit.
// Linkage is advisory: no match is not an error.
type DescriptionLinker struct {
	invoices invoicing.RentInvoiceRepository
	logger   *zap.Logger
}

// NewDescriptionLinker creates a new DescriptionLinker
func NewDescriptionLinker(invoices invoicing.RentInvoiceRepository, logger *zap.Logger) *DescriptionLinker {
	return &DescriptionLinker{invoices: invoices, logger: logger}
}

// Link attempts to resolve the entry's source pointer from its description.
// Returns nil when the entry has no tenant/unit, no description, no
// matching token, or no open invoice with that number.
func (l *DescriptionLinker) Link(ctx context.Context, entry *ledger.PaymentEntry) (*ledger.SourceRef, error) {
	if entry.TenantUnitID == nil || entry.Description == "" {
		return nil, nil
	}

	token := extractInvoiceNumber(entry.Description)
	if token == "" {
		return nil, nil
	}

	invoice, err := l.invoices.FindOpenByNumber(ctx, entry.LandlordID, *entry.TenantUnitID, token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			l.logger.Debug("no open invoice matched description token",
				zap.String("entry_id", entry.ID.String()),
				zap.String("token", token))
			return nil, nil
		}
		return nil, err
	}

	ref := &ledger.SourceRef{Kind: ledger.SourceRentInvoice, ID: invoice.ID}
	l.logger.Info("auto-linked payment to rent invoice from description",
		zap.String("entry_id", entry.ID.String()),
		zap.String("invoice_number", token),
		zap.Int64("invoice_id", invoice.ID))
	return ref, nil
}

// extractInvoiceNumber pulls an invoice-number token out of free text.
// The structured pattern wins over the generic "Invoice <token>" phrase.
func extractInvoiceNumber(description string) string {
	if m := invoiceNumberPattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	if m := invoicePhrasePattern.FindStringSubmatch(description); m != nil {
		return m[1]
	}
	return ""
}

var _ SourceLinker = (*DescriptionLinker)(nil)
