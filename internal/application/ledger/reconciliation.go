package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rentmanager/backend/internal/domain/finance"
	"github.com/rentmanager/backend/internal/domain/invoicing"
	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/maintenance"
	"github.com/rentmanager/backend/internal/domain/shared"
)

// ReconOutcome classifies what reconciliation did to the linked document
type ReconOutcome string

const (
	ReconOutcomeSettled       ReconOutcome = "settled"
	ReconOutcomePartial       ReconOutcome = "partial_no_change"
	ReconOutcomeAlreadyPaid   ReconOutcome = "already_paid"
	ReconOutcomeNotFound      ReconOutcome = "document_not_found"
	ReconOutcomeShortfall     ReconOutcome = "amount_short"
	ReconOutcomeFailed        ReconOutcome = "failed"
	ReconOutcomeNotApplicable ReconOutcome = "not_applicable"
)

// ReconResult reports what happened when a settled entry was propagated
// onto its linked document. Failures are carried as a value rather than
// returned as an error: the caller logs the result and moves on, and the
// entry operation that triggered reconciliation always succeeds.
type ReconResult struct {
	Outcome       ReconOutcome
	Source        *ledger.SourceRef
	PaymentAmount decimal.Decimal
	TotalAmount   decimal.Decimal
	Err           error
	// Chained holds the maintenance invoice result when settling a
	// financial record re-dispatches to its linked invoice.
	Chained *ReconResult
}

func (r ReconResult) failed() bool {
	return r.Outcome == ReconOutcomeFailed
}

// Log writes the result at a level matching its outcome
func (r ReconResult) Log(logger *zap.Logger, entryID uuid.UUID) {
	fields := []zap.Field{
		zap.String("entry_id", entryID.String()),
		zap.String("outcome", string(r.Outcome)),
	}
	if r.Source != nil {
		fields = append(fields,
			zap.String("source_type", string(r.Source.Kind)),
			zap.Int64("source_id", r.Source.ID))
	}
	if !r.TotalAmount.IsZero() || !r.PaymentAmount.IsZero() {
		fields = append(fields,
			zap.String("payment_amount", r.PaymentAmount.String()),
			zap.String("total_amount", r.TotalAmount.String()))
	}
	if r.Err != nil {
		fields = append(fields, zap.Error(r.Err))
	}

	if r.failed() {
		logger.Error("reconciliation failed, ledger entry retained", fields...)
	} else {
		logger.Info("reconciliation finished", fields...)
	}

	if r.Chained != nil {
		r.Chained.Log(logger, entryID)
	}
}

// ReconciliationService propagates settled ledger entries onto the
// documents they point at. Document loads take a row lock and document
// saves are version-guarded, so of two concurrent settlements against
// the same document exactly one lands; the loser observes a conflict
// and reports a failed outcome.
type ReconciliationService struct {
	rentInvoices        invoicing.RentInvoiceRepository
	financialRecords    finance.FinancialRecordRepository
	maintenanceInvoices maintenance.InvoiceRepository
	now                 NowFunc
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	rentInvoices invoicing.RentInvoiceRepository,
	financialRecords finance.FinancialRecordRepository,
	maintenanceInvoices maintenance.InvoiceRepository,
	now NowFunc,
) *ReconciliationService {
	return &ReconciliationService{
		rentInvoices:        rentInvoices,
		financialRecords:    financialRecords,
		maintenanceInvoices: maintenanceInvoices,
		now:                 now,
	}
}

// Reconcile dispatches a settled entry to the updater for its source kind.
// It never returns an error; everything that can go wrong is folded into
// the result.
func (s *ReconciliationService) Reconcile(ctx context.Context, entry *ledger.PaymentEntry) ReconResult {
	if !entry.IsSettled() || entry.Source == nil {
		return ReconResult{Outcome: ReconOutcomeNotApplicable, Source: entry.Source}
	}

	switch entry.Source.Kind {
	case ledger.SourceRentInvoice:
		return s.settleRentInvoice(ctx, entry)
	case ledger.SourceFinancialRecord:
		return s.settleFinancialRecord(ctx, entry)
	case ledger.SourceMaintenanceInvoice:
		return s.settleMaintenanceInvoice(ctx, entry)
	default:
		return ReconResult{
			Outcome: ReconOutcomeFailed,
			Source:  entry.Source,
			Err:     fmt.Errorf("unknown source kind %q", entry.Source.Kind),
		}
	}
}

func (s *ReconciliationService) settleRentInvoice(ctx context.Context, entry *ledger.PaymentEntry) ReconResult {
	result := ReconResult{Source: entry.Source, PaymentAmount: entry.Amount}

	invoice, err := s.rentInvoices.FindByIDForLandlordLocked(ctx, entry.Source.ID, entry.LandlordID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Outcome = ReconOutcomeNotFound
			return result
		}
		result.Outcome = ReconOutcomeFailed
		result.Err = err
		return result
	}

	result.TotalAmount = invoice.TotalPayable()

	if invoice.IsPaid() {
		result.Outcome = ReconOutcomeAlreadyPaid
		return result
	}
	if entry.IsPartial() {
		result.Outcome = ReconOutcomePartial
		return result
	}
	if !ledger.CoversTotal(entry.Amount, result.TotalAmount) {
		result.Outcome = ReconOutcomeShortfall
		return result
	}

	invoice.MarkPaid(s.paidDate(entry), entry.PaymentMethod, s.now())
	if err := s.rentInvoices.Save(ctx, invoice); err != nil {
		result.Outcome = ReconOutcomeFailed
		result.Err = err
		return result
	}

	result.Outcome = ReconOutcomeSettled
	return result
}

func (s *ReconciliationService) settleFinancialRecord(ctx context.Context, entry *ledger.PaymentEntry) ReconResult {
	result := ReconResult{Source: entry.Source, PaymentAmount: entry.Amount}

	record, err := s.financialRecords.FindByIDForLandlordLocked(ctx, entry.Source.ID, entry.LandlordID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Outcome = ReconOutcomeNotFound
			return result
		}
		result.Outcome = ReconOutcomeFailed
		result.Err = err
		return result
	}

	result.TotalAmount = record.Amount

	if record.IsPaid() {
		result.Outcome = ReconOutcomeAlreadyPaid
		return result
	}
	if entry.IsPartial() {
		result.Outcome = ReconOutcomePartial
		return result
	}
	if !ledger.CoversTotal(entry.Amount, record.Amount) {
		result.Outcome = ReconOutcomeShortfall
		return result
	}

	record.MarkPaid(s.paidDate(entry), entry.PaymentMethod, s.now())
	if err := s.financialRecords.Save(ctx, record); err != nil {
		result.Outcome = ReconOutcomeFailed
		result.Err = err
		return result
	}

	result.Outcome = ReconOutcomeSettled

	// A maintenance-typed record mirrors a contractor invoice; settling
	// the record must close that invoice out too.
	if record.IsMaintenanceLinked() {
		chained := s.settleMaintenanceInvoiceByNumber(ctx, entry, record.InvoiceNumber)
		result.Chained = &chained
	}

	return result
}

func (s *ReconciliationService) settleMaintenanceInvoice(ctx context.Context, entry *ledger.PaymentEntry) ReconResult {
	result := ReconResult{Source: entry.Source, PaymentAmount: entry.Amount}

	invoice, err := s.maintenanceInvoices.FindByIDForLandlordLocked(ctx, entry.Source.ID, entry.LandlordID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Outcome = ReconOutcomeNotFound
			return result
		}
		result.Outcome = ReconOutcomeFailed
		result.Err = err
		return result
	}

	return s.finishMaintenanceInvoice(ctx, entry, invoice, result)
}

func (s *ReconciliationService) settleMaintenanceInvoiceByNumber(ctx context.Context, entry *ledger.PaymentEntry, invoiceNumber string) ReconResult {
	result := ReconResult{PaymentAmount: entry.Amount}

	invoice, err := s.maintenanceInvoices.FindByNumberForLandlord(ctx, entry.LandlordID, invoiceNumber)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Outcome = ReconOutcomeNotFound
			return result
		}
		result.Outcome = ReconOutcomeFailed
		result.Err = err
		return result
	}

	result.Source = &ledger.SourceRef{Kind: ledger.SourceMaintenanceInvoice, ID: invoice.ID}
	return s.finishMaintenanceInvoice(ctx, entry, invoice, result)
}

func (s *ReconciliationService) finishMaintenanceInvoice(ctx context.Context, entry *ledger.PaymentEntry, invoice *maintenance.Invoice, result ReconResult) ReconResult {
	result.TotalAmount = invoice.GrandTotal

	if invoice.IsPaid() {
		result.Outcome = ReconOutcomeAlreadyPaid
		return result
	}
	if entry.IsPartial() {
		result.Outcome = ReconOutcomePartial
		return result
	}
	if !ledger.CoversTotal(entry.Amount, invoice.GrandTotal) {
		result.Outcome = ReconOutcomeShortfall
		return result
	}

	invoice.MarkPaid(s.paidDate(entry), entry.PaymentMethod, s.now())
	if err := s.maintenanceInvoices.Save(ctx, invoice); err != nil {
		result.Outcome = ReconOutcomeFailed
		result.Err = err
		return result
	}

	result.Outcome = ReconOutcomeSettled
	return result
}

// paidDate picks the document paid date: the entry's transaction date when
// recorded, otherwise the current time.
func (s *ReconciliationService) paidDate(entry *ledger.PaymentEntry) time.Time {
	if entry.TransactionDate != nil {
		return *entry.TransactionDate
	}
	return s.now()
}
