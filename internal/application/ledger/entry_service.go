package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentmanager/backend/internal/domain/ledger"
	"github.com/rentmanager/backend/internal/domain/shared"
)

// NowFunc supplies the current time. Injected so tests can pin the clock.
type NowFunc func() time.Time

// PaymentEntryService provides application-level payment ledger operations.
// The ledger row is the source of truth: reconciliation runs after the
// entry is persisted and its outcome is logged and discarded, so a
// downstream document failure never undoes a recorded payment.
type PaymentEntryService struct {
	entries ledger.PaymentEntryRepository
	norm    *EntryNormalizer
	linker  SourceLinker
	recon   *ReconciliationService
	logger  *zap.Logger
	now     NowFunc
}

// NewPaymentEntryService creates a new PaymentEntryService
func NewPaymentEntryService(
	entries ledger.PaymentEntryRepository,
	norm *EntryNormalizer,
	linker SourceLinker,
	recon *ReconciliationService,
	logger *zap.Logger,
	now NowFunc,
) *PaymentEntryService {
	return &PaymentEntryService{
		entries: entries,
		norm:    norm,
		linker:  linker,
		recon:   recon,
		logger:  logger,
		now:     now,
	}
}

// CreateEntry records a new payment on the ledger. If the entry lands in a
// settled status the reconciliation path runs afterwards, best-effort.
func (s *PaymentEntryService) CreateEntry(ctx context.Context, landlordID uuid.UUID, req CreateEntryRequest) (*EntryResponse, error) {
	entry, err := s.norm.Normalize(ctx, landlordID, req)
	if err != nil {
		return nil, err
	}

	if err := s.entries.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.settle(ctx, entry)

	return toEntryResponse(entry), nil
}

// CaptureEntry settles a previously recorded entry
func (s *PaymentEntryService) CaptureEntry(ctx context.Context, landlordID, entryID uuid.UUID, req CaptureEntryRequest) (*EntryResponse, error) {
	entry, err := s.entries.FindByIDForLandlord(ctx, entryID, landlordID)
	if err != nil {
		return nil, err
	}

	status := ledger.EntryStatus(strings.TrimSpace(req.Status))
	if err := entry.Capture(status, req.TransactionDate, req.PaymentMethod, req.ReferenceNumber, req.Metadata, s.now()); err != nil {
		return nil, err
	}

	if err := s.entries.SaveWithLock(ctx, entry); err != nil {
		return nil, err
	}

	s.settle(ctx, entry)

	return toEntryResponse(entry), nil
}

// VoidEntry moves an entry into a terminal status
func (s *PaymentEntryService) VoidEntry(ctx context.Context, landlordID, entryID uuid.UUID, req VoidEntryRequest) (*EntryResponse, error) {
	entry, err := s.entries.FindByIDForLandlord(ctx, entryID, landlordID)
	if err != nil {
		return nil, err
	}

	status := ledger.EntryStatus(strings.TrimSpace(req.Status))
	if err := entry.Void(status, req.VoidedAt, req.Reason, req.Metadata, s.now()); err != nil {
		return nil, err
	}

	if err := s.entries.SaveWithLock(ctx, entry); err != nil {
		return nil, err
	}

	return toEntryResponse(entry), nil
}

// GetEntry returns a single ledger entry
func (s *PaymentEntryService) GetEntry(ctx context.Context, landlordID, entryID uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entries.FindByIDForLandlord(ctx, entryID, landlordID)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// ListEntries returns ledger entries matching the filter
func (s *PaymentEntryService) ListEntries(ctx context.Context, landlordID uuid.UUID, filter EntryListFilter) ([]*EntryResponse, int64, error) {
	domainFilter, err := toDomainFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	entries, total, err := s.entries.FindByLandlord(ctx, landlordID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = toEntryResponse(e)
	}
	return responses, total, nil
}

// settle runs the post-persist reconciliation path for a settled entry:
// auto-link the source pointer when it is missing, then propagate onto the
// linked document. Nothing here may fail the caller; every outcome is
// logged and dropped.
func (s *PaymentEntryService) settle(ctx context.Context, entry *ledger.PaymentEntry) {
	if !entry.IsSettled() {
		return
	}

	if entry.Source == nil {
		ref, err := s.linker.Link(ctx, entry)
		if err != nil {
			s.logger.Error("source auto-link failed, entry left unlinked",
				zap.String("entry_id", entry.ID.String()),
				zap.Error(err))
			return
		}
		if ref == nil {
			return
		}
		entry.SetSource(ref)
		if err := s.entries.Save(ctx, entry); err != nil {
			s.logger.Error("failed to persist auto-linked source pointer",
				zap.String("entry_id", entry.ID.String()),
				zap.Error(err))
			return
		}
	}

	result := s.recon.Reconcile(ctx, entry)
	result.Log(s.logger, entry.ID)
}

func toDomainFilter(filter EntryListFilter) (ledger.EntryFilter, error) {
	out := ledger.EntryFilter{
		TenantUnitID: filter.TenantUnitID,
		Unlinked:     filter.Unlinked,
		Search:       strings.TrimSpace(filter.Search),
		From:         filter.FromDate,
		To:           filter.ToDate,
	}

	if filter.PaymentType != "" {
		pt := ledger.PaymentType(filter.PaymentType)
		if _, err := ledger.DefinitionFor(pt); err != nil {
			return ledger.EntryFilter{}, err
		}
		out.PaymentType = &pt
	}
	if filter.Direction != "" {
		dir := ledger.FlowDirection(filter.Direction)
		if !dir.IsValid() {
			return ledger.EntryFilter{}, shared.NewValidationError("direction", "Invalid flow direction filter")
		}
		out.Direction = &dir
	}
	if filter.Status != "" {
		st := ledger.EntryStatus(filter.Status)
		if !st.IsValid() {
			return ledger.EntryFilter{}, shared.NewValidationError("status", "Invalid payment status filter")
		}
		out.Status = &st
	}
	if filter.SourceType != "" {
		kind := ledger.SourceKind(filter.SourceType)
		if !kind.IsValid() {
			return ledger.EntryFilter{}, shared.NewValidationError("source_type", "Invalid source type filter")
		}
		out.SourceKind = &kind
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	out.Limit = pageSize
	out.Offset = (page - 1) * pageSize

	return out, nil
}
