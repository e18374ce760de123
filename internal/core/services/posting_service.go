package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
	"github.com/omcerp/fuel_accounting_app/internal/dto"
	"github.com/omcerp/fuel_accounting_app/internal/middleware"
)

// postingService implements the posting/approval/reversal state machine on
// top of the entry builder and repository.
type postingService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	builder   *EntryBuilder
	catalog   *accounting.TemplateCatalog
	notifier  portssvc.EntryNotifier
}

// NewPostingService creates the posting service.
func NewPostingService(entryRepo portsrepo.EntryRepositoryFacade, builder *EntryBuilder, catalog *accounting.TemplateCatalog, notifier portssvc.EntryNotifier) portssvc.PostingSvcFacade {
	return &postingService{
		entryRepo: entryRepo,
		builder:   builder,
		catalog:   catalog,
		notifier:  notifier,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// CreateEntry implements portssvc.PostingSvcFacade. The flow is: idempotency
// check, build, approval gate, persist, notify. Redelivered events return
// the previously created entry; a concurrent duplicate insert loses against
// the storage-level unique constraint and falls back to the winner's entry.
func (s *postingService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	template, ok := s.catalog.Lookup(req.TransactionType)
	if !ok {
		logger.Error("No journal entry template configured for transaction type",
			slog.String("transaction_type", req.TransactionType),
			slog.String("source_document_id", req.SourceDocumentID))
		return nil, fmt.Errorf("%w: transaction type %s", ErrTemplateNotFound, req.TransactionType)
	}

	// Idempotent replay: the upstream bus delivers at least once.
	existing, err := s.entryRepo.FindEntryBySource(ctx, template.TemplateCode, req.SourceDocumentID)
	if err == nil {
		logger.Info("Duplicate event delivery, returning existing entry",
			slog.String("entry_id", existing.EntryID),
			slog.String("source_document_id", req.SourceDocumentID))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing entry: %w", err)
	}

	entry, fallbacks, err := s.builder.Build(BuildInput{
		TransactionType:  req.TransactionType,
		SourceDocumentID: req.SourceDocumentID,
		EffectiveDate:    req.EffectiveDate,
		CreatedBy:        actorID,
		Payload:          req.Payload,
	})
	if err != nil {
		return nil, err
	}
	for _, note := range fallbacks {
		logger.Warn("Account resolution fell back to generic account", slog.String("detail", note), slog.String("source_document_id", req.SourceDocumentID))
	}

	now := time.Now().UTC()
	if template.NeedsApproval(entry.TotalDebit) {
		entry.Status = domain.Draft
	} else {
		entry.Status = domain.Posted
		entry.PostedBy = domain.SystemActor
		entry.PostedAt = &now
	}

	saved, err := s.entryRepo.SaveEntry(ctx, *entry)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the check-then-insert race; the unique constraint on
			// (template_code, source_document_id) fails closed.
			winner, findErr := s.entryRepo.FindEntryBySource(ctx, template.TemplateCode, req.SourceDocumentID)
			if findErr != nil {
				return nil, fmt.Errorf("duplicate entry detected but winner not found: %w", findErr)
			}
			logger.Info("Concurrent duplicate insert, returning existing entry", slog.String("entry_id", winner.EntryID))
			return winner, nil
		}
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("source_document_id", req.SourceDocumentID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.notifier.EntryCreated(ctx, *saved, saved.Status == domain.Draft)
	if saved.Status == domain.Posted {
		s.notifier.EntryPosted(ctx, *saved)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.EntryNumber),
		slog.String("status", string(saved.Status)),
		slog.String("total_debit", saved.TotalDebit.StringFixed(2)))
	return saved, nil
}

// ApproveEntry implements portssvc.PostingSvcFacade.
func (s *postingService) ApproveEntry(ctx context.Context, entryID, approverID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	switch entry.Status {
	case domain.Posted:
		// Retried approvals by the same approver succeed silently.
		if entry.PostedBy == approverID {
			logger.Info("Entry already posted by same approver, approval is a no-op", slog.String("entry_id", entryID))
			return entry, nil
		}
		return nil, fmt.Errorf("%w: entry %s is already POSTED", ErrInvalidStateTransition, entryID)
	case domain.Reversed:
		return nil, fmt.Errorf("%w: entry %s is REVERSED", ErrInvalidStateTransition, entryID)
	case domain.Draft:
		// Fall through to the compare-and-swap below.
	default:
		return nil, fmt.Errorf("%w: entry %s has unknown status %s", ErrInvalidStateTransition, entryID, entry.Status)
	}

	now := time.Now().UTC()
	if err := s.entryRepo.MarkPosted(ctx, entryID, approverID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent approval won the CAS. Idempotent only when the
			// winner is the same approver.
			current, findErr := s.entryRepo.FindEntryByID(ctx, entryID)
			if findErr == nil && current.Status == domain.Posted && current.PostedBy == approverID {
				return current, nil
			}
			return nil, fmt.Errorf("%w: entry %s is no longer DRAFT", ErrInvalidStateTransition, entryID)
		}
		logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	entry.Status = domain.Posted
	entry.PostedBy = approverID
	entry.PostedAt = &now

	s.notifier.EntryApproved(ctx, *entry, approverID)
	s.notifier.EntryPosted(ctx, *entry)

	logger.Info("Journal entry approved and posted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("approved_by", approverID))
	return entry, nil
}

// ReverseEntry implements portssvc.PostingSvcFacade. The reversing sibling
// posts immediately; reversals are never subject to the approval gate since
// they undo an already-approved position.
func (s *postingService) ReverseEntry(ctx context.Context, entryID, reason, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.Status != domain.Posted {
		return nil, fmt.Errorf("%w: only POSTED entries can be reversed, entry %s is %s", ErrInvalidStateTransition, entryID, original.Status)
	}

	now := time.Now().UTC()
	reversal := domain.JournalEntry{
		EntryID:          uuid.NewString(),
		EntryDate:        now,
		Description:      fmt.Sprintf("REVERSAL: %s - %s", original.Description, reason),
		Reference:        original.Reference,
		SourceDocument:   original.SourceDocument,
		SourceDocumentID: original.SourceDocumentID,
		TemplateCode:     accounting.ReversalTemplateCode,
		TotalDebit:       original.TotalCredit,
		TotalCredit:      original.TotalDebit,
		Status:           domain.Posted,
		PostedBy:         actorID,
		PostedAt:         &now,
		ReversalOf:       &original.EntryID,
		CreatedAt:        now,
		CreatedBy:        actorID,
	}
	reversal.Lines = make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		reversal.Lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     reversal.EntryID,
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: fmt.Sprintf("REVERSAL: %s", line.Description),
			Reference:   line.Reference,
			CostCenter:  line.CostCenter,
			ProjectCode: line.ProjectCode,
		}
	}

	saved, err := s.entryRepo.SaveReversal(ctx, reversal, original.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s is no longer POSTED", ErrInvalidStateTransition, entryID)
		}
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to reverse entry %s: %w", entryID, err)
	}

	s.notifier.EntryReversed(ctx, *original, *saved, reason)
	s.notifier.EntryPosted(ctx, *saved)

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversal_entry_id", saved.EntryID),
		slog.String("reversal_entry_number", saved.EntryNumber))
	return saved, nil
}

// GetEntry implements portssvc.PostingSvcFacade.
func (s *postingService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries implements portssvc.PostingSvcFacade.
func (s *postingService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ListEntriesFilter{
		From:         params.From,
		To:           params.To,
		TemplateCode: params.TemplateCode,
		Limit:        params.Limit,
		NextToken:    params.NextToken,
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		switch status {
		case domain.Draft, domain.Posted, domain.Reversed:
			filter.Status = &status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

// GetSummary implements portssvc.PostingSvcFacade.
func (s *postingService) GetSummary(ctx context.Context, from, to time.Time, templateCode *string) (*domain.EntrySummary, error) {
	summary, err := s.entryRepo.Summarize(ctx, from, to, templateCode)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize entries: %w", err)
	}
	return summary, nil
}
