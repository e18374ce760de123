package repositories

import (
	"context"
	"time"

	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
)

// ListEntriesFilter narrows ListEntries. From/To bound entry_date
// inclusively; nil TemplateCode/Status mean "any".
type ListEntriesFilter struct {
	From         time.Time
	To           time.Time
	TemplateCode *string
	Status       *domain.EntryStatus
	Limit        int
	NextToken    *string
}

// EntryRepositoryFacade persists journal entries and their lines. Every
// write happens inside one database transaction: the header, its lines and
// any status flip are atomic, and no caller ever observes a half-written
// entry.
type EntryRepositoryFacade interface {
	// SaveEntry writes the entry and its lines, assigning the per
	// template/day entry number inside the transaction. A violation of the
	// (template_code, source_document_id) unique constraint is returned as
	// apperrors.ErrDuplicate so the caller can fall back to the already
	// persisted entry.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// FindEntryByID returns the entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryBySource returns the entry created for the given
	// (templateCode, sourceDocumentID) pair, or apperrors.ErrNotFound.
	FindEntryBySource(ctx context.Context, templateCode, sourceDocumentID string) (*domain.JournalEntry, error)

	// ListEntries returns entries matching the filter (headers only) plus a
	// pagination token for the next page.
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]domain.JournalEntry, *string, error)

	// MarkPosted flips a DRAFT entry to POSTED, compare-and-swap on the
	// current status. apperrors.ErrConflict when the entry is not DRAFT.
	MarkPosted(ctx context.Context, entryID, approverID string, postedAt time.Time) error

	// SaveReversal atomically inserts the reversing entry and stamps the
	// original REVERSED with a reference to it. apperrors.ErrConflict when
	// the original is no longer POSTED.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string) (*domain.JournalEntry, error)

	// Summarize aggregates entries in [from, to] by template and status.
	Summarize(ctx context.Context, from, to time.Time, templateCode *string) (*domain.EntrySummary, error)
}

// AccountRepositoryFacade reads the persisted chart of accounts.
type AccountRepositoryFacade interface {
	FindAllAccounts(ctx context.Context) ([]domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
}

// TemplateRepositoryFacade reads the persisted template configuration.
type TemplateRepositoryFacade interface {
	FindAllTemplates(ctx context.Context) ([]domain.JournalEntryTemplate, error)
}
