package services

import (
	"context"

	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
)

// Outbound event names consumed by notification and reporting collaborators.
const (
	EventEntryCreated  = "journal.entry.created"
	EventEntryPosted   = "journal.entry.posted"
	EventEntryApproved = "journal.entry.approved"
	EventEntryReversed = "journal.entry.reversed"
)

// EntryNotifier receives lifecycle events for journal entries. Delivery is
// fire-and-forget; failures must not affect posting.
type EntryNotifier interface {
	EntryCreated(ctx context.Context, entry domain.JournalEntry, requiresApproval bool)
	EntryPosted(ctx context.Context, entry domain.JournalEntry)
	EntryApproved(ctx context.Context, entry domain.JournalEntry, approverID string)
	EntryReversed(ctx context.Context, original, reversal domain.JournalEntry, reason string)
}
