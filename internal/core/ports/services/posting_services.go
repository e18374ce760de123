package services

import (
	"context"
	"time"

	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	"github.com/omcerp/fuel_accounting_app/internal/dto"
)

// PostingSvcFacade is the operational surface of the accounting engine.
type PostingSvcFacade interface {
	// CreateEntry builds, gates and persists the journal entry for one
	// business event. Redelivery of the same (templateCode,
	// sourceDocumentID) returns the previously created entry.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error)

	// ApproveEntry posts a DRAFT entry. Re-approving an entry already
	// posted by the same approver is a no-op success.
	ApproveEntry(ctx context.Context, entryID, approverID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts the opposite-signed sibling of a
	// POSTED entry and stamps the original REVERSED.
	ReverseEntry(ctx context.Context, entryID, reason, actorID string) (*domain.JournalEntry, error)

	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	GetSummary(ctx context.Context, from, to time.Time, templateCode *string) (*domain.EntrySummary, error)
}

// ChartSvcFacade exposes the chart of accounts to the API layer.
type ChartSvcFacade interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}
