package dto

import (
	"encoding/json"
	"time"

	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest asks the engine to build and post the journal entry for
// one business event. Payload carries the event fields for the transaction
// type and is decoded by the builder.
type CreateEntryRequest struct {
	TransactionType  string          `json:"transactionType" binding:"required,txtype"`
	SourceDocumentID string          `json:"sourceDocumentID" binding:"required"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
	Payload          json.RawMessage `json:"payload" binding:"required"`
}

// ApproveEntryRequest carries the approving actor.
type ApproveEntryRequest struct {
	ApproverID string `json:"approverID" binding:"required"`
}

// ReverseEntryRequest carries the reversal reason and actor.
type ReverseEntryRequest struct {
	Reason  string `json:"reason" binding:"required"`
	ActorID string `json:"actorID" binding:"required"`
}

// LineResponse is one journal line as returned by the API.
type LineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	CostCenter  string          `json:"costCenter,omitempty"`
	ProjectCode string          `json:"projectCode,omitempty"`
}

// EntryResponse is the API view of a journal entry. Status tells callers
// whether the entry is POSTED or DRAFT pending approval.
type EntryResponse struct {
	EntryID           string          `json:"entryID"`
	EntryNumber       string          `json:"entryNumber"`
	EntryDate         time.Time       `json:"entryDate"`
	Description       string          `json:"description"`
	Reference         string          `json:"reference"`
	SourceDocument    string          `json:"sourceDocument"`
	SourceDocumentID  string          `json:"sourceDocumentID"`
	TemplateCode      string          `json:"templateCode"`
	Lines             []LineResponse  `json:"lines,omitempty"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	Status            string          `json:"status"`
	PostedBy          string          `json:"postedBy,omitempty"`
	PostedAt          *time.Time      `json:"postedAt,omitempty"`
	ReversalReference *string         `json:"reversalReference,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// ListEntriesParams filters and paginates ListEntries.
type ListEntriesParams struct {
	From         time.Time
	To           time.Time
	TemplateCode *string
	Status       *string
	Limit        int
	NextToken    *string
}

// ListEntriesResponse is one page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain line.
func ToLineResponse(l domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:      l.LineID,
		AccountCode: l.AccountCode,
		Debit:       l.Debit,
		Credit:      l.Credit,
		Description: l.Description,
		Reference:   l.Reference,
		CostCenter:  l.CostCenter,
		ProjectCode: l.ProjectCode,
	}
}

// ToEntryResponse converts a domain entry, including lines when present.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		EntryDate:         e.EntryDate,
		Description:       e.Description,
		Reference:         e.Reference,
		SourceDocument:    e.SourceDocument,
		SourceDocumentID:  e.SourceDocumentID,
		TemplateCode:      e.TemplateCode,
		TotalDebit:        e.TotalDebit,
		TotalCredit:       e.TotalCredit,
		Status:            string(e.Status),
		PostedBy:          e.PostedBy,
		PostedAt:          e.PostedAt,
		ReversalReference: e.ReversalReference,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToLineResponse(l)
		}
	}
	return resp
}
