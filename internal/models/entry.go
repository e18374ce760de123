package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry row.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry mirrors the journal_entries table.
type JournalEntry struct {
	EntryID           string          `json:"entryID"`
	EntryNumber       string          `json:"entryNumber"`
	EntryDate         time.Time       `json:"entryDate"`
	Description       string          `json:"description"`
	Reference         string          `json:"reference"`
	SourceDocument    string          `json:"sourceDocument"`
	SourceDocumentID  string          `json:"sourceDocumentID"`
	TemplateCode      string          `json:"templateCode"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	Status            EntryStatus     `json:"status"`
	PostedBy          string          `json:"postedBy"`
	PostedAt          *time.Time      `json:"postedAt"`
	ReversalReference *string         `json:"reversalReference"`
	ReversalOf        *string         `json:"reversalOf"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// JournalLine mirrors the journal_lines table.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	CostCenter  string          `json:"costCenter"`
	ProjectCode string          `json:"projectCode"`
}
