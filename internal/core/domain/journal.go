package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"    // Awaiting human approval
	Posted   EntryStatus = "POSTED"   // Authoritative against the ledger
	Reversed EntryStatus = "REVERSED" // Terminal; corrected by a sibling entry
)

// SystemActor is recorded as postedBy on entries that clear the approval
// gate automatically.
const SystemActor = "system-auto"

// JournalLine is a single debit or credit posting within a JournalEntry.
// Exactly one of Debit/Credit is non-zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`   // Source document number
	CostCenter  string          `json:"costCenter"`  // Dimension tag, e.g. station
	ProjectCode string          `json:"projectCode"` // Dimension tag, e.g. pricing window
}

// JournalEntry is a balanced set of postings produced from one business
// event. Entries are never mutated in place: DRAFT entries become POSTED via
// approval, POSTED entries are corrected by a reversing sibling.
type JournalEntry struct {
	EntryID          string          `json:"entryID"`
	EntryNumber      string          `json:"entryNumber"` // Human readable, sequential per template/day
	EntryDate        time.Time       `json:"entryDate"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	SourceDocument   string          `json:"sourceDocument"`   // Source document type, e.g. FUEL_INVOICE
	SourceDocumentID string          `json:"sourceDocumentID"` // Idempotency key together with TemplateCode
	TemplateCode     string          `json:"templateCode"`
	Lines            []JournalLine   `json:"lines,omitempty"`
	TotalDebit       decimal.Decimal `json:"totalDebit"`
	TotalCredit      decimal.Decimal `json:"totalCredit"`
	Status           EntryStatus     `json:"status"`
	PostedBy         string          `json:"postedBy,omitempty"`
	PostedAt         *time.Time      `json:"postedAt,omitempty"`
	ReversalReference *string        `json:"reversalReference,omitempty"` // EntryID of the reversing entry
	ReversalOf        *string        `json:"reversalOf,omitempty"`        // EntryID of the entry this one reverses
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
}

// FormatEntryNumber builds the human-readable entry number for the given
// template, date and per-day sequence, e.g. "JE-FUEL_SALE-20250901-007".
func FormatEntryNumber(templateCode string, date time.Time, seq int) string {
	return fmt.Sprintf("JE-%s-%s-%03d", templateCode, date.Format("20060102"), seq)
}
