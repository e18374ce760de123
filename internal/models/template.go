package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// JournalEntryTemplate mirrors the journal_entry_templates table. Roles are
// stored as JSONB and decoded by the mapping layer.
type JournalEntryTemplate struct {
	TemplateCode      string           `json:"templateCode"`
	TemplateName      string           `json:"templateName"`
	Description       string           `json:"description"`
	TransactionType   string           `json:"transactionType"`
	DebitRoles        json.RawMessage  `json:"debitRoles"`
	CreditRoles       json.RawMessage  `json:"creditRoles"`
	ApprovalRequired  bool             `json:"approvalRequired"`
	ApprovalThreshold *decimal.Decimal `json:"approvalThreshold"`
	IsActive          bool             `json:"isActive"`
}
