package domain

import "github.com/shopspring/decimal"

// AccountSelector names how a template role finds its concrete account: a
// literal chart code, or a placeholder resolved per product/tax/margin type
// at build time.
type AccountSelector string

const (
	// Literal selectors reference a chart code directly via Literal.
	SelectorLiteral AccountSelector = "LITERAL"
	// Resolved selectors are mapped through the account resolver using the
	// event's product, tax or margin type.
	SelectorSalesByProduct AccountSelector = "SALES_BY_PRODUCT"
	SelectorTaxByType      AccountSelector = "TAX_BY_TYPE"
	SelectorMarginByType   AccountSelector = "MARGIN_BY_TYPE"
)

// TemplateRole is one debit or credit participant of a template. AmountField
// names the event payload field that feeds the line; roles whose amount is
// zero or absent are omitted from the built entry.
type TemplateRole struct {
	Selector    AccountSelector `json:"selector"`
	Literal     string          `json:"literal,omitempty"` // Chart code when Selector == LITERAL
	AmountField string          `json:"amountField"`
}

// JournalEntryTemplate is the declarative description of a transaction
// type's journal entry. Templates are configuration: loaded at startup,
// read-only during processing. Entries reference templates by code so later
// template changes never retroactively alter history.
//
// DebitRoles/CreditRoles describe the posting shape; line construction
// itself lives in the per-type entry builders, which only read the
// approval fields at runtime. A change to a template's shape must be
// mirrored in the matching builder, and the catalog tests hold the two in
// sync by resolving every role against the chart.
type JournalEntryTemplate struct {
	TemplateCode      string           `json:"templateCode"`
	TemplateName      string           `json:"templateName"`
	Description       string           `json:"description"`
	TransactionType   string           `json:"transactionType"`
	DebitRoles        []TemplateRole   `json:"debitRoles"`
	CreditRoles       []TemplateRole   `json:"creditRoles"`
	ApprovalRequired  bool             `json:"approvalRequired"`
	ApprovalThreshold *decimal.Decimal `json:"approvalThreshold,omitempty"`
	IsActive          bool             `json:"isActive"`
}

// NeedsApproval reports whether an entry of the given total debit must wait
// for human approval before posting.
func (t JournalEntryTemplate) NeedsApproval(totalDebit decimal.Decimal) bool {
	if !t.ApprovalRequired {
		return false
	}
	if t.ApprovalThreshold == nil {
		return true
	}
	return totalDebit.GreaterThanOrEqual(*t.ApprovalThreshold)
}
