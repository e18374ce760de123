package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide indicates which side of an entry increases an account.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// Account is one row of the chart of accounts. The chart is seeded once at
// tenant initialization and is immutable during normal operation; accounts
// are deactivated, never deleted.
type Account struct {
	Code                    string      `json:"code"` // Stable identifier, e.g. "1210"
	Name                    string      `json:"name"`
	AccountType             AccountType `json:"accountType"`
	Category                string      `json:"category"` // Free-form sub-classification, e.g. CURRENT_ASSET
	NormalBalance           BalanceSide `json:"normalBalance"`
	IsHeader                bool        `json:"isHeader"` // Non-postable rollup account
	LocalSpecific           bool        `json:"localSpecific"`
	RequiresComplianceCheck bool        `json:"requiresComplianceCheck"`
	TaxReportingCode        string      `json:"taxReportingCode,omitempty"`
	ReportingCategory       string      `json:"reportingCategory,omitempty"`
	IsActive                bool        `json:"isActive"`
}

// Postable reports whether journal lines may be written against the account.
func (a Account) Postable() bool {
	return a.IsActive && !a.IsHeader
}
