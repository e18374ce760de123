package models

// Account mirrors the accounts table, the persisted copy of the chart of
// accounts used for reporting joins.
type Account struct {
	Code                    string `json:"code"`
	Name                    string `json:"name"`
	AccountType             string `json:"accountType"`
	Category                string `json:"category"`
	NormalBalance           string `json:"normalBalance"`
	IsHeader                bool   `json:"isHeader"`
	LocalSpecific           bool   `json:"localSpecific"`
	RequiresComplianceCheck bool   `json:"requiresComplianceCheck"`
	TaxReportingCode        string `json:"taxReportingCode"`
	ReportingCategory       string `json:"reportingCategory"`
	IsActive                bool   `json:"isActive"`
}
