package dto

import "github.com/omcerp/fuel_accounting_app/internal/core/domain"

// AccountResponse is the API view of one chart account.
type AccountResponse struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	AccountType       string `json:"accountType"`
	Category          string `json:"category"`
	NormalBalance     string `json:"normalBalance"`
	IsHeader          bool   `json:"isHeader"`
	LocalSpecific     bool   `json:"localSpecific"`
	TaxReportingCode  string `json:"taxReportingCode,omitempty"`
	ReportingCategory string `json:"reportingCategory,omitempty"`
	IsActive          bool   `json:"isActive"`
}

// ToAccountResponse converts a domain account.
func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		Code:              a.Code,
		Name:              a.Name,
		AccountType:       string(a.AccountType),
		Category:          a.Category,
		NormalBalance:     string(a.NormalBalance),
		IsHeader:          a.IsHeader,
		LocalSpecific:     a.LocalSpecific,
		TaxReportingCode:  a.TaxReportingCode,
		ReportingCategory: a.ReportingCategory,
		IsActive:          a.IsActive,
	}
}
