package mapping

import (
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	"github.com/omcerp/fuel_accounting_app/internal/models"
)

// ToModelAccount converts a domain Account to its model form.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		Code:                    d.Code,
		Name:                    d.Name,
		AccountType:             string(d.AccountType),
		Category:                d.Category,
		NormalBalance:           string(d.NormalBalance),
		IsHeader:                d.IsHeader,
		LocalSpecific:           d.LocalSpecific,
		RequiresComplianceCheck: d.RequiresComplianceCheck,
		TaxReportingCode:        d.TaxReportingCode,
		ReportingCategory:       d.ReportingCategory,
		IsActive:                d.IsActive,
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		Code:                    m.Code,
		Name:                    m.Name,
		AccountType:             domain.AccountType(m.AccountType),
		Category:                m.Category,
		NormalBalance:           domain.BalanceSide(m.NormalBalance),
		IsHeader:                m.IsHeader,
		LocalSpecific:           m.LocalSpecific,
		RequiresComplianceCheck: m.RequiresComplianceCheck,
		TaxReportingCode:        m.TaxReportingCode,
		ReportingCategory:       m.ReportingCategory,
		IsActive:                m.IsActive,
	}
}
