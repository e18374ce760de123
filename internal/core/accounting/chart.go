// Package accounting holds the immutable configuration the posting engine is
// parameterised with: the chart of accounts, the semantic account resolver,
// the journal entry template catalog and the levy rates. Everything here is
// constructed once at process start and passed by reference into the
// services; nothing does I/O.
package accounting

import "github.com/omcerp/fuel_accounting_app/internal/core/domain"

// Well-known chart codes for Ghana OMC operations. Codes are stable
// identifiers; resolution goes through the Resolver rather than these
// constants wherever the account depends on a product, tax or margin type.
const (
	CodeCashBank           = "1000"
	CodeAccountsReceivable = "1200"
	CodeUPPFReceivable     = "1250"
	CodeDealerAdvances     = "1260"
	CodeFuelInventory      = "1400"
	CodeFuelInventoryPMS   = "1410"
	CodeFuelInventoryAGO   = "1420"
	CodeFuelInventoryLPG   = "1430"
	CodePrepaidExpenses    = "1500"
	CodeFixedAssets        = "1800"

	CodeAccountsPayable = "2000"
	CodeAccruedExpenses = "2100"
	CodeVATPayable      = "2310"
	CodeNHILPayable     = "2320"
	CodeGETFundPayable  = "2330"
	CodeWHTPayable      = "2340"
	CodeTaxPayableOther = "2390"
	CodeDealerPayable   = "2400"
	CodeLoanPayable     = "2500"

	CodeShareCapital     = "3000"
	CodeRetainedEarnings = "3500"

	CodeFuelSalesPMS          = "4100"
	CodeFuelSalesAGO          = "4110"
	CodeFuelSalesLPG          = "4120"
	CodeFuelSalesUnclassified = "4190"
	CodeUPPFIncome            = "4200"
	CodeInterestIncome        = "4300"

	CodeCostOfSales          = "5000"
	CodeDealerMargins        = "5200"
	CodeDealerMarginsOther   = "5290"
	CodeOperatingExpenses    = "6000"
	CodeInterestExpense      = "7000"
)

// Chart is the registry of valid ledger accounts, keyed by code. It is
// immutable after construction.
type Chart struct {
	accounts map[string]domain.Account
	ordered  []string
}

// NewChart builds a registry from the given accounts. Later duplicates of a
// code replace earlier ones.
func NewChart(accounts []domain.Account) *Chart {
	c := &Chart{accounts: make(map[string]domain.Account, len(accounts))}
	for _, a := range accounts {
		if _, seen := c.accounts[a.Code]; !seen {
			c.ordered = append(c.ordered, a.Code)
		}
		c.accounts[a.Code] = a
	}
	return c
}

// Account returns the account for code. The boolean is false when the code
// is not part of the chart.
func (c *Chart) Account(code string) (domain.Account, bool) {
	a, ok := c.accounts[code]
	return a, ok
}

// Accounts returns all accounts in seeding order.
func (c *Chart) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(c.ordered))
	for _, code := range c.ordered {
		out = append(out, c.accounts[code])
	}
	return out
}

// DefaultChart returns the standard chart for Ghana OMC operations.
func DefaultChart() *Chart {
	asset := func(code, name, category string) domain.Account {
		return domain.Account{Code: code, Name: name, AccountType: domain.Asset, Category: category, NormalBalance: domain.DebitSide, IsActive: true}
	}
	liability := func(code, name, category string) domain.Account {
		return domain.Account{Code: code, Name: name, AccountType: domain.Liability, Category: category, NormalBalance: domain.CreditSide, IsActive: true}
	}
	equity := func(code, name string) domain.Account {
		return domain.Account{Code: code, Name: name, AccountType: domain.Equity, Category: "EQUITY", NormalBalance: domain.CreditSide, IsActive: true}
	}
	revenue := func(code, name, category string) domain.Account {
		return domain.Account{Code: code, Name: name, AccountType: domain.Revenue, Category: category, NormalBalance: domain.CreditSide, IsActive: true}
	}
	expense := func(code, name, category string) domain.Account {
		return domain.Account{Code: code, Name: name, AccountType: domain.Expense, Category: category, NormalBalance: domain.DebitSide, IsActive: true}
	}

	accounts := []domain.Account{
		asset(CodeCashBank, "Cash at Bank", "CURRENT_ASSET"),
		asset(CodeAccountsReceivable, "Accounts Receivable - Trade", "CURRENT_ASSET"),
		asset(CodeUPPFReceivable, "UPPF Claims Receivable", "CURRENT_ASSET"),
		asset(CodeDealerAdvances, "Dealer Advances/Loans", "CURRENT_ASSET"),
		asset(CodeFuelInventory, "Fuel Inventory", "CURRENT_ASSET"),
		asset(CodeFuelInventoryPMS, "Fuel Inventory - PMS", "CURRENT_ASSET"),
		asset(CodeFuelInventoryAGO, "Fuel Inventory - AGO", "CURRENT_ASSET"),
		asset(CodeFuelInventoryLPG, "Fuel Inventory - LPG", "CURRENT_ASSET"),
		asset(CodePrepaidExpenses, "Prepaid Expenses", "CURRENT_ASSET"),
		asset(CodeFixedAssets, "Fixed Assets", "NON_CURRENT_ASSET"),

		liability(CodeAccountsPayable, "Accounts Payable", "CURRENT_LIABILITY"),
		liability(CodeAccruedExpenses, "Accrued Expenses", "CURRENT_LIABILITY"),
		liability(CodeVATPayable, "VAT Payable", "TAX_LIABILITY"),
		liability(CodeNHILPayable, "NHIL Payable", "TAX_LIABILITY"),
		liability(CodeGETFundPayable, "GETFUND Payable", "TAX_LIABILITY"),
		liability(CodeWHTPayable, "Withholding Tax Payable", "TAX_LIABILITY"),
		liability(CodeTaxPayableOther, "Other Taxes Payable", "TAX_LIABILITY"),
		liability(CodeDealerPayable, "Dealer Payable", "CURRENT_LIABILITY"),
		liability(CodeLoanPayable, "Dealer Loans Payable", "CURRENT_LIABILITY"),

		equity(CodeShareCapital, "Share Capital"),
		equity(CodeRetainedEarnings, "Retained Earnings"),

		revenue(CodeFuelSalesPMS, "Fuel Sales - PMS", "FUEL_SALES"),
		revenue(CodeFuelSalesAGO, "Fuel Sales - AGO", "FUEL_SALES"),
		revenue(CodeFuelSalesLPG, "Fuel Sales - LPG", "FUEL_SALES"),
		revenue(CodeFuelSalesUnclassified, "Fuel Sales - Unclassified", "FUEL_SALES"),
		revenue(CodeUPPFIncome, "UPPF Income", "REGULATORY_INCOME"),
		revenue(CodeInterestIncome, "Interest Income", "OTHER_INCOME"),

		expense(CodeCostOfSales, "Cost of Sales", "COST_OF_GOODS_SOLD"),
		expense(CodeDealerMargins, "Dealer Margins", "COST_OF_GOODS_SOLD"),
		expense(CodeDealerMarginsOther, "Dealer Margins - Unclassified", "COST_OF_GOODS_SOLD"),
		expense(CodeOperatingExpenses, "Operating Expenses", "OPERATING"),
		expense(CodeInterestExpense, "Interest Expense", "FINANCE"),
	}

	// Jurisdiction flags: the UPPF and levy accounts are Ghana-specific and
	// feed regulatory filings downstream.
	flagged := map[string]string{
		CodeUPPFReceivable: "UPPF",
		CodeUPPFIncome:     "UPPF",
		CodeVATPayable:     "VAT",
		CodeNHILPayable:    "NHIL",
		CodeGETFundPayable: "GETFUND",
		CodeWHTPayable:     "WHT",
	}
	for i := range accounts {
		if taxCode, ok := flagged[accounts[i].Code]; ok {
			accounts[i].LocalSpecific = true
			accounts[i].RequiresComplianceCheck = true
			accounts[i].TaxReportingCode = taxCode
		}
	}
	return NewChart(accounts)
}
