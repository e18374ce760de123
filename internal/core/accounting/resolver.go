package accounting

// TaxType identifies a jurisdiction-specific tax or levy.
type TaxType string

const (
	TaxVAT     TaxType = "VAT"
	TaxNHIL    TaxType = "NHIL"
	TaxGETFund TaxType = "GETFUND"
	TaxWHT     TaxType = "WHT"
)

// Resolver maps semantic dimensions (product code, tax type, margin type) to
// concrete chart codes. Resolution is pure and deterministic: unknown inputs
// fall back to the category's unclassified account rather than failing, so
// an unrecognised-but-billable product never blocks posting. The boolean
// return reports the fallback so callers can log it as a data-quality
// signal.
type Resolver struct {
	chart *Chart
}

// NewResolver returns a resolver over the given chart.
func NewResolver(chart *Chart) Resolver {
	return Resolver{chart: chart}
}

// Chart exposes the underlying registry.
func (r Resolver) Chart() *Chart {
	return r.chart
}

// SalesAccount returns the revenue account for a product code.
func (r Resolver) SalesAccount(productCode string) (string, bool) {
	switch productCode {
	case "PMS":
		return CodeFuelSalesPMS, false
	case "AGO":
		return CodeFuelSalesAGO, false
	case "LPG":
		return CodeFuelSalesLPG, false
	default:
		return CodeFuelSalesUnclassified, true
	}
}

// InventoryAccount returns the inventory account for a product code.
func (r Resolver) InventoryAccount(productCode string) (string, bool) {
	switch productCode {
	case "PMS":
		return CodeFuelInventoryPMS, false
	case "AGO":
		return CodeFuelInventoryAGO, false
	case "LPG":
		return CodeFuelInventoryLPG, false
	default:
		return CodeFuelInventory, true
	}
}

// TaxAccount returns the payable account for a tax or levy type.
func (r Resolver) TaxAccount(taxType TaxType) (string, bool) {
	switch taxType {
	case TaxVAT:
		return CodeVATPayable, false
	case TaxNHIL:
		return CodeNHILPayable, false
	case TaxGETFund:
		return CodeGETFundPayable, false
	case TaxWHT:
		return CodeWHTPayable, false
	default:
		return CodeTaxPayableOther, true
	}
}

// MarginAccount returns the expense account for a dealer margin type.
func (r Resolver) MarginAccount(marginType string) (string, bool) {
	switch marginType {
	case "PRIMARY_DISTRIBUTION", "DEALER", "MARKETING":
		return CodeDealerMargins, false
	default:
		return CodeDealerMarginsOther, true
	}
}

// ReceivableAccount returns the receivable account for a claim kind.
func (r Resolver) ReceivableAccount(kind string) (string, bool) {
	switch kind {
	case "UPPF":
		return CodeUPPFReceivable, false
	case "DEALER":
		return CodeDealerAdvances, false
	case "TRADE":
		return CodeAccountsReceivable, false
	default:
		return CodeAccountsReceivable, true
	}
}

// CashAccount returns the settlement cash account.
func (r Resolver) CashAccount() string {
	return CodeCashBank
}
