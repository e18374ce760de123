package accounting

import "github.com/shopspring/decimal"

// LevyRates holds the tax and levy rates applied by the entry builder. Rates
// are configuration, not constants: regulatory rates change, so deployments
// override these via the LEVY_* settings.
type LevyRates struct {
	VAT            decimal.Decimal // Value added tax, fraction of base amount
	NHIL           decimal.Decimal // National Health Insurance Levy
	GETFund        decimal.Decimal // Ghana Education Trust Fund levy
	WithholdingTax decimal.Decimal // WHT on dealer payments
}

// DefaultLevyRates returns the rates the engine ships with.
func DefaultLevyRates() LevyRates {
	return LevyRates{
		VAT:            decimal.NewFromFloat(0.125),
		NHIL:           decimal.NewFromFloat(0.025),
		GETFund:        decimal.NewFromFloat(0.025),
		WithholdingTax: decimal.NewFromFloat(0.075),
	}
}
