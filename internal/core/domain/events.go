package domain

import "github.com/shopspring/decimal"

// Business event payloads consumed by the entry builder. Field names match
// the JSON emitted by the upstream business services.

// FuelSaleEvent records one fuel invoice. Tax and levy amounts are derived
// from the base amount (volume x basePrice) by the builder.
type FuelSaleEvent struct {
	StationID     string          `json:"stationId"`
	ProductCode   string          `json:"productCode"` // PMS, AGO, LPG...
	InvoiceNumber string          `json:"invoiceNumber"`
	Volume        decimal.Decimal `json:"volume"`
	BasePrice     decimal.Decimal `json:"basePrice"`
}

// UPPFClaimEvent recognises a UPPF claim receivable for a pricing window.
type UPPFClaimEvent struct {
	ClaimNumber string          `json:"claimNumber"`
	WindowID    string          `json:"windowId"`
	ClaimAmount decimal.Decimal `json:"claimAmount"`
}

// DealerMarginEvent accrues a dealer margin payable.
type DealerMarginEvent struct {
	DealerID      string          `json:"dealerId"`
	StationID     string          `json:"stationId"`
	AccrualNumber string          `json:"accrualNumber"`
	MarginType    string          `json:"marginType"` // PRIMARY_DISTRIBUTION, MARKETING...
	MarginAmount  decimal.Decimal `json:"marginAmount"`
}

// DealerSettlementEvent settles a dealer payable, optionally deducting a
// loan instalment, withholding tax and an interest component.
type DealerSettlementEvent struct {
	DealerID          string          `json:"dealerId"`
	StationID         string          `json:"stationId"`
	SettlementNumber  string          `json:"settlementNumber"`
	PaymentReference  string          `json:"paymentReference"`
	GrossMargin       decimal.Decimal `json:"grossMargin"`
	LoanDeduction     decimal.Decimal `json:"loanDeduction"`
	WithholdingTax    decimal.Decimal `json:"withholdingTax"`
	InterestComponent decimal.Decimal `json:"interestComponent"`
	NetPayment        decimal.Decimal `json:"netPayment"`
}

// LoanDisbursementEvent records a loan paid out to a dealer.
type LoanDisbursementEvent struct {
	DealerID              string          `json:"dealerId"`
	StationID             string          `json:"stationId"`
	LoanNumber            string          `json:"loanNumber"`
	LoanType              string          `json:"loanType"`
	DisbursementReference string          `json:"disbursementReference"`
	LoanAmount            decimal.Decimal `json:"loanAmount"`
}

// UPPFSettlementEvent records the NPA's settlement of a previously
// recognised claim. The settlement may differ from the original claim; the
// variance is posted to UPPF income rather than absorbed by rounding.
type UPPFSettlementEvent struct {
	SubmissionReference string          `json:"submissionReference"`
	NPAPaymentReference string          `json:"npaPaymentReference"`
	WindowID            string          `json:"windowId"`
	SettlementAmount    decimal.Decimal `json:"settlementAmount"`
	OriginalClaimAmount decimal.Decimal `json:"originalClaimAmount"`
}
