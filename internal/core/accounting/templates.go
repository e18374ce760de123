package accounting

import (
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Template codes. ReversalTemplateCode is a pseudo template used only for
// numbering reversing entries; it never appears in the catalog.
const (
	TemplateFuelSale         = "FUEL_SALE"
	TemplateUPPFClaim        = "UPPF_CLAIM"
	TemplateDealerMargin     = "DEALER_MARGIN"
	TemplateDealerSettlement = "DEALER_SETTLEMENT"
	TemplateLoanDisbursement = "LOAN_DISBURSEMENT"
	TemplateUPPFSettlement   = "UPPF_SETTLEMENT"
	ReversalTemplateCode     = "REVERSAL"
)

// TemplateCatalog is the read-only set of journal entry templates, keyed by
// transaction type.
type TemplateCatalog struct {
	byTransactionType map[string]domain.JournalEntryTemplate
	byCode            map[string]domain.JournalEntryTemplate
}

// NewTemplateCatalog indexes the given templates. Inactive templates are
// kept but never returned by Lookup.
func NewTemplateCatalog(templates []domain.JournalEntryTemplate) *TemplateCatalog {
	c := &TemplateCatalog{
		byTransactionType: make(map[string]domain.JournalEntryTemplate, len(templates)),
		byCode:            make(map[string]domain.JournalEntryTemplate, len(templates)),
	}
	for _, t := range templates {
		c.byCode[t.TemplateCode] = t
		if t.IsActive {
			c.byTransactionType[t.TransactionType] = t
		}
	}
	return c
}

// Lookup returns the active template for a transaction type.
func (c *TemplateCatalog) Lookup(transactionType string) (domain.JournalEntryTemplate, bool) {
	t, ok := c.byTransactionType[transactionType]
	return t, ok
}

// ByCode returns a template by its code regardless of active flag.
func (c *TemplateCatalog) ByCode(code string) (domain.JournalEntryTemplate, bool) {
	t, ok := c.byCode[code]
	return t, ok
}

// Templates returns every template in the catalog.
func (c *TemplateCatalog) Templates() []domain.JournalEntryTemplate {
	out := make([]domain.JournalEntryTemplate, 0, len(c.byCode))
	for _, t := range c.byCode {
		out = append(out, t)
	}
	return out
}

func threshold(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func literal(code, amountField string) domain.TemplateRole {
	return domain.TemplateRole{Selector: domain.SelectorLiteral, Literal: code, AmountField: amountField}
}

// DefaultTemplateCatalog returns the standard OMC posting templates.
func DefaultTemplateCatalog() *TemplateCatalog {
	return NewTemplateCatalog([]domain.JournalEntryTemplate{
		{
			TemplateCode:    TemplateFuelSale,
			TemplateName:    "Fuel Sale with Components",
			Description:     "Complete fuel sale with all tax and levy components",
			TransactionType: TemplateFuelSale,
			DebitRoles: []domain.TemplateRole{
				literal(CodeAccountsReceivable, "totalAmount"),
			},
			CreditRoles: []domain.TemplateRole{
				{Selector: domain.SelectorSalesByProduct, AmountField: "baseSalesAmount"},
				{Selector: domain.SelectorTaxByType, Literal: string(TaxVAT), AmountField: "vatAmount"},
				{Selector: domain.SelectorTaxByType, Literal: string(TaxNHIL), AmountField: "nhilAmount"},
				{Selector: domain.SelectorTaxByType, Literal: string(TaxGETFund), AmountField: "getfundAmount"},
			},
			ApprovalRequired: false,
			IsActive:         true,
		},
		{
			TemplateCode:    TemplateUPPFClaim,
			TemplateName:    "UPPF Claim Recognition",
			Description:     "Recognition of UPPF claim receivable",
			TransactionType: TemplateUPPFClaim,
			DebitRoles: []domain.TemplateRole{
				literal(CodeUPPFReceivable, "claimAmount"),
			},
			CreditRoles: []domain.TemplateRole{
				literal(CodeUPPFIncome, "claimAmount"),
			},
			ApprovalRequired:  true,
			ApprovalThreshold: threshold(5000),
			IsActive:          true,
		},
		{
			TemplateCode:    TemplateDealerMargin,
			TemplateName:    "Dealer Margin Accrual",
			Description:     "Accrual of dealer margin payable",
			TransactionType: TemplateDealerMargin,
			DebitRoles: []domain.TemplateRole{
				{Selector: domain.SelectorMarginByType, AmountField: "marginAmount"},
			},
			CreditRoles: []domain.TemplateRole{
				literal(CodeDealerPayable, "marginAmount"),
			},
			ApprovalRequired: false,
			IsActive:         true,
		},
		{
			TemplateCode:    TemplateDealerSettlement,
			TemplateName:    "Dealer Settlement with Loan Deduction",
			Description:     "Settlement of dealer payable with loan deductions",
			TransactionType: TemplateDealerSettlement,
			DebitRoles: []domain.TemplateRole{
				literal(CodeDealerPayable, "grossMargin"),
				literal(CodeInterestIncome, "interestComponent"),
			},
			CreditRoles: []domain.TemplateRole{
				literal(CodeLoanPayable, "loanDeduction"),
				{Selector: domain.SelectorTaxByType, Literal: string(TaxWHT), AmountField: "withholdingTax"},
				literal(CodeCashBank, "netPayment"),
			},
			ApprovalRequired:  true,
			ApprovalThreshold: threshold(10000),
			IsActive:          true,
		},
		{
			TemplateCode:    TemplateLoanDisbursement,
			TemplateName:    "Dealer Loan Disbursement",
			Description:     "Disbursement of loan to dealer",
			TransactionType: TemplateLoanDisbursement,
			DebitRoles: []domain.TemplateRole{
				literal(CodeDealerAdvances, "loanAmount"),
			},
			CreditRoles: []domain.TemplateRole{
				literal(CodeCashBank, "loanAmount"),
			},
			ApprovalRequired:  true,
			ApprovalThreshold: threshold(50000),
			IsActive:          true,
		},
		{
			TemplateCode:    TemplateUPPFSettlement,
			TemplateName:    "UPPF Settlement Received",
			Description:     "Receipt of UPPF claim settlement from NPA",
			TransactionType: TemplateUPPFSettlement,
			DebitRoles: []domain.TemplateRole{
				literal(CodeCashBank, "settlementAmount"),
			},
			CreditRoles: []domain.TemplateRole{
				literal(CodeUPPFReceivable, "originalClaimAmount"),
				literal(CodeUPPFIncome, "varianceAmount"),
			},
			ApprovalRequired: false,
			IsActive:         true,
		},
	})
}
