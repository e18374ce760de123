package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
)

var (
	ErrTemplateNotFound       = errors.New("journal entry template not found")
	ErrUnbalancedEntry        = errors.New("journal entry does not balance")
	ErrInvalidStateTransition = errors.New("invalid journal entry state transition")
)

// balanceTolerance is the money rounding epsilon for the double-entry
// invariant. An entry whose debit/credit totals differ by more than this is
// rejected before any persistence attempt.
var balanceTolerance = decimal.NewFromFloat(0.01)

// BuildInput carries one business event into the builder.
type BuildInput struct {
	TransactionType  string
	SourceDocument   string // Source document type; defaulted per template when empty
	SourceDocumentID string
	EffectiveDate    time.Time
	CreatedBy        string
	Payload          json.RawMessage
}

// EntryBuilder turns typed business events into balanced journal entries
// using the template catalog, the account resolver and the configured levy
// rates. The builder never persists anything; Status and EntryNumber are
// decided downstream.
type EntryBuilder struct {
	resolver accounting.Resolver
	catalog  *accounting.TemplateCatalog
	rates    accounting.LevyRates
}

// NewEntryBuilder creates a builder over the given configuration.
func NewEntryBuilder(resolver accounting.Resolver, catalog *accounting.TemplateCatalog, rates accounting.LevyRates) *EntryBuilder {
	return &EntryBuilder{resolver: resolver, catalog: catalog, rates: rates}
}

// lineSet accumulates journal lines, dropping roles whose amount is zero
// (e.g. no loan-deduction line when there is no loan) and collecting
// resolver fallbacks for data-quality logging by the caller.
type lineSet struct {
	lines     []domain.JournalLine
	fallbacks []string
}

func (s *lineSet) debit(accountCode string, amount decimal.Decimal, description, reference string) *domain.JournalLine {
	if amount.IsZero() {
		return nil
	}
	s.lines = append(s.lines, domain.JournalLine{
		LineID:      uuid.NewString(),
		AccountCode: accountCode,
		Debit:       amount,
		Credit:      decimal.Zero,
		Description: description,
		Reference:   reference,
	})
	return &s.lines[len(s.lines)-1]
}

func (s *lineSet) credit(accountCode string, amount decimal.Decimal, description, reference string) *domain.JournalLine {
	if amount.IsZero() {
		return nil
	}
	s.lines = append(s.lines, domain.JournalLine{
		LineID:      uuid.NewString(),
		AccountCode: accountCode,
		Debit:       decimal.Zero,
		Credit:      amount,
		Description: description,
		Reference:   reference,
	})
	return &s.lines[len(s.lines)-1]
}

func (s *lineSet) noteFallback(dimension, value, accountCode string) {
	s.fallbacks = append(s.fallbacks, fmt.Sprintf("%s %q resolved to fallback account %s", dimension, value, accountCode))
}

func (s *lineSet) tagCostCenter(costCenter string) {
	for i := range s.lines {
		s.lines[i].CostCenter = costCenter
	}
}

func (s *lineSet) tagProject(projectCode string) {
	for i := range s.lines {
		s.lines[i].ProjectCode = projectCode
	}
}

// Build constructs a balanced candidate entry for the input event. The
// returned fallback notes flag unrecognised product/tax/margin types that
// resolved to generic accounts.
func (b *EntryBuilder) Build(in BuildInput) (*domain.JournalEntry, []string, error) {
	template, ok := b.catalog.Lookup(in.TransactionType)
	if !ok {
		return nil, nil, fmt.Errorf("%w: transaction type %s", ErrTemplateNotFound, in.TransactionType)
	}

	var (
		set            lineSet
		description    string
		reference      string
		sourceDocument string
		err            error
	)

	switch template.TemplateCode {
	case accounting.TemplateFuelSale:
		description, reference, sourceDocument, err = b.buildFuelSale(&set, in.Payload)
	case accounting.TemplateUPPFClaim:
		description, reference, sourceDocument, err = b.buildUPPFClaim(&set, in.Payload)
	case accounting.TemplateDealerMargin:
		description, reference, sourceDocument, err = b.buildDealerMargin(&set, in.Payload)
	case accounting.TemplateDealerSettlement:
		description, reference, sourceDocument, err = b.buildDealerSettlement(&set, in.Payload)
	case accounting.TemplateLoanDisbursement:
		description, reference, sourceDocument, err = b.buildLoanDisbursement(&set, in.Payload)
	case accounting.TemplateUPPFSettlement:
		description, reference, sourceDocument, err = b.buildUPPFSettlement(&set, in.Payload)
	default:
		return nil, nil, fmt.Errorf("%w: no builder for template %s", ErrTemplateNotFound, template.TemplateCode)
	}
	if err != nil {
		return nil, nil, err
	}

	// All-zero amounts (e.g. a zero-volume fuel sale) would otherwise build
	// a lineless entry that still passes the balance check.
	if len(set.lines) == 0 {
		return nil, nil, fmt.Errorf("%w: event for %s produced no journal lines", apperrors.ErrValidation, template.TemplateCode)
	}

	totalDebit, totalCredit := sumLines(set.lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return nil, nil, fmt.Errorf("%w: debit %s, credit %s", ErrUnbalancedEntry, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}

	entryDate := in.EffectiveDate
	if entryDate.IsZero() {
		entryDate = time.Now().UTC()
	}
	if in.SourceDocument != "" {
		sourceDocument = in.SourceDocument
	}

	entry := &domain.JournalEntry{
		EntryID:          uuid.NewString(),
		EntryDate:        entryDate,
		Description:      description,
		Reference:        reference,
		SourceDocument:   sourceDocument,
		SourceDocumentID: in.SourceDocumentID,
		TemplateCode:     template.TemplateCode,
		Lines:            set.lines,
		TotalDebit:       totalDebit,
		TotalCredit:      totalCredit,
		CreatedAt:        time.Now().UTC(),
		CreatedBy:        in.CreatedBy,
	}
	return entry, set.fallbacks, nil
}

func sumLines(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return totalDebit, totalCredit
}

func decodePayload(payload json.RawMessage, out any) error {
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: malformed event payload: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func (b *EntryBuilder) buildFuelSale(set *lineSet, payload json.RawMessage) (string, string, string, error) {
	var evt domain.FuelSaleEvent
	if err := decodePayload(payload, &evt); err != nil {
		return "", "", "", err
	}
	if evt.Volume.IsNegative() || evt.BasePrice.IsNegative() {
		return "", "", "", fmt.Errorf("%w: fuel sale volume and base price must not be negative", apperrors.ErrValidation)
	}

	baseAmount := evt.Volume.Mul(evt.BasePrice).Round(2)
	vatAmount := baseAmount.Mul(b.rates.VAT).Round(2)
	nhilAmount := baseAmount.Mul(b.rates.NHIL).Round(2)
	getfundAmount := baseAmount.Mul(b.rates.GETFund).Round(2)
	totalAmount := baseAmount.Add(vatAmount).Add(nhilAmount).Add(getfundAmount)

	set.debit(accounting.CodeAccountsReceivable, totalAmount,
		fmt.Sprintf("Fuel sale - %s - %sL", evt.ProductCode, evt.Volume.String()), evt.InvoiceNumber)

	salesAccount, fellBack := b.resolver.SalesAccount(evt.ProductCode)
	if fellBack {
		set.noteFallback("product", evt.ProductCode, salesAccount)
	}
	set.credit(salesAccount, baseAmount, fmt.Sprintf("Sales revenue - %s", evt.ProductCode), evt.InvoiceNumber)

	vatAccount, _ := b.resolver.TaxAccount(accounting.TaxVAT)
	nhilAccount, _ := b.resolver.TaxAccount(accounting.TaxNHIL)
	getfundAccount, _ := b.resolver.TaxAccount(accounting.TaxGETFund)
	set.credit(vatAccount, vatAmount, "VAT on fuel sales", evt.InvoiceNumber)
	set.credit(nhilAccount, nhilAmount, "NHIL on fuel sales", evt.InvoiceNumber)
	set.credit(getfundAccount, getfundAmount, "GETFUND on fuel sales", evt.InvoiceNumber)

	set.tagCostCenter(evt.StationID)

	description := fmt.Sprintf("Fuel sale - %s - %sL %s", evt.StationID, evt.Volume.String(), evt.ProductCode)
	return description, evt.InvoiceNumber, "FUEL_INVOICE", nil
}

func (b *EntryBuilder) buildUPPFClaim(set *lineSet, payload json.RawMessage) (string, string, string, error) {
	var evt domain.UPPFClaimEvent
	if err := decodePayload(payload, &evt); err != nil {
		return "", "", "", err
	}
	if !evt.ClaimAmount.IsPositive() {
		return "", "", "", fmt.Errorf("%w: claim amount must be positive", apperrors.ErrValidation)
	}

	set.debit(accounting.CodeUPPFReceivable, evt.ClaimAmount,
		fmt.Sprintf("UPPF claim - %s", evt.ClaimNumber), evt.ClaimNumber)
	set.credit(accounting.CodeUPPFIncome, evt.ClaimAmount,
		fmt.Sprintf("UPPF income recognition - %s", evt.ClaimNumber), evt.ClaimNumber)
	set.tagProject(evt.WindowID)

	description := fmt.Sprintf("UPPF claim recognition - %s - GHS %s", evt.ClaimNumber, evt.ClaimAmount.StringFixed(2))
	return description, evt.ClaimNumber, "UPPF_CLAIM", nil
}

func (b *EntryBuilder) buildDealerMargin(set *lineSet, payload json.RawMessage) (string, string, string, error) {
	var evt domain.DealerMarginEvent
	if err := decodePayload(payload, &evt); err != nil {
		return "", "", "", err
	}
	if !evt.MarginAmount.IsPositive() {
		return "", "", "", fmt.Errorf("%w: margin amount must be positive", apperrors.ErrValidation)
	}

	marginAccount, fellBack := b.resolver.MarginAccount(evt.MarginType)
	if fellBack {
		set.noteFallback("margin type", evt.MarginType, marginAccount)
	}
	set.debit(marginAccount, evt.MarginAmount,
		fmt.Sprintf("Dealer margin accrual - %s", evt.DealerID), evt.AccrualNumber)
	set.credit(accounting.CodeDealerPayable, evt.MarginAmount,
		fmt.Sprintf("Dealer margin payable - %s", evt.DealerID), evt.AccrualNumber)
	set.tagCostCenter(evt.StationID)

	description := fmt.Sprintf("Dealer margin accrual - %s - %s", evt.DealerID, evt.AccrualNumber)
	return description, evt.AccrualNumber, "MARGIN_ACCRUAL", nil
}

func (b *EntryBuilder) buildDealerSettlement(set *lineSet, payload json.RawMessage) (string, string, string, error) {
	var evt domain.DealerSettlementEvent
	if err := decodePayload(payload, &evt); err != nil {
		return "", "", "", err
	}
	if !evt.GrossMargin.IsPositive() {
		return "", "", "", fmt.Errorf("%w: gross margin must be positive", apperrors.ErrValidation)
	}

	set.debit(accounting.CodeDealerPayable, evt.GrossMargin,
		fmt.Sprintf("Dealer settlement - %s", evt.DealerID), evt.SettlementNumber)
	set.debit(accounting.CodeInterestIncome, evt.InterestComponent,
		fmt.Sprintf("Interest adjustment - %s", evt.DealerID), evt.SettlementNumber)

	set.credit(accounting.CodeLoanPayable, evt.LoanDeduction,
		fmt.Sprintf("Loan deduction - %s", evt.DealerID), evt.SettlementNumber)
	whtAccount, _ := b.resolver.TaxAccount(accounting.TaxWHT)
	set.credit(whtAccount, evt.WithholdingTax,
		fmt.Sprintf("WHT on dealer payment - %s", evt.DealerID), evt.SettlementNumber)

	paymentRef := evt.PaymentReference
	if paymentRef == "" {
		paymentRef = evt.SettlementNumber
	}
	set.credit(accounting.CodeCashBank, evt.NetPayment,
		fmt.Sprintf("Dealer payment - %s", evt.DealerID), paymentRef)

	set.tagCostCenter(evt.StationID)

	description := fmt.Sprintf("Dealer settlement - %s - %s", evt.DealerID, evt.SettlementNumber)
	return description, evt.SettlementNumber, "DEALER_SETTLEMENT", nil
}

func (b *EntryBuilder) buildLoanDisbursement(set *lineSet, payload json.RawMessage) (string, string, string, error) {
	var evt domain.LoanDisbursementEvent
	if err := decodePayload(payload, &evt); err != nil {
		return "", "", "", err
	}
	if !evt.LoanAmount.IsPositive() {
		return "", "", "", fmt.Errorf("%w: loan amount must be positive", apperrors.ErrValidation)
	}

	set.debit(accounting.CodeDealerAdvances, evt.LoanAmount,
		fmt.Sprintf("Loan disbursement - %s - %s", evt.DealerID, evt.LoanType), evt.LoanNumber)

	disbursementRef := evt.DisbursementReference
	if disbursementRef == "" {
		disbursementRef = evt.LoanNumber
	}
	set.credit(accounting.CodeCashBank, evt.LoanAmount,
		fmt.Sprintf("Loan disbursement payment - %s", evt.DealerID), disbursementRef)

	set.tagCostCenter(evt.StationID)

	description := fmt.Sprintf("Loan disbursement - %s - GHS %s", evt.DealerID, evt.LoanAmount.StringFixed(2))
	return description, evt.LoanNumber, "LOAN_AGREEMENT", nil
}

func (b *EntryBuilder) buildUPPFSettlement(set *lineSet, payload json.RawMessage) (string, string, string, error) {
	var evt domain.UPPFSettlementEvent
	if err := decodePayload(payload, &evt); err != nil {
		return "", "", "", err
	}
	if !evt.SettlementAmount.IsPositive() || !evt.OriginalClaimAmount.IsPositive() {
		return "", "", "", fmt.Errorf("%w: settlement and original claim amounts must be positive", apperrors.ErrValidation)
	}

	set.debit(accounting.CodeCashBank, evt.SettlementAmount,
		fmt.Sprintf("UPPF settlement received - %s", evt.SubmissionReference), evt.NPAPaymentReference)
	set.credit(accounting.CodeUPPFReceivable, evt.OriginalClaimAmount,
		fmt.Sprintf("UPPF receivable settlement - %s", evt.SubmissionReference), evt.NPAPaymentReference)

	// A settlement that differs from the recognised claim carries the
	// difference to UPPF income as a signed adjustment line: favorable
	// variance credits income, unfavorable variance debits it.
	variance := evt.SettlementAmount.Sub(evt.OriginalClaimAmount)
	if variance.Abs().GreaterThan(balanceTolerance) {
		if variance.IsPositive() {
			set.credit(accounting.CodeUPPFIncome, variance,
				fmt.Sprintf("UPPF settlement variance (favorable) - %s", evt.SubmissionReference), evt.NPAPaymentReference)
		} else {
			set.debit(accounting.CodeUPPFIncome, variance.Abs(),
				fmt.Sprintf("UPPF settlement variance (unfavorable) - %s", evt.SubmissionReference), evt.NPAPaymentReference)
		}
	}

	set.tagProject(evt.WindowID)

	description := fmt.Sprintf("UPPF settlement received - %s - GHS %s", evt.SubmissionReference, evt.SettlementAmount.StringFixed(2))
	return description, evt.NPAPaymentReference, "NPA_SETTLEMENT", nil
}
