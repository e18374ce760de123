package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
)

func TestDefaultCatalogCoversAllTransactionTypes(t *testing.T) {
	catalog := DefaultTemplateCatalog()

	for _, txType := range []string{
		TemplateFuelSale,
		TemplateUPPFClaim,
		TemplateDealerMargin,
		TemplateDealerSettlement,
		TemplateLoanDisbursement,
		TemplateUPPFSettlement,
	} {
		tpl, ok := catalog.Lookup(txType)
		require.True(t, ok, "no template for transaction type %s", txType)
		assert.Equal(t, txType, tpl.TransactionType)
		assert.True(t, tpl.IsActive)
		assert.NotEmpty(t, tpl.DebitRoles)
		assert.NotEmpty(t, tpl.CreditRoles)
	}

	_, ok := catalog.Lookup("PAYROLL")
	assert.False(t, ok)
}

// Every literal role in the catalog must reference a postable account in the
// default chart; a template that points at a missing account would only fail
// at posting time.
func TestDefaultCatalogRolesResolveAgainstChart(t *testing.T) {
	chart := DefaultChart()
	catalog := DefaultTemplateCatalog()

	for _, tpl := range catalog.Templates() {
		roles := append(append([]domain.TemplateRole{}, tpl.DebitRoles...), tpl.CreditRoles...)
		for _, role := range roles {
			assert.NotEmpty(t, role.AmountField, "template %s has a role without amount field", tpl.TemplateCode)
			if role.Selector != domain.SelectorLiteral {
				continue
			}
			account, ok := chart.Account(role.Literal)
			require.True(t, ok, "template %s references unknown account %s", tpl.TemplateCode, role.Literal)
			assert.True(t, account.Postable(), "template %s references non-postable account %s", tpl.TemplateCode, role.Literal)
		}
	}
}

func TestNeedsApproval(t *testing.T) {
	catalog := DefaultTemplateCatalog()

	fuelSale, _ := catalog.Lookup(TemplateFuelSale)
	assert.False(t, fuelSale.NeedsApproval(decimal.NewFromInt(1_000_000)))

	uppfClaim, _ := catalog.Lookup(TemplateUPPFClaim)
	assert.False(t, uppfClaim.NeedsApproval(decimal.NewFromInt(4999)))
	assert.True(t, uppfClaim.NeedsApproval(decimal.NewFromInt(5000)))
	assert.True(t, uppfClaim.NeedsApproval(decimal.NewFromInt(6000)))

	settlement, _ := catalog.Lookup(TemplateDealerSettlement)
	assert.False(t, settlement.NeedsApproval(decimal.NewFromInt(9999)))
	assert.True(t, settlement.NeedsApproval(decimal.NewFromInt(10000)))

	loan, _ := catalog.Lookup(TemplateLoanDisbursement)
	assert.False(t, loan.NeedsApproval(decimal.NewFromInt(49999)))
	assert.True(t, loan.NeedsApproval(decimal.NewFromInt(50000)))
}

func TestReversalCodeIsNotInCatalog(t *testing.T) {
	catalog := DefaultTemplateCatalog()
	_, ok := catalog.ByCode(ReversalTemplateCode)
	assert.False(t, ok)
	_, ok = catalog.Lookup(ReversalTemplateCode)
	assert.False(t, ok)
}
