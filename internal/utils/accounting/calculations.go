package accounting

import (
	"fmt"

	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount converts a journal line into its signed effect on the
// account's balance under the usual convention: debits increase ASSET and
// EXPENSE accounts, credits increase LIABILITY, EQUITY and REVENUE accounts.
func SignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	net := line.Debit.Sub(line.Credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountCode)
	}
}

// NetEffect sums the signed effect of a set of lines per account code. A
// posted entry followed by its reversal nets to zero for every account.
func NetEffect(lines []domain.JournalLine, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	effects := make(map[string]decimal.Decimal, len(accountTypes))
	for _, line := range lines {
		accountType, ok := accountTypes[line.AccountCode]
		if !ok {
			return nil, fmt.Errorf("account type not found for account %s", line.AccountCode)
		}
		signed, err := SignedAmount(line, accountType)
		if err != nil {
			return nil, err
		}
		effects[line.AccountCode] = effects[line.AccountCode].Add(signed)
	}
	return effects, nil
}
