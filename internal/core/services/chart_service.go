package services

import (
	"context"
	"fmt"

	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
)

// chartService serves the chart of accounts. Reads go to the persisted
// catalog so downstream joins and the API agree; the in-process chart is the
// fallback before the seed migration has run.
type chartService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	chart       *accounting.Chart
}

// NewChartService creates the chart service.
func NewChartService(accountRepo portsrepo.AccountRepositoryFacade, chart *accounting.Chart) portssvc.ChartSvcFacade {
	return &chartService{accountRepo: accountRepo, chart: chart}
}

var _ portssvc.ChartSvcFacade = (*chartService)(nil)

// ListAccounts implements portssvc.ChartSvcFacade.
func (s *chartService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAllAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return s.chart.Accounts(), nil
	}
	return accounts, nil
}
