package services

import (
	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
)

// NewServiceProvider wires the accounting configuration, repositories and
// notifier into the service facades handed to the HTTP layer.
func NewServiceProvider(repos portsrepo.RepositoryProvider, chart *accounting.Chart, catalog *accounting.TemplateCatalog, rates accounting.LevyRates, notifier portssvc.EntryNotifier) *portssvc.ServiceProvider {
	if notifier == nil {
		notifier = NewLogNotifier()
	}
	builder := NewEntryBuilder(accounting.NewResolver(chart), catalog, rates)
	return &portssvc.ServiceProvider{
		Posting: NewPostingService(repos.EntryRepo, builder, catalog, notifier),
		Chart:   NewChartService(repos.AccountRepo, chart),
	}
}
