package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EntryRepo:    newPgxEntryRepository(dbPool),
		AccountRepo:  newPgxAccountRepository(dbPool),
		TemplateRepo: newPgxTemplateRepository(dbPool),
	}
}
