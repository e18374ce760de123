package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
	"github.com/omcerp/fuel_accounting_app/internal/models"
	"github.com/omcerp/fuel_accounting_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `
	code, name, account_type, category, normal_balance, is_header,
	local_specific, requires_compliance_check, tax_reporting_code,
	reporting_category, is_active`

// FindAllAccounts returns the persisted chart of accounts ordered by code.
func (r *PgxAccountRepository) FindAllAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var m models.Account
		if err := rows.Scan(
			&m.Code,
			&m.Name,
			&m.AccountType,
			&m.Category,
			&m.NormalBalance,
			&m.IsHeader,
			&m.LocalSpecific,
			&m.RequiresComplianceCheck,
			&m.TaxReportingCode,
			&m.ReportingCategory,
			&m.IsActive,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

// FindAccountByCode returns one account or apperrors.ErrNotFound.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	var m models.Account
	err := r.Pool.QueryRow(ctx, query, code).Scan(
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Category,
		&m.NormalBalance,
		&m.IsHeader,
		&m.LocalSpecific,
		&m.RequiresComplianceCheck,
		&m.TaxReportingCode,
		&m.ReportingCategory,
		&m.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+code, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}
