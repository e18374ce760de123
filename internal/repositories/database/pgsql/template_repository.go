package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portsrepo "github.com/omcerp/fuel_accounting_app/internal/core/ports/repositories"
	"github.com/omcerp/fuel_accounting_app/internal/models"
	"github.com/omcerp/fuel_accounting_app/internal/utils/mapping"
)

type PgxTemplateRepository struct {
	BaseRepository
}

func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

// FindAllTemplates returns the persisted template configuration.
func (r *PgxTemplateRepository) FindAllTemplates(ctx context.Context) ([]domain.JournalEntryTemplate, error) {
	query := `
		SELECT template_code, template_name, description, transaction_type,
		       debit_roles, credit_roles, approval_required, approval_threshold, is_active
		FROM journal_entry_templates
		ORDER BY template_code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry templates", err)
	}
	defer rows.Close()

	templates := []domain.JournalEntryTemplate{}
	for rows.Next() {
		var m models.JournalEntryTemplate
		if err := rows.Scan(
			&m.TemplateCode,
			&m.TemplateName,
			&m.Description,
			&m.TransactionType,
			&m.DebitRoles,
			&m.CreditRoles,
			&m.ApprovalRequired,
			&m.ApprovalThreshold,
			&m.IsActive,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template row", err)
		}
		tpl, err := mapping.ToDomainTemplate(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode template "+m.TemplateCode, err)
		}
		templates = append(templates, tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating template rows", err)
	}
	return templates, nil
}
