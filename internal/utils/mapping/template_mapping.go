package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	"github.com/omcerp/fuel_accounting_app/internal/models"
)

// ToDomainTemplate converts a model JournalEntryTemplate to its domain form,
// decoding the JSONB role arrays.
func ToDomainTemplate(m models.JournalEntryTemplate) (domain.JournalEntryTemplate, error) {
	var debitRoles, creditRoles []domain.TemplateRole
	if len(m.DebitRoles) > 0 {
		if err := json.Unmarshal(m.DebitRoles, &debitRoles); err != nil {
			return domain.JournalEntryTemplate{}, fmt.Errorf("decode debit roles for template %s: %w", m.TemplateCode, err)
		}
	}
	if len(m.CreditRoles) > 0 {
		if err := json.Unmarshal(m.CreditRoles, &creditRoles); err != nil {
			return domain.JournalEntryTemplate{}, fmt.Errorf("decode credit roles for template %s: %w", m.TemplateCode, err)
		}
	}
	return domain.JournalEntryTemplate{
		TemplateCode:      m.TemplateCode,
		TemplateName:      m.TemplateName,
		Description:       m.Description,
		TransactionType:   m.TransactionType,
		DebitRoles:        debitRoles,
		CreditRoles:       creditRoles,
		ApprovalRequired:  m.ApprovalRequired,
		ApprovalThreshold: m.ApprovalThreshold,
		IsActive:          m.IsActive,
	}, nil
}
