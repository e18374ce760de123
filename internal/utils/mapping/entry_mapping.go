package mapping

import (
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	"github.com/omcerp/fuel_accounting_app/internal/models"
)

// ToModelEntry converts a domain JournalEntry to its model form (header only).
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		EntryNumber:       d.EntryNumber,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		Reference:         d.Reference,
		SourceDocument:    d.SourceDocument,
		SourceDocumentID:  d.SourceDocumentID,
		TemplateCode:      d.TemplateCode,
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		Status:            models.EntryStatus(d.Status),
		PostedBy:          d.PostedBy,
		PostedAt:          d.PostedAt,
		ReversalReference: d.ReversalReference,
		ReversalOf:        d.ReversalOf,
		CreatedAt:         d.CreatedAt,
		CreatedBy:         d.CreatedBy,
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		EntryNumber:       m.EntryNumber,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		Reference:         m.Reference,
		SourceDocument:    m.SourceDocument,
		SourceDocumentID:  m.SourceDocumentID,
		TemplateCode:      m.TemplateCode,
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		Status:            domain.EntryStatus(m.Status),
		PostedBy:          m.PostedBy,
		PostedAt:          m.PostedAt,
		ReversalReference: m.ReversalReference,
		ReversalOf:        m.ReversalOf,
		CreatedAt:         m.CreatedAt,
		CreatedBy:         m.CreatedBy,
	}
}

// ToModelLine converts a domain JournalLine to its model form.
func ToModelLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		Reference:   d.Reference,
		CostCenter:  d.CostCenter,
		ProjectCode: d.ProjectCode,
	}
}

// ToDomainLine converts a model JournalLine to a domain JournalLine.
func ToDomainLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		Reference:   m.Reference,
		CostCenter:  m.CostCenter,
		ProjectCode: m.ProjectCode,
	}
}

// ToDomainLineSlice converts a slice of model lines to domain lines.
func ToDomainLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLine(m)
	}
	return ds
}
