package domain

import "github.com/shopspring/decimal"

// TemplateSummary aggregates entries of one template within a period.
type TemplateSummary struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"` // Sum of total debit
}

// EntrySummary is the aggregate view over a date range, grouped by template
// and by status.
type EntrySummary struct {
	TotalEntries int                        `json:"totalEntries"`
	TotalAmount  decimal.Decimal            `json:"totalAmount"`
	ByTemplate   map[string]TemplateSummary `json:"byTemplate"`
	ByStatus     map[string]int             `json:"byStatus"`
}
