package services

import (
	"context"
	"log/slog"

	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
	"github.com/omcerp/fuel_accounting_app/internal/middleware"
)

// logNotifier publishes entry lifecycle events to the structured log stream,
// where the notification forwarder picks them up. A broker-backed notifier
// would implement the same port.
type logNotifier struct{}

// NewLogNotifier returns the log-backed notifier.
func NewLogNotifier() portssvc.EntryNotifier {
	return logNotifier{}
}

var _ portssvc.EntryNotifier = logNotifier{}

func (logNotifier) EntryCreated(ctx context.Context, entry domain.JournalEntry, requiresApproval bool) {
	middleware.GetLoggerFromCtx(ctx).Info(portssvc.EventEntryCreated,
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("template_code", entry.TemplateCode),
		slog.String("amount", entry.TotalDebit.StringFixed(2)),
		slog.Bool("requires_approval", requiresApproval),
	)
}

func (logNotifier) EntryPosted(ctx context.Context, entry domain.JournalEntry) {
	middleware.GetLoggerFromCtx(ctx).Info(portssvc.EventEntryPosted,
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("template_code", entry.TemplateCode),
		slog.String("amount", entry.TotalDebit.StringFixed(2)),
	)
}

func (logNotifier) EntryApproved(ctx context.Context, entry domain.JournalEntry, approverID string) {
	middleware.GetLoggerFromCtx(ctx).Info(portssvc.EventEntryApproved,
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("template_code", entry.TemplateCode),
		slog.String("amount", entry.TotalDebit.StringFixed(2)),
		slog.String("approved_by", approverID),
	)
}

func (logNotifier) EntryReversed(ctx context.Context, original, reversal domain.JournalEntry, reason string) {
	middleware.GetLoggerFromCtx(ctx).Info(portssvc.EventEntryReversed,
		slog.String("entry_id", original.EntryID),
		slog.String("entry_number", original.EntryNumber),
		slog.String("template_code", original.TemplateCode),
		slog.String("amount", original.TotalDebit.StringFixed(2)),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reason", reason),
	)
}
