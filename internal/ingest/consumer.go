// Package ingest is the inbound boundary of the accounting engine. The
// upstream event bus delivers business events at least once; the consumer
// dispatches them through a function table keyed by event type and relies on
// the engine's (templateCode, sourceDocumentId) idempotency to make
// redelivery harmless.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/accounting"
	"github.com/omcerp/fuel_accounting_app/internal/core/domain"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
	"github.com/omcerp/fuel_accounting_app/internal/dto"
	"github.com/omcerp/fuel_accounting_app/internal/middleware"
)

// Inbound event types emitted by the business services.
const (
	EventFuelSale         = "fuel.sale"
	EventUPPFClaim        = "uppf.claim"
	EventDealerMargin     = "dealer.margin"
	EventDealerSettlement = "dealer.settlement"
	EventLoanDisbursement = "loan.disbursement"
	EventUPPFSettlement   = "uppf.settlement"
)

// Consumer routes business events into the posting service.
type Consumer struct {
	posting portssvc.PostingSvcFacade
	// transactionTypes maps bus event types to the engine's transaction
	// types. Explicit table instead of string munging so an unknown event
	// type is a visible configuration error.
	transactionTypes map[string]string
}

// NewConsumer creates a consumer over the posting service.
func NewConsumer(posting portssvc.PostingSvcFacade) *Consumer {
	return &Consumer{
		posting: posting,
		transactionTypes: map[string]string{
			EventFuelSale:         accounting.TemplateFuelSale,
			EventUPPFClaim:        accounting.TemplateUPPFClaim,
			EventDealerMargin:     accounting.TemplateDealerMargin,
			EventDealerSettlement: accounting.TemplateDealerSettlement,
			EventLoanDisbursement: accounting.TemplateLoanDisbursement,
			EventUPPFSettlement:   accounting.TemplateUPPFSettlement,
		},
	}
}

// Supported reports whether the consumer knows the event type.
func (c *Consumer) Supported(eventType string) bool {
	_, ok := c.transactionTypes[eventType]
	return ok
}

// Handle processes one delivery of a business event. Redeliveries of an
// already-processed sourceDocumentId return the existing entry.
func (c *Consumer) Handle(ctx context.Context, envelope dto.BusinessEventEnvelope) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transactionType, ok := c.transactionTypes[envelope.EventType]
	if !ok {
		logger.Error("Unknown business event type", slog.String("event_type", envelope.EventType))
		return nil, fmt.Errorf("%w: unknown event type %q", apperrors.ErrValidation, envelope.EventType)
	}

	actor := envelope.CreatedBy
	if actor == "" {
		actor = domain.SystemActor
	}

	entry, err := c.posting.CreateEntry(ctx, dto.CreateEntryRequest{
		TransactionType:  transactionType,
		SourceDocumentID: envelope.SourceDocumentID,
		EffectiveDate:    envelope.EffectiveDate,
		Payload:          envelope.Data,
	}, actor)
	if err != nil {
		return nil, err
	}

	logger.Info("Business event processed",
		slog.String("event_type", envelope.EventType),
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)))
	return entry, nil
}
