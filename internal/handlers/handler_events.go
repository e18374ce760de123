package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	"github.com/omcerp/fuel_accounting_app/internal/core/services"
	"github.com/omcerp/fuel_accounting_app/internal/dto"
	"github.com/omcerp/fuel_accounting_app/internal/ingest"
	"github.com/omcerp/fuel_accounting_app/internal/middleware"
)

// eventHandler accepts business event envelopes from upstream services.
type eventHandler struct {
	consumer *ingest.Consumer
}

func newEventHandler(consumer *ingest.Consumer) *eventHandler {
	return &eventHandler{consumer: consumer}
}

// postEvent godoc
// @Summary Ingest a business event
// @Description Accepts one business event envelope and produces its journal entry. Redelivery of the same source document returns the existing entry.
// @Tags events
// @Accept  json
// @Produce  json
// @Param   event body dto.BusinessEventEnvelope true "Business event envelope"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Unknown event type or invalid payload"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /events [post]
func (h *eventHandler) postEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var envelope dto.BusinessEventEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		logger.Error("Failed to bind JSON for postEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if envelope.CreatedBy == "" {
		if caller, ok := middleware.GetCallerFromContext(c); ok {
			envelope.CreatedBy = caller
		}
	}

	entry, err := h.consumer.Handle(c.Request.Context(), envelope)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, services.ErrTemplateNotFound),
			errors.Is(err, services.ErrUnbalancedEntry):
			logger.Warn("Business event rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process business event", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// registerEventRoutes registers the ingest route.
func registerEventRoutes(group *gin.RouterGroup, consumer *ingest.Consumer) {
	h := newEventHandler(consumer)
	group.POST("/events", h.postEvent)
}
