package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/omcerp/fuel_accounting_app/internal/apperrors"
	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
	"github.com/omcerp/fuel_accounting_app/internal/core/services"
	"github.com/omcerp/fuel_accounting_app/internal/dto"
	"github.com/omcerp/fuel_accounting_app/internal/middleware"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newEntryHandler(postingService portssvc.PostingSvcFacade) *entryHandler {
	return &entryHandler{postingService: postingService}
}

// createEntry godoc
// @Summary Create a journal entry from a business event
// @Description Builds, gates and persists the journal entry for one business event. Replays of the same source document return the existing entry.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Business event"
// @Success 201 {object} dto.EntryResponse "Created entry; status tells POSTED vs DRAFT pending approval"
// @Failure 400 {object} map[string]string "Invalid request or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.postingService.CreateEntry(c.Request.Context(), req, caller)
	if err != nil {
		h.writeEntryError(c, logger, err, "create")
		return
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.postingService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Tags entries
// @Produce  json
// @Param   from query string false "Start date (RFC3339)"
// @Param   to query string false "End date (RFC3339)"
// @Param   templateCode query string false "Template code filter"
// @Param   status query string false "Status filter (DRAFT, POSTED, REVERSED)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params, err := parseListParams(c)
	if err != nil {
		logger.Warn("Invalid list filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.postingService.ListEntries(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// getSummary godoc
// @Summary Summarize journal entries by template and status
// @Tags entries
// @Produce  json
// @Param   from query string false "Start date (RFC3339)"
// @Param   to query string false "End date (RFC3339)"
// @Param   templateCode query string false "Template code filter"
// @Success 200 {object} domain.EntrySummary
// @Router /entries/summary [get]
func (h *entryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var templateCode *string
	if tpl := c.Query("templateCode"); tpl != "" {
		templateCode = &tpl
	}

	summary, err := h.postingService.GetSummary(c.Request.Context(), from, to, templateCode)
	if err != nil {
		logger.Error("Failed to summarize entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize entries"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// approveEntry godoc
// @Summary Approve a DRAFT journal entry
// @Description Posts a DRAFT entry. Re-approval by the same approver is a no-op.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   approval body dto.ApproveEntryRequest true "Approver"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not awaiting approval"
// @Router /entries/{entryID}/approve [post]
func (h *entryHandler) approveEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ApproveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.postingService.ApproveEntry(c.Request.Context(), entryID, req.ApproverID)
	if err != nil {
		h.writeEntryError(c, logger, err, "approve")
		return
	}

	logger.Info("Journal entry approved",
		slog.String("entry_id", entry.EntryID),
		slog.String("approver", req.ApproverID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a POSTED journal entry
// @Description Creates the opposite-signed sibling entry and stamps the original REVERSED.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal reason and actor"
// @Success 201 {object} dto.EntryResponse "The reversing entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not POSTED"
// @Router /entries/{entryID}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	reversal, err := h.postingService.ReverseEntry(c.Request.Context(), entryID, req.Reason, req.ActorID)
	if err != nil {
		h.writeEntryError(c, logger, err, "reverse")
		return
	}

	logger.Info("Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

// writeEntryError maps service errors onto HTTP responses.
func (h *entryHandler) writeEntryError(c *gin.Context, logger *slog.Logger, err error, op string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrTemplateNotFound),
		errors.Is(err, services.ErrUnbalancedEntry):
		logger.Warn("Entry operation rejected", slog.String("op", op), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, services.ErrInvalidStateTransition), errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Entry state conflict", slog.String("op", op), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Entry operation failed", slog.String("op", op), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op + " entry"})
	}
}

// parseListParams reads the listEntries query string.
func parseListParams(c *gin.Context) (dto.ListEntriesParams, error) {
	from, to, err := parseDateRange(c)
	if err != nil {
		return dto.ListEntriesParams{}, err
	}

	params := dto.ListEntriesParams{From: from, To: to}
	if tpl := c.Query("templateCode"); tpl != "" {
		params.TemplateCode = &tpl
	}
	if status := c.Query("status"); status != "" {
		params.Status = &status
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return dto.ListEntriesParams{}, errors.New("invalid limit")
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}
	return params, nil
}

// parseDateRange reads from/to query params, defaulting to the last 30 days.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid from date, expected RFC3339")
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid to date, expected RFC3339")
		}
		to = parsed
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to date precedes from date")
	}
	return from, to, nil
}

// registerEntryRoutes registers entry specific routes.
func registerEntryRoutes(group *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newEntryHandler(postingService)

	entries := group.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/summary", h.getSummary)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/approve", h.approveEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
	}
}
