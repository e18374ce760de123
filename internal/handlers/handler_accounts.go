package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/omcerp/fuel_accounting_app/internal/core/ports/services"
	"github.com/omcerp/fuel_accounting_app/internal/dto"
	"github.com/omcerp/fuel_accounting_app/internal/middleware"
)

// accountHandler exposes the chart of accounts.
type accountHandler struct {
	chartService portssvc.ChartSvcFacade
}

func newAccountHandler(chartService portssvc.ChartSvcFacade) *accountHandler {
	return &accountHandler{chartService: chartService}
}

// listAccounts godoc
// @Summary List the chart of accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.chartService.ListAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	responses := make([]dto.AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = dto.ToAccountResponse(a)
	}
	c.JSON(http.StatusOK, responses)
}

// registerAccountRoutes registers chart-of-accounts routes.
func registerAccountRoutes(group *gin.RouterGroup, chartService portssvc.ChartSvcFacade) {
	h := newAccountHandler(chartService)
	group.GET("/accounts", h.listAccounts)
}
