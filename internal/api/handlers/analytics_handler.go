package handlers

import (
	"net/http"
	"strconv"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/api/middleware"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *service.NetworkService
}

func NewAnalyticsHandler(service *service.NetworkService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) authorize(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !middleware.Session(c).CanRead(id) {
		forbidden(c)
		return "", false
	}
	return id, true
}

func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}

	days := analytics.DefaultForecastDays
	if v, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(days))); err == nil && v > 0 && v <= 365 {
		days = v
	}

	forecast, err := h.service.Forecast(c.Request.Context(), id, days)
	if err != nil {
		respondError(c, "failed to build forecast", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "warehouses": forecast})
}

func (h *AnalyticsHandler) GetWarnings(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}

	var thresholds analytics.WarningThresholds
	if v, err := strconv.ParseFloat(c.Query("varianceDays"), 64); err == nil && v > 0 {
		thresholds.VarianceDays = v
	}
	if v, err := strconv.Atoi(c.Query("depletionDays")); err == nil && v > 0 {
		thresholds.DepletionDays = v
	}

	warnings, err := h.service.Warnings(c.Request.Context(), id, thresholds)
	if err != nil {
		respondError(c, "failed to evaluate warnings", err)
		return
	}
	c.JSON(http.StatusOK, warnings)
}

func (h *AnalyticsHandler) GetOutlook(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}

	outlook, err := h.service.Outlook(id)
	if err != nil {
		respondError(c, "failed to build stockout outlook", err)
		return
	}
	c.JSON(http.StatusOK, outlook)
}
