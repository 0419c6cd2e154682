package handlers

import (
	"net/http"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	service *service.NetworkService
}

func NewHealthHandler(service *service.NetworkService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health reports 503 until the company list has been loaded
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.service.Ready(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "companies": len(h.service.Companies())})
}
