package handlers

import (
	"net/http"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/service"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/storage"
	"github.com/gin-gonic/gin"
)

type SnapshotHandler struct {
	service   *service.NetworkService
	snapshots *storage.SnapshotStore
}

func NewSnapshotHandler(service *service.NetworkService, snapshots *storage.SnapshotStore) *SnapshotHandler {
	return &SnapshotHandler{service: service, snapshots: snapshots}
}

func (h *SnapshotHandler) List(c *gin.Context) {
	keys, err := h.snapshots.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list snapshots", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": keys})
}

// Export uploads the current company list
func (h *SnapshotHandler) Export(c *gin.Context) {
	key, err := h.snapshots.Export(c.Request.Context(), h.service.Companies())
	if err != nil {
		respondError(c, "failed to export snapshot", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

type restoreRequest struct {
	Key string `json:"key"`
}

// Restore replaces the company list with a snapshot, the newest when no key is given
func (h *SnapshotHandler) Restore(c *gin.Context) {
	var req restoreRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid restore payload", err)
			return
		}
	}

	companies, key, err := h.snapshots.Restore(c.Request.Context(), req.Key)
	if err != nil {
		respondError(c, "failed to restore snapshot", err)
		return
	}
	h.service.ReplaceCompanies(c.Request.Context(), companies)
	c.JSON(http.StatusOK, gin.H{"key": key, "count": len(companies)})
}
