package handlers

import (
	"errors"
	"net/http"
	"time"

	"storesync/internal/logger"
	"storesync/internal/worker"
	"storesync/internal/worker/processors"

	"github.com/gin-gonic/gin"
)

// Syncer is the part of the worker the ops API drives.
type Syncer interface {
	Trigger() error
	Running() bool
	LastReport() (processors.Report, bool)
}

type SyncHandler struct {
	syncer Syncer
	logger *logger.Logger
}

func NewSyncHandler(syncer Syncer, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{
		syncer: syncer,
		logger: logger,
	}
}

// Trigger starts a sync run now.
func (h *SyncHandler) Trigger(c *gin.Context) {
	if err := h.syncer.Trigger(); err != nil {
		if errors.Is(err, worker.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to trigger sync: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to trigger sync"})
		return
	}

	h.logger.Info("Sync run triggered via API")
	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

func (h *SyncHandler) Status(c *gin.Context) {
	resp := gin.H{
		"running": h.syncer.Running(),
	}
	if report, ok := h.syncer.LastReport(); ok {
		resp["last_run"] = gin.H{
			"started_at":     report.StartedAt.Format(time.RFC3339),
			"duration":       report.Duration.String(),
			"fetched":        report.Fetched,
			"enriched":       report.Enriched,
			"partial":        report.Partial,
			"created":        report.Created,
			"media_attached": report.MediaAttached,
			"failed":         report.Failed,
			"error":          report.Error,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
