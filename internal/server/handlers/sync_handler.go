package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/marketsync/internal/repository/mongodb"
	syncsvc "github.com/avolkov/marketsync/internal/service/sync"
)

const defaultRunsLimit = 20

// SyncHandler exposes sync triggering and run history over HTTP.
type SyncHandler struct {
	svc     *syncsvc.Service
	history mongodb.Repository
	logger  *zap.Logger
}

// NewSyncHandler constructs the HTTP handler adapter. history may be nil when
// no run store is configured.
func NewSyncHandler(svc *syncsvc.Service, history mongodb.Repository, logger *zap.Logger) *SyncHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncHandler{svc: svc, history: history, logger: logger}
}

// Trigger starts a sync run in the background.
func (h *SyncHandler) Trigger(c *gin.Context) {
	if err := h.svc.Start("http"); err != nil {
		if errors.Is(err, syncsvc.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "sync run already in progress"})
			return
		}
		h.logger.Error("failed to start sync run", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to start sync run"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

// Runs returns the most recent run reports.
func (h *SyncHandler) Runs(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history store is not configured"})
		return
	}

	limit := int64(defaultRunsLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	runs, err := h.history.LatestRuns(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load run history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load run history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
