// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"net/http"

	"github.com/fluffyriot/xpost/internal/worker"
	"github.com/gin-gonic/gin"
)

// TriggerSyncHandler queues a repost pass for the current user on the
// background worker and answers before it runs.
func (h *Handler) TriggerSyncHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	err := h.Scheduler.SyncUser(userID)
	switch {
	case errors.Is(err, worker.ErrSyncInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "a sync is already running for this account"})
		return
	case errors.Is(err, worker.ErrNotRunning):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "background worker is not running"})
		return
	case err != nil:
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, SuccessResponse{Message: "Sync triggered successfully"})
}
