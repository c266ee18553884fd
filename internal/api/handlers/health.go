// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// HealthCheckHandler reports whether reposting can make progress: the
// database must answer and the background worker must be scheduled.
func (h *Handler) HealthCheckHandler(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok", Worker: "running"}

	switch {
	case h.DBConn == nil:
		resp.Database = "not initialized"
	default:
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		err := h.DBConn.PingContext(ctx)
		cancel()
		if err != nil {
			log.Printf("Handlers: health check ping failed: %v", err)
			resp.Database = "unreachable"
		}
	}

	if h.Scheduler == nil || !h.Scheduler.IsActive() {
		resp.Worker = "stopped"
	}

	if resp.Database != "ok" || resp.Worker != "running" {
		resp.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
