// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/fluffyriot/xpost/internal/common"
	"github.com/fluffyriot/xpost/internal/reposter"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict), errors.Is(err, reposter.ErrNotConnected):
		return http.StatusConflict
	case errors.Is(err, reposter.ErrValidation), errors.Is(err, store.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrAuth), errors.Is(err, common.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, common.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)

	msg := err.Error()
	switch status {
	case http.StatusUnauthorized:
		msg = "reconnect required: " + msg
	case http.StatusInternalServerError:
		log.Printf("Handlers: %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		msg = "internal error"
	}

	c.JSON(status, ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
