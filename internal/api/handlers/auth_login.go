// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/fluffyriot/xpost/internal/authhelp"
	"github.com/fluffyriot/xpost/internal/middleware"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	user, err := h.Users.GetByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if !authhelp.CheckPasswordHash(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID.String())
	if err := session.Save(); err != nil {
		log.Printf("Handlers: could not save session for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "logged in",
		"user_id":  user.ID.String(),
		"username": user.Username,
	})
}

func (h *Handler) LogoutHandler(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()
	c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// currentUser writes a 401 when no user is attached to the request.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not logged in"})
	}
	return userID, ok
}
