// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionUserKey = "user_id"
	contextUserKey = "xpost.user_id"
)

// AuthMiddleware rejects requests to non-public routes without a logged in
// session and stores the session user id on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicRoute(c.Request.URL.Path) {
			c.Next()
			return
		}

		session := sessions.Default(c)
		raw, ok := session.Get(SessionUserKey).(string)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			session.Clear()
			_ = session.Save()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		c.Set(contextUserKey, userID)
		c.Next()
	}
}

// UserID returns the user id stored by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func isPublicRoute(path string) bool {
	publicPrefixes := []string{
		"/login",
		"/health",
		"/accounts/twitter/callback",
	}

	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
