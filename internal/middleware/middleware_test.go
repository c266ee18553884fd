// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(sessionValue string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("xpost_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware())

	r.POST("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(SessionUserKey, sessionValue)
		_ = session.Save()
		c.Status(http.StatusNoContent)
	})
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/posts", func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestAuthMiddleware_RejectsAnonymous(t *testing.T) {
	r := newRouter("")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"not logged in"}`, w.Body.String())
}

func TestAuthMiddleware_PublicRoutes(t *testing.T) {
	r := newRouter("")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestAuthMiddleware_SessionUser(t *testing.T) {
	userID := uuid.New()
	r := newRouter(userID.String())
	cookies := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())
}

func TestAuthMiddleware_MalformedSessionUser(t *testing.T) {
	r := newRouter("not-a-uuid")
	cookies := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
