// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheckHandler)
	r.POST("/login", h.LoginHandler)
	r.POST("/logout", h.LogoutHandler)

	r.GET("/posts", h.PostsHandler)
	r.GET("/posts/export", h.ExportPostsHandler)
	r.POST("/posts/repost", h.RepostHandler)
	r.POST("/sync", h.TriggerSyncHandler)

	accounts := r.Group("/accounts")
	accounts.GET("", h.AccountsHandler)
	accounts.POST("/link", h.LinkAccountsHandler)
	accounts.GET("/links", h.ListLinksHandler)
	accounts.DELETE("/links/:id", h.UnlinkAccountsHandler)

	accounts.GET("/twitter", h.TwitterAccountsHandler)
	accounts.GET("/twitter/auth", h.TwitterAuthHandler)
	accounts.GET("/twitter/callback", h.TwitterCallbackHandler)

	accounts.GET("/bluesky", h.BlueskyAccountsHandler)
	accounts.POST("/bluesky/connect", h.BlueskyConnectHandler)
}
