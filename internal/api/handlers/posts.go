// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/fluffyriot/xpost/internal/exports"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PostsHandler syncs the user's source accounts and returns the post list.
func (h *Handler) PostsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	posts, err := h.Engine.SyncSourcePosts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResponse(p))
	}

	c.JSON(http.StatusOK, gin.H{"posts": out})
}

func (h *Handler) RepostHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req RepostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PostID == "" {
		badRequest(c, "Post ID is required")
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		badRequest(c, "invalid post id")
		return
	}

	post, err := h.Engine.RepostOne(c.Request.Context(), userID, postID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post reposted", "post": postResponse(store.EnrichedPost{Post: post})})
}

// ExportPostsHandler streams the stored posts as CSV without syncing first.
func (h *Handler) ExportPostsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	posts, err := h.Posts.ListWithAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+exports.Filename(userID, time.Now())+`"`)
	c.Status(http.StatusOK)

	if err := exports.WritePostsCSV(c.Writer, posts); err != nil {
		log.Printf("Handlers: posts export for user %s failed: %v", userID, err)
	}
}
