// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"

	"github.com/fluffyriot/xpost/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) AccountsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sources, err := h.Accounts.ListSources(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	destinations, err := h.Accounts.ListDestinations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	twitter := make([]AccountResponse, 0, len(sources))
	for _, a := range sources {
		twitter = append(twitter, sourceAccountResponse(a))
	}
	bluesky := make([]AccountResponse, 0, len(destinations))
	for _, a := range destinations {
		bluesky = append(bluesky, destinationAccountResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{
		"twitterAccounts": twitter,
		"blueskyAccounts": bluesky,
	})
}

func (h *Handler) LinkAccountsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	link, result, err := h.Engine.LinkAccounts(c.Request.Context(), userID, req.SourceAccountID, req.DestinationAccountID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if result == store.LinkReactivated {
		status = http.StatusOK
	}

	c.JSON(status, gin.H{
		"message": "accounts linked",
		"result":  result.String(),
		"link": gin.H{
			"id":                   link.ID.String(),
			"sourceAccountId":      link.SourceAccountID,
			"destinationAccountId": link.DestinationAccountID,
			"active":               link.Active,
		},
	})
}

func (h *Handler) ListLinksHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	links, err := h.Links.ListActiveWithAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, linkResponse(l))
	}

	c.JSON(http.StatusOK, gin.H{"links": out})
}

func (h *Handler) UnlinkAccountsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	linkID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid link id")
		return
	}

	if _, err := h.Engine.UnlinkAccounts(c.Request.Context(), userID, linkID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "accounts unlinked"})
}
