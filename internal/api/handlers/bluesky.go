// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/fluffyriot/xpost/internal/common"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/gin-gonic/gin"
)

func (h *Handler) BlueskyAccountsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	destinations, err := h.Accounts.ListDestinations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]AccountResponse, 0, len(destinations))
	for _, a := range destinations {
		out = append(out, destinationAccountResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

// BlueskyConnectHandler authenticates with an app password and stores the
// session. Reconnecting an account already known by its DID updates it.
func (h *Handler) BlueskyConnectHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req BlueskyConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Identifier == "" || req.Password == "" {
		badRequest(c, "Bluesky identifier and password are required")
		return
	}

	ctx := c.Request.Context()

	account, err := h.Bluesky.Authenticate(ctx, req.Identifier, req.Password)
	if errors.Is(err, common.ErrAuth) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid Bluesky credentials"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	stored, err := h.Accounts.UpsertDestination(ctx, store.DestinationAccount{
		UserID:              userID,
		AccountID:           account.AccountID,
		Username:            account.Username,
		DisplayName:         account.DisplayName,
		ProfileImageURL:     account.ProfileImageURL,
		AccessSessionToken:  account.Session.AccessJwt,
		RefreshSessionToken: account.Session.RefreshJwt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Handlers: Bluesky account %s connected for user %s", stored.Username, userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Bluesky account connected successfully",
		"account": destinationAccountResponse(stored),
	})
}
