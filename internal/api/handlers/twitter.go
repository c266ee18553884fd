// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/fluffyriot/xpost/internal/authstate"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/gin-gonic/gin"
)

const accountsPage = "/accounts"

func (h *Handler) TwitterAccountsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sources, err := h.Accounts.ListSources(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]AccountResponse, 0, len(sources))
	for _, a := range sources {
		out = append(out, sourceAccountResponse(a))
	}

	c.JSON(http.StatusOK, gin.H{"twitterAccounts": out})
}

// TwitterAuthHandler starts the OAuth2 PKCE flow. The state and code verifier
// are kept server side until the callback consumes them.
func (h *Handler) TwitterAuthHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	req, err := h.Twitter.GenerateAuthURL()
	if err != nil {
		respondError(c, err)
		return
	}

	pending := authstate.Pending{UserID: userID, CodeVerifier: req.CodeVerifier}
	if err := h.States.Save(c.Request.Context(), req.State, pending, h.Config.OAuthStateTTL); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authUrl": req.AuthorizationURL,
		"state":   req.State,
	})
}

func (h *Handler) TwitterCallbackHandler(c *gin.Context) {
	if denied := c.Query("error"); denied != "" {
		redirectTwitterResult(c, "", denied)
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		badRequest(c, "Missing required parameters")
		return
	}

	ctx := c.Request.Context()

	pending, found, err := h.States.Take(ctx, state)
	if err != nil {
		log.Printf("Handlers: could not load OAuth state: %v", err)
		redirectTwitterResult(c, "", "could not verify authorization state")
		return
	}
	if !found {
		redirectTwitterResult(c, "", "authorization state is invalid or expired")
		return
	}

	account, err := h.Twitter.ExchangeCodeForToken(ctx, code, state, pending.CodeVerifier)
	if err != nil {
		log.Printf("Handlers: Twitter token exchange for user %s failed: %v", pending.UserID, err)
		redirectTwitterResult(c, "", err.Error())
		return
	}

	_, err = h.Accounts.UpsertSource(ctx, store.SourceAccount{
		UserID:          pending.UserID,
		AccountID:       account.AccountID,
		Username:        account.Username,
		DisplayName:     account.DisplayName,
		ProfileImageURL: account.ProfileImageURL,
		AccessToken:     account.Tokens.AccessToken,
		RefreshToken:    account.Tokens.RefreshToken,
		TokenExpiresAt:  account.Tokens.ExpiresAt,
	})
	if err != nil {
		log.Printf("Handlers: could not store Twitter account %s: %v", account.AccountID, err)
		redirectTwitterResult(c, "", "could not store the connected account")
		return
	}

	log.Printf("Handlers: Twitter account @%s connected for user %s", account.Username, pending.UserID)
	redirectTwitterResult(c, account.AccountID, "")
}

func redirectTwitterResult(c *gin.Context, accountID, failure string) {
	q := url.Values{}
	if failure != "" {
		q.Set("twitter_connect", "error")
		q.Set("message", failure)
	} else {
		q.Set("twitter_connect", "success")
		q.Set("id", accountID)
	}

	c.Redirect(http.StatusFound, accountsPage+"?"+q.Encode())
}
