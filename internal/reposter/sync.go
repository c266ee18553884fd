// SPDX-License-Identifier: AGPL-3.0-only
package reposter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fluffyriot/xpost/internal/common"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
)

// Tokens expiring within this margin are refreshed before fetching.
const tokenRefreshMargin = time.Minute

// SyncSourcePosts fetches the recent window of every eligible source account
// and returns the user's stored post list, which is empty for a user with
// no posts. One account failing does not stop the others; its status
// records the failure instead.
func (e *Engine) SyncSourcePosts(ctx context.Context, userID uuid.UUID) ([]store.EnrichedPost, error) {

	if _, err := e.syncSources(ctx, userID); err != nil {
		return nil, err
	}

	return e.posts.ListWithAccounts(ctx, userID)
}

// syncSources returns the account half of a Report.
func (e *Engine) syncSources(ctx context.Context, userID uuid.UUID) (Report, error) {

	var report Report

	accounts, err := e.accounts.EligibleSources(ctx, userID)
	if err != nil {
		return report, fmt.Errorf("load source accounts: %w", err)
	}

	for _, acct := range accounts {
		if err := e.syncAccount(ctx, userID, acct); err != nil {
			report.AccountsFailed++

			status := store.StatusFailed
			if errors.Is(err, common.ErrAuth) {
				status = store.StatusReconnectRequired
			}

			log.Printf("Reposter: sync of source account %s for user %s failed: %v", acct.AccountID, userID, err)

			if serr := e.accounts.SetSourceStatus(ctx, userID, acct.AccountID, status, err.Error()); serr != nil {
				log.Printf("Reposter: could not record status of source account %s: %v", acct.AccountID, serr)
			}
			continue
		}

		report.AccountsSynced++
		if err := e.accounts.SetSourceStatus(ctx, userID, acct.AccountID, store.StatusSynced, ""); err != nil {
			log.Printf("Reposter: could not record status of source account %s: %v", acct.AccountID, err)
		}
	}

	return report, nil
}

func (e *Engine) syncAccount(ctx context.Context, userID uuid.UUID, acct store.SourceAccount) error {

	accessToken := acct.AccessToken

	if e.tokenExpiring(acct) {
		refreshed, err := e.refreshSource(ctx, userID, acct)
		if err != nil {
			return err
		}
		accessToken = refreshed
	}

	fetched, err := e.source.FetchRecentPosts(ctx, acct.AccountID, accessToken, e.window)
	if errors.Is(err, common.ErrAuth) && acct.RefreshToken != "" {
		log.Printf("Reposter: access token of source account %s rejected, refreshing", acct.AccountID)

		refreshed, rerr := e.refreshSource(ctx, userID, acct)
		if rerr != nil {
			return rerr
		}
		fetched, err = e.source.FetchRecentPosts(ctx, acct.AccountID, refreshed, e.window)
	}
	if err != nil {
		return err
	}

	var errs []error
	for _, p := range fetched {
		_, err := e.posts.UpsertFromSource(ctx, userID, acct.AccountID, store.SourcePost{
			ID:         p.ID,
			Text:       p.Text,
			CreatedAt:  p.CreatedAt,
			LikeCount:  p.LikeCount,
			ShareCount: p.ShareCount,
		})
		if err != nil {
			log.Printf("Reposter: could not store post %s of source account %s: %v", p.ID, acct.AccountID, err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (e *Engine) tokenExpiring(acct store.SourceAccount) bool {
	return acct.RefreshToken != "" &&
		!acct.TokenExpiresAt.IsZero() &&
		e.now().Add(tokenRefreshMargin).After(acct.TokenExpiresAt)
}

// refreshSource exchanges the stored refresh token and persists the new pair.
func (e *Engine) refreshSource(ctx context.Context, userID uuid.UUID, acct store.SourceAccount) (string, error) {

	tokens, err := e.source.RefreshToken(ctx, acct.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}

	if err := e.accounts.UpdateSourceTokens(ctx, userID, acct.AccountID, tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt); err != nil {
		return "", fmt.Errorf("store refreshed token: %w", err)
	}

	return tokens.AccessToken, nil
}
