// SPDX-License-Identifier: AGPL-3.0-only
package reposter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fluffyriot/xpost/internal/common"
	"github.com/fluffyriot/xpost/internal/pusher"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
)

// ProcessAutoRepost syncs the user's source accounts and then reposts every
// not yet reposted post reachable through an active link. Failures of single
// posts or links are logged and counted; such posts are retried next time.
func (e *Engine) ProcessAutoRepost(ctx context.Context, userID uuid.UUID) (Report, error) {

	report, err := e.syncSources(ctx, userID)
	if err != nil {
		return report, err
	}

	links, err := e.links.ActiveLinksFor(ctx, userID)
	if err != nil {
		return report, fmt.Errorf("load active links: %w", err)
	}

	for _, link := range links {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		e.processLink(ctx, userID, link, &report)
	}

	return report, nil
}

func (e *Engine) processLink(ctx context.Context, userID uuid.UUID, link store.Link, report *Report) {

	unsynced, err := e.posts.FindUnsynced(ctx, userID, link.SourceAccountID)
	if err != nil {
		log.Printf("Reposter: could not load unsynced posts of %s for user %s: %v", link.SourceAccountID, userID, err)
		report.LinksSkipped++
		return
	}
	if len(unsynced) == 0 {
		return
	}

	dest, err := e.accounts.GetDestination(ctx, userID, link.DestinationAccountID)
	if err != nil {
		log.Printf("Reposter: skipping link %s, destination %s unavailable: %v", link.ID, link.DestinationAccountID, err)
		report.LinksSkipped++
		return
	}
	if !hasSession(dest) {
		log.Printf("Reposter: skipping link %s, destination %s is not connected", link.ID, dest.AccountID)
		report.LinksSkipped++
		return
	}

	// Unsynced posts come newest first; publish oldest first to keep the timeline order.
	for i := len(unsynced) - 1; i >= 0; i-- {
		post := unsynced[i]

		_, err := e.repost(ctx, userID, post.ID, &dest)
		switch {
		case err == nil:
			report.Reposted++
		case errors.Is(err, store.ErrConflict), errors.Is(err, ErrEmptyPost):
			report.Skipped++
		case errors.Is(err, common.ErrSessionExpired):
			report.Failed++
			report.Skipped += i
			log.Printf("Reposter: session of destination %s expired, reconnect required", dest.AccountID)
			return
		default:
			report.Failed++
			log.Printf("Reposter: repost of post %s to %s failed: %v", post.ID, dest.AccountID, err)
		}
	}
}

// RepostOne publishes a single post through the first connected destination
// linked to the post's source account.
func (e *Engine) RepostOne(ctx context.Context, userID, postID uuid.UUID) (store.Post, error) {

	post, err := e.posts.Get(ctx, userID, postID)
	if err != nil {
		return store.Post{}, err
	}
	if post.IsReposted {
		return store.Post{}, fmt.Errorf("post %s: %w", postID, store.ErrAlreadyReposted)
	}

	links, err := e.links.ActiveLinksForSource(ctx, userID, post.SourceAccountID)
	if err != nil {
		return store.Post{}, err
	}
	if len(links) == 0 {
		return store.Post{}, fmt.Errorf("no active link for source account %s: %w", post.SourceAccountID, store.ErrNotFound)
	}

	for _, link := range links {
		dest, err := e.accounts.GetDestination(ctx, userID, link.DestinationAccountID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return store.Post{}, err
		}
		if !hasSession(dest) {
			continue
		}

		return e.repost(ctx, userID, postID, &dest)
	}

	return store.Post{}, fmt.Errorf("source account %s: %w", post.SourceAccountID, ErrNotConnected)
}

// repost runs the single-post body shared by the automatic and manual paths.
// dest is updated in place when the destination session gets refreshed.
func (e *Engine) repost(ctx context.Context, userID, postID uuid.UUID, dest *store.DestinationAccount) (store.Post, error) {

	release, ok := e.claim(postID)
	if !ok {
		return store.Post{}, fmt.Errorf("post %s: %w", postID, ErrRepostInProgress)
	}
	defer release()

	// Re-read under the claim; another caller may have finished in the meantime.
	post, err := e.posts.Get(ctx, userID, postID)
	if err != nil {
		return store.Post{}, err
	}
	if post.IsReposted {
		return store.Post{}, fmt.Errorf("post %s: %w", postID, store.ErrAlreadyReposted)
	}
	if strings.TrimSpace(post.Source.Text) == "" {
		return store.Post{}, fmt.Errorf("post %s: %w", postID, ErrEmptyPost)
	}

	session := pusher.Session{
		DID:        dest.AccountID,
		Handle:     dest.Username,
		AccessJwt:  dest.AccessSessionToken,
		RefreshJwt: dest.RefreshSessionToken,
	}

	created, refreshed, err := e.destination.CreatePost(ctx, post.Source.Text, session)
	if refreshed != nil {
		dest.AccessSessionToken = refreshed.AccessJwt
		dest.RefreshSessionToken = refreshed.RefreshJwt
		if serr := e.accounts.UpdateDestinationSession(ctx, userID, dest.AccountID, refreshed.AccessJwt, refreshed.RefreshJwt); serr != nil {
			log.Printf("Reposter: could not store refreshed session of %s: %v", dest.AccountID, serr)
		}
	}
	if err != nil {
		if errors.Is(err, common.ErrSessionExpired) {
			dest.SyncStatus = store.StatusReconnectRequired
			if serr := e.accounts.SetDestinationStatus(ctx, userID, dest.AccountID, store.StatusReconnectRequired, err.Error()); serr != nil {
				log.Printf("Reposter: could not record status of destination %s: %v", dest.AccountID, serr)
			}
		}
		return store.Post{}, err
	}

	marked, err := e.posts.MarkReposted(ctx, userID, postID, store.DestinationPost{
		ID:         created.ID,
		AccountID:  dest.AccountID,
		Text:       created.Text,
		CreatedAt:  created.CreatedAt,
		LikeCount:  created.LikeCount,
		ShareCount: created.ShareCount,
	})
	if err != nil {
		log.Printf("Reposter: post %s published as %s but could not be recorded: %v", postID, created.URI, err)
		return store.Post{}, err
	}

	log.Printf("Reposter: post %s reposted to %s as %s", postID, dest.AccountID, created.ID)
	return marked, nil
}

func hasSession(dest store.DestinationAccount) bool {
	return dest.IsConnected &&
		dest.SyncStatus != store.StatusReconnectRequired &&
		(dest.AccessSessionToken != "" || dest.RefreshSessionToken != "")
}
