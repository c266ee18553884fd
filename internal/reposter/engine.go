// SPDX-License-Identifier: AGPL-3.0-only
package reposter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fluffyriot/xpost/internal/fetcher"
	"github.com/fluffyriot/xpost/internal/pusher"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
)

const DefaultFetchWindow = 10

var (
	ErrNotConnected = errors.New("destination account has no connected session") // 409 Conflict
	ErrValidation   = errors.New("invalid request")                              // 400 Bad Request
)

var ErrRepostInProgress = fmt.Errorf("repost already in progress: %w", store.ErrConflict)

// ErrEmptyPost marks a source post with no publishable text. Such posts stay
// unsynced and are skipped on every pass.
var ErrEmptyPost = fmt.Errorf("post has no text: %w", ErrValidation)

type PostStore interface {
	UpsertFromSource(ctx context.Context, userID uuid.UUID, sourceAccountID string, sp store.SourcePost) (store.Post, error)
	FindUnsynced(ctx context.Context, userID uuid.UUID, sourceAccountID string) ([]store.Post, error)
	Get(ctx context.Context, userID, postID uuid.UUID) (store.Post, error)
	MarkReposted(ctx context.Context, userID, postID uuid.UUID, dp store.DestinationPost) (store.Post, error)
	ListWithAccounts(ctx context.Context, userID uuid.UUID) ([]store.EnrichedPost, error)
}

type LinkStore interface {
	Link(ctx context.Context, userID uuid.UUID, sourceAccountID, destinationAccountID string) (store.Link, store.LinkResult, error)
	Unlink(ctx context.Context, userID, linkID uuid.UUID) (store.Link, error)
	ActiveLinksFor(ctx context.Context, userID uuid.UUID) ([]store.Link, error)
	ActiveLinksForSource(ctx context.Context, userID uuid.UUID, sourceAccountID string) ([]store.Link, error)
	HasOtherActiveLink(ctx context.Context, userID uuid.UUID, accountID string, excludingLinkID uuid.UUID, role store.Role) (bool, error)
}

type AccountStore interface {
	EligibleSources(ctx context.Context, userID uuid.UUID) ([]store.SourceAccount, error)
	GetSource(ctx context.Context, userID uuid.UUID, accountID string) (store.SourceAccount, error)
	UpdateSourceTokens(ctx context.Context, userID uuid.UUID, accountID, accessToken, refreshToken string, expiresAt time.Time) error
	SetSourceLinked(ctx context.Context, userID uuid.UUID, accountID string, linked bool) error
	SetSourceStatus(ctx context.Context, userID uuid.UUID, accountID, status, reason string) error
	GetDestination(ctx context.Context, userID uuid.UUID, accountID string) (store.DestinationAccount, error)
	UpdateDestinationSession(ctx context.Context, userID uuid.UUID, accountID, accessToken, refreshToken string) error
	SetDestinationConnected(ctx context.Context, userID uuid.UUID, accountID string, connected bool) error
	SetDestinationStatus(ctx context.Context, userID uuid.UUID, accountID, status, reason string) error
}

type SourceClient interface {
	FetchRecentPosts(ctx context.Context, accountID, accessToken string, maxCount int) ([]fetcher.SourcePost, error)
	RefreshToken(ctx context.Context, refreshToken string) (fetcher.TokenSet, error)
}

type DestinationClient interface {
	CreatePost(ctx context.Context, text string, session pusher.Session) (pusher.CreatedPost, *pusher.Session, error)
}

// Engine pulls source posts into the post store and reposts them to linked
// destination accounts. A post is published at most once per process: the
// in-flight set keeps the scheduler and manual requests from publishing the
// same post concurrently, and the store refuses a second MarkReposted.
type Engine struct {
	posts       PostStore
	links       LinkStore
	accounts    AccountStore
	source      SourceClient
	destination DestinationClient
	window      int
	now         func() time.Time

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

func NewEngine(posts PostStore, links LinkStore, accounts AccountStore, source SourceClient, destination DestinationClient, window int) *Engine {
	if window <= 0 {
		window = DefaultFetchWindow
	}

	return &Engine{
		posts:       posts,
		links:       links,
		accounts:    accounts,
		source:      source,
		destination: destination,
		window:      window,
		now:         time.Now,
		inflight:    make(map[uuid.UUID]struct{}),
	}
}

// Report summarizes one automatic repost pass for logging.
type Report struct {
	AccountsSynced int
	AccountsFailed int
	Reposted       int
	Failed         int
	Skipped        int
	LinksSkipped   int
}

func (r Report) String() string {
	return fmt.Sprintf("accounts synced=%d failed=%d, posts reposted=%d failed=%d skipped=%d, links skipped=%d",
		r.AccountsSynced, r.AccountsFailed, r.Reposted, r.Failed, r.Skipped, r.LinksSkipped)
}

func (e *Engine) claim(postID uuid.UUID) (func(), bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, busy := e.inflight[postID]; busy {
		return nil, false
	}
	e.inflight[postID] = struct{}{}

	return func() {
		e.mu.Lock()
		delete(e.inflight, postID)
		e.mu.Unlock()
	}, true
}
