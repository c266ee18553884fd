// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"context"

	"github.com/fluffyriot/xpost/internal/authstate"
	"github.com/fluffyriot/xpost/internal/config"
	"github.com/fluffyriot/xpost/internal/fetcher"
	"github.com/fluffyriot/xpost/internal/pusher"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
)

type Engine interface {
	SyncSourcePosts(ctx context.Context, userID uuid.UUID) ([]store.EnrichedPost, error)
	RepostOne(ctx context.Context, userID, postID uuid.UUID) (store.Post, error)
	LinkAccounts(ctx context.Context, userID uuid.UUID, sourceAccountID, destinationAccountID string) (store.Link, store.LinkResult, error)
	UnlinkAccounts(ctx context.Context, userID, linkID uuid.UUID) (store.Link, error)
}

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (store.User, error)
}

type AccountStore interface {
	UpsertSource(ctx context.Context, a store.SourceAccount) (store.SourceAccount, error)
	ListSources(ctx context.Context, userID uuid.UUID) ([]store.SourceAccount, error)
	UpsertDestination(ctx context.Context, a store.DestinationAccount) (store.DestinationAccount, error)
	ListDestinations(ctx context.Context, userID uuid.UUID) ([]store.DestinationAccount, error)
}

type Scheduler interface {
	SyncUser(userID uuid.UUID) error
	IsActive() bool
}

type PostLister interface {
	ListWithAccounts(ctx context.Context, userID uuid.UUID) ([]store.EnrichedPost, error)
}

type LinkStore interface {
	ListActiveWithAccounts(ctx context.Context, userID uuid.UUID) ([]store.LinkWithAccounts, error)
}

type TwitterAuth interface {
	GenerateAuthURL() (fetcher.AuthRequest, error)
	ExchangeCodeForToken(ctx context.Context, code, state, codeVerifier string) (fetcher.ConnectedAccount, error)
}

type BlueskyAuth interface {
	Authenticate(ctx context.Context, identifier, secret string) (pusher.ConnectedAccount, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	Engine    Engine
	Scheduler Scheduler
	Posts     PostLister
	Users     UserStore
	Accounts  AccountStore
	Links     LinkStore
	States    authstate.Store
	Twitter   TwitterAuth
	Bluesky   BlueskyAuth
	DBConn    Pinger
	Config    *config.AppConfig
}

func NewHandler(engine Engine, scheduler Scheduler, posts PostLister, users UserStore, accounts AccountStore, links LinkStore, states authstate.Store, twitter TwitterAuth, bluesky BlueskyAuth, db Pinger, cfg *config.AppConfig) *Handler {
	return &Handler{
		Engine:    engine,
		Scheduler: scheduler,
		Posts:     posts,
		Users:     users,
		Accounts:  accounts,
		Links:     links,
		States:    states,
		Twitter:   twitter,
		Bluesky:   bluesky,
		DBConn:    db,
		Config:    cfg,
	}
}
