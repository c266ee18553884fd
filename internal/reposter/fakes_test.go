// SPDX-License-Identifier: AGPL-3.0-only
package reposter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fluffyriot/xpost/internal/common"
	"github.com/fluffyriot/xpost/internal/fetcher"
	"github.com/fluffyriot/xpost/internal/pusher"
	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
)

// fakePosts mirrors the guarded semantics of store.Posts in memory.
type fakePosts struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*store.Post
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: make(map[uuid.UUID]*store.Post)}
}

func (f *fakePosts) UpsertFromSource(_ context.Context, userID uuid.UUID, sourceAccountID string, sp store.SourcePost) (store.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.posts {
		if p.UserID == userID && p.Source.ID == sp.ID {
			p.Source.LikeCount = sp.LikeCount
			p.Source.ShareCount = sp.ShareCount
			return *p, nil
		}
	}

	p := &store.Post{
		ID:              uuid.New(),
		UserID:          userID,
		SourceAccountID: sourceAccountID,
		Source:          sp,
	}
	f.posts[p.ID] = p
	return *p, nil
}

func (f *fakePosts) FindUnsynced(_ context.Context, userID uuid.UUID, sourceAccountID string) ([]store.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []store.Post
	for _, p := range f.posts {
		if p.UserID == userID && p.SourceAccountID == sourceAccountID && !p.IsReposted {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source.CreatedAt.After(out[j].Source.CreatedAt) })
	return out, nil
}

func (f *fakePosts) Get(_ context.Context, userID, postID uuid.UUID) (store.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.posts[postID]
	if !ok || p.UserID != userID {
		return store.Post{}, store.ErrNotFound
	}
	return *p, nil
}

func (f *fakePosts) MarkReposted(_ context.Context, userID, postID uuid.UUID, dp store.DestinationPost) (store.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.posts[postID]
	if !ok || p.UserID != userID {
		return store.Post{}, store.ErrNotFound
	}
	if p.IsReposted {
		return store.Post{}, store.ErrAlreadyReposted
	}

	d := dp
	p.Destination = &d
	p.IsReposted = true
	return *p, nil
}

func (f *fakePosts) ListWithAccounts(_ context.Context, userID uuid.UUID) ([]store.EnrichedPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []store.EnrichedPost{}
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, store.EnrichedPost{Post: *p})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source.CreatedAt.After(out[j].Source.CreatedAt) })
	return out, nil
}

func (f *fakePosts) bySourceID(sourceID string) store.Post {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.posts {
		if p.Source.ID == sourceID {
			return *p
		}
	}
	return store.Post{}
}

func (f *fakePosts) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts)
}

type fakeLinks struct {
	mu    sync.Mutex
	links []*store.Link
}

func (f *fakeLinks) Link(_ context.Context, userID uuid.UUID, src, dst string) (store.Link, store.LinkResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, l := range f.links {
		if l.UserID == userID && l.SourceAccountID == src && l.DestinationAccountID == dst {
			if l.Active {
				return store.Link{}, store.LinkAlreadyActive, store.ErrLinkAlreadyActive
			}
			l.Active = true
			return *l, store.LinkReactivated, nil
		}
	}

	l := &store.Link{ID: uuid.New(), UserID: userID, SourceAccountID: src, DestinationAccountID: dst, Active: true}
	f.links = append(f.links, l)
	return *l, store.LinkCreated, nil
}

func (f *fakeLinks) Unlink(_ context.Context, userID, linkID uuid.UUID) (store.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, l := range f.links {
		if l.ID == linkID && l.UserID == userID && l.Active {
			l.Active = false
			return *l, nil
		}
	}
	return store.Link{}, store.ErrNotFound
}

func (f *fakeLinks) ActiveLinksFor(_ context.Context, userID uuid.UUID) ([]store.Link, error) {
	return f.active(func(l *store.Link) bool { return l.UserID == userID }), nil
}

func (f *fakeLinks) ActiveLinksForSource(_ context.Context, userID uuid.UUID, src string) ([]store.Link, error) {
	return f.active(func(l *store.Link) bool { return l.UserID == userID && l.SourceAccountID == src }), nil
}

func (f *fakeLinks) HasOtherActiveLink(_ context.Context, userID uuid.UUID, accountID string, excluding uuid.UUID, role store.Role) (bool, error) {
	links := f.active(func(l *store.Link) bool {
		if l.UserID != userID || l.ID == excluding {
			return false
		}
		if role == store.RoleSource {
			return l.SourceAccountID == accountID
		}
		return l.DestinationAccountID == accountID
	})
	return len(links) > 0, nil
}

func (f *fakeLinks) active(match func(*store.Link) bool) []store.Link {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []store.Link
	for _, l := range f.links {
		if l.Active && match(l) {
			out = append(out, *l)
		}
	}
	return out
}

type fakeAccounts struct {
	mu           sync.Mutex
	sources      map[string]*store.SourceAccount
	destinations map[string]*store.DestinationAccount
	sessionSaves int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		sources:      make(map[string]*store.SourceAccount),
		destinations: make(map[string]*store.DestinationAccount),
	}
}

func (f *fakeAccounts) addSource(a store.SourceAccount) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[a.AccountID] = &a
}

func (f *fakeAccounts) addDestination(a store.DestinationAccount) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destinations[a.AccountID] = &a
}

func (f *fakeAccounts) source(id string) store.SourceAccount {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.sources[id]
}

func (f *fakeAccounts) destination(id string) store.DestinationAccount {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.destinations[id]
}

func (f *fakeAccounts) EligibleSources(_ context.Context, userID uuid.UUID) ([]store.SourceAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []store.SourceAccount
	for _, a := range f.sources {
		if a.UserID == userID && a.Connected && a.AccessToken != "" {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (f *fakeAccounts) GetSource(_ context.Context, userID uuid.UUID, id string) (store.SourceAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.sources[id]
	if !ok || a.UserID != userID {
		return store.SourceAccount{}, store.ErrNotFound
	}
	return *a, nil
}

func (f *fakeAccounts) UpdateSourceTokens(_ context.Context, _ uuid.UUID, id, access, refresh string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	a := f.sources[id]
	a.AccessToken, a.RefreshToken, a.TokenExpiresAt = access, refresh, expiresAt
	return nil
}

func (f *fakeAccounts) SetSourceLinked(_ context.Context, _ uuid.UUID, id string, linked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[id].Linked = linked
	return nil
}

// setConnected flips the OAuth connection, as a revoked grant would.
func (f *fakeAccounts) setConnected(id string, connected bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[id].Connected = connected
}

func (f *fakeAccounts) SetSourceStatus(_ context.Context, _ uuid.UUID, id, status, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[id].SyncStatus = status
	f.sources[id].StatusReason = reason
	return nil
}

func (f *fakeAccounts) GetDestination(_ context.Context, userID uuid.UUID, id string) (store.DestinationAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.destinations[id]
	if !ok || a.UserID != userID {
		return store.DestinationAccount{}, store.ErrNotFound
	}
	return *a, nil
}

func (f *fakeAccounts) UpdateDestinationSession(_ context.Context, _ uuid.UUID, id, access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.destinations[id].AccessSessionToken = access
	f.destinations[id].RefreshSessionToken = refresh
	f.sessionSaves++
	return nil
}

func (f *fakeAccounts) SetDestinationConnected(_ context.Context, _ uuid.UUID, id string, connected bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destinations[id].IsConnected = connected
	return nil
}

func (f *fakeAccounts) SetDestinationStatus(_ context.Context, _ uuid.UUID, id, status, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destinations[id].SyncStatus = status
	f.destinations[id].StatusReason = reason
	return nil
}

// fakeSource serves a fixed timeline per account. Tokens listed in rejected
// fail with common.ErrAuth.
type fakeSource struct {
	mu         sync.Mutex
	timelines  map[string][]fetcher.SourcePost
	failures   map[string]error
	rejected   map[string]bool
	refreshed  fetcher.TokenSet
	refreshErr error
	fetches    int
	refreshes  int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		timelines: make(map[string][]fetcher.SourcePost),
		failures:  make(map[string]error),
		rejected:  make(map[string]bool),
	}
}

func (f *fakeSource) FetchRecentPosts(_ context.Context, accountID, accessToken string, maxCount int) ([]fetcher.SourcePost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches++
	if err := f.failures[accountID]; err != nil {
		return nil, err
	}
	if f.rejected[accessToken] {
		return nil, fmt.Errorf("%w: token rejected", common.ErrAuth)
	}

	posts := f.timelines[accountID]
	if len(posts) > maxCount {
		posts = posts[:maxCount]
	}
	return append([]fetcher.SourcePost(nil), posts...), nil
}

func (f *fakeSource) RefreshToken(_ context.Context, refreshToken string) (fetcher.TokenSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.refreshes++
	if f.refreshErr != nil {
		return fetcher.TokenSet{}, f.refreshErr
	}
	return f.refreshed, nil
}

// fakeDestination records published texts. failText makes every post with
// that text fail once per configured error.
type fakeDestination struct {
	mu        sync.Mutex
	published []string
	attempts  int
	failText  map[string]error
	refreshed *pusher.Session
	sessions  []pusher.Session

	// entered is signalled on the first call, which then waits for gate.
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func newFakeDestination() *fakeDestination {
	return &fakeDestination{failText: make(map[string]error)}
}

func (f *fakeDestination) CreatePost(_ context.Context, text string, session pusher.Session) (pusher.CreatedPost, *pusher.Session, error) {
	if f.gate != nil {
		first := false
		f.once.Do(func() { first = true })
		if first {
			close(f.entered)
			<-f.gate
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.attempts++
	f.sessions = append(f.sessions, session)

	if err, ok := f.failText[text]; ok {
		return pusher.CreatedPost{}, nil, err
	}

	f.published = append(f.published, text)
	n := len(f.published)

	refreshed := f.refreshed
	f.refreshed = nil

	return pusher.CreatedPost{
		ID:        fmt.Sprintf("rkey%d", n),
		URI:       fmt.Sprintf("at://%s/app.bsky.feed.post/rkey%d", session.DID, n),
		Text:      text,
		CreatedAt: time.Now(),
	}, refreshed, nil
}

func (f *fakeDestination) publishedTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.published...)
}

var errBoom = errors.New("boom")
