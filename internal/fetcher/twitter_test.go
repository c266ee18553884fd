// SPDX-License-Identifier: AGPL-3.0-only
package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fluffyriot/xpost/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestTwitter(t *testing.T, mux *http.ServeMux) *TwitterClient {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/callback",
		Scopes:       []string{"tweet.read"},
		Endpoint: oauth2.Endpoint{
			AuthURL:   srv.URL + "/i/oauth2/authorize",
			TokenURL:  srv.URL + "/2/oauth2/token",
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return NewTwitterClient(common.NewClient(5*time.Second), cfg, srv.URL)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGenerateAuthURLUsesPKCE(t *testing.T) {
	tc := newTestTwitter(t, http.NewServeMux())

	req, err := tc.GenerateAuthURL()
	require.NoError(t, err)

	assert.NotEmpty(t, req.State)
	assert.NotEmpty(t, req.CodeVerifier)

	u, err := url.Parse(req.AuthorizationURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, req.State, q.Get("state"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, oauth2.S256ChallengeFromVerifier(req.CodeVerifier), q.Get("code_challenge"))
	assert.Equal(t, "client", q.Get("client_id"))
}

func TestFetchRecentPosts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2/users/42/tweets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "10", r.URL.Query().Get("max_results"))
		assert.Equal(t, "replies,retweets", r.URL.Query().Get("exclude"))
		assert.Equal(t, "created_at,public_metrics", r.URL.Query().Get("tweet.fields"))

		writeJSON(w, http.StatusOK, map[string]any{
			"data": []map[string]any{
				{
					"id":         "2",
					"text":       "fish &amp; chips",
					"created_at": "2025-03-02T10:00:00Z",
					"public_metrics": map[string]int{
						"like_count": 5, "retweet_count": 2, "quote_count": 1, "reply_count": 9,
					},
				},
				{
					"id":         "1",
					"text":       "hello",
					"created_at": "2025-03-01T10:00:00Z",
					"public_metrics": map[string]int{
						"like_count": 1,
					},
				},
			},
			"meta": map[string]int{"result_count": 2},
		})
	})

	tc := newTestTwitter(t, mux)

	posts, err := tc.FetchRecentPosts(context.Background(), "42", "tok", 10)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "2", posts[0].ID)
	assert.Equal(t, "fish & chips", posts[0].Text)
	assert.Equal(t, 5, posts[0].LikeCount)
	assert.Equal(t, 3, posts[0].ShareCount)
	assert.Equal(t, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), posts[0].CreatedAt.UTC())
	assert.Equal(t, 0, posts[1].ShareCount)
}

func TestFetchRecentPostsEmptyTimeline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2/users/42/tweets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("max_results"))
		writeJSON(w, http.StatusOK, map[string]any{"meta": map[string]int{"result_count": 0}})
	})

	tc := newTestTwitter(t, mux)

	posts, err := tc.FetchRecentPosts(context.Background(), "42", "tok", 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestFetchRecentPostsErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: common.ErrAuth},
		{name: "forbidden", status: http.StatusForbidden, want: common.ErrAuth},
		{name: "throttled", status: http.StatusTooManyRequests, want: common.ErrRateLimited},
		{name: "server error", status: http.StatusBadGateway, want: common.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/2/users/42/tweets", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"title": "nope"})
			})

			tc := newTestTwitter(t, mux)

			_, err := tc.FetchRecentPosts(context.Background(), "42", "tok", 10)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFetchRecentPostsRequiresCredentials(t *testing.T) {
	tc := newTestTwitter(t, http.NewServeMux())

	_, err := tc.FetchRecentPosts(context.Background(), "42", "", 10)
	assert.ErrorIs(t, err, common.ErrAuth)
}

func TestExchangeCodeForToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "the-verifier", r.PostForm.Get("code_verifier"))

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "bearer",
			"expires_in":    7200,
		})
	})
	mux.HandleFunc("/2/users/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]string{
				"id":                "42",
				"name":              "Fluffy",
				"username":          "fluffy",
				"profile_image_url": "https://pbs.twimg.com/a.jpg",
			},
		})
	})

	tc := newTestTwitter(t, mux)

	acct, err := tc.ExchangeCodeForToken(context.Background(), "the-code", "state", "the-verifier")
	require.NoError(t, err)

	assert.Equal(t, "42", acct.AccountID)
	assert.Equal(t, "fluffy", acct.Username)
	assert.Equal(t, "Fluffy", acct.DisplayName)
	assert.Equal(t, "https://pbs.twimg.com/a.jpg", acct.ProfileImageURL)
	assert.Equal(t, "access-1", acct.Tokens.AccessToken)
	assert.Equal(t, "refresh-1", acct.Tokens.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), acct.Tokens.ExpiresAt, time.Minute)
}

func TestExchangeCodeForTokenRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
	})

	tc := newTestTwitter(t, mux)

	_, err := tc.ExchangeCodeForToken(context.Background(), "bad", "state", "verifier")
	assert.ErrorIs(t, err, common.ErrAuth)
}

func TestRefreshToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/2/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))

		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "access-2",
			"token_type":   "bearer",
			"expires_in":   7200,
		})
	})

	tc := newTestTwitter(t, mux)

	set, err := tc.RefreshToken(context.Background(), "refresh-1")
	require.NoError(t, err)

	assert.Equal(t, "access-2", set.AccessToken)
	assert.Equal(t, "refresh-1", set.RefreshToken)
}

func TestRefreshTokenWithoutStoredToken(t *testing.T) {
	tc := newTestTwitter(t, http.NewServeMux())

	_, err := tc.RefreshToken(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrAuth)
}

func TestClampWindow(t *testing.T) {
	assert.Equal(t, 5, clampWindow(0))
	assert.Equal(t, 10, clampWindow(10))
	assert.Equal(t, 100, clampWindow(500))
}
