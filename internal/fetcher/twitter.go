// SPDX-License-Identifier: AGPL-3.0-only
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fluffyriot/xpost/internal/authhelp"
	"github.com/fluffyriot/xpost/internal/common"
	"golang.org/x/net/html"
	"golang.org/x/oauth2"
)

const (
	minTweetsPerRequest = 5
	maxTweetsPerRequest = 100
)

type TwitterClient struct {
	client *common.Client
	oauth  *oauth2.Config
	apiURL string
}

type AuthRequest struct {
	AuthorizationURL string
	State            string
	CodeVerifier     string
}

type TokenSet struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type ConnectedAccount struct {
	AccountID       string
	Username        string
	DisplayName     string
	ProfileImageURL string
	Tokens          TokenSet
}

type SourcePost struct {
	ID         string
	Text       string
	CreatedAt  time.Time
	LikeCount  int
	ShareCount int
}

type twitterUser struct {
	Data struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		Username        string `json:"username"`
		ProfileImageURL string `json:"profile_image_url"`
	} `json:"data"`
}

type twitterTimeline struct {
	Data []struct {
		ID            string    `json:"id"`
		Text          string    `json:"text"`
		CreatedAt     time.Time `json:"created_at"`
		PublicMetrics struct {
			RetweetCount int `json:"retweet_count"`
			ReplyCount   int `json:"reply_count"`
			LikeCount    int `json:"like_count"`
			QuoteCount   int `json:"quote_count"`
		} `json:"public_metrics"`
	} `json:"data"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}

func NewTwitterClient(c *common.Client, cfg *oauth2.Config, apiURL string) *TwitterClient {
	return &TwitterClient{
		client: c,
		oauth:  cfg,
		apiURL: strings.TrimRight(apiURL, "/"),
	}
}

// GenerateAuthURL starts a PKCE authorization. The caller persists State and
// CodeVerifier until the callback arrives.
func (t *TwitterClient) GenerateAuthURL() (AuthRequest, error) {

	state, err := authhelp.GenerateState()
	if err != nil {
		return AuthRequest{}, err
	}

	verifier := oauth2.GenerateVerifier()

	return AuthRequest{
		AuthorizationURL: t.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)),
		State:            state,
		CodeVerifier:     verifier,
	}, nil
}

func (t *TwitterClient) ExchangeCodeForToken(ctx context.Context, code, state, codeVerifier string) (ConnectedAccount, error) {

	if code == "" || state == "" || codeVerifier == "" {
		return ConnectedAccount{}, fmt.Errorf("%w: missing code, state or verifier", common.ErrAuth)
	}

	token, err := t.oauth.Exchange(t.oauthContext(ctx), code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return ConnectedAccount{}, mapOAuthError(err)
	}

	user, err := t.fetchMe(ctx, token.AccessToken)
	if err != nil {
		return ConnectedAccount{}, err
	}

	return ConnectedAccount{
		AccountID:       user.Data.ID,
		Username:        user.Data.Username,
		DisplayName:     user.Data.Name,
		ProfileImageURL: user.Data.ProfileImageURL,
		Tokens:          tokenSetFrom(token),
	}, nil
}

func (t *TwitterClient) RefreshToken(ctx context.Context, refreshToken string) (TokenSet, error) {

	if refreshToken == "" {
		return TokenSet{}, fmt.Errorf("%w: no refresh token stored", common.ErrAuth)
	}

	src := t.oauth.TokenSource(t.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := src.Token()
	if err != nil {
		return TokenSet{}, mapOAuthError(err)
	}

	set := tokenSetFrom(token)
	if set.RefreshToken == "" {
		set.RefreshToken = refreshToken
	}

	return set, nil
}

// FetchRecentPosts returns the newest original tweets of accountID.
// Replies and retweets are excluded; maxCount is clamped to what the API accepts.
func (t *TwitterClient) FetchRecentPosts(ctx context.Context, accountID, accessToken string, maxCount int) ([]SourcePost, error) {

	if accountID == "" || accessToken == "" {
		return nil, fmt.Errorf("%w: account is missing credentials", common.ErrAuth)
	}

	q := url.Values{}
	q.Set("max_results", fmt.Sprint(clampWindow(maxCount)))
	q.Set("tweet.fields", "created_at,public_metrics")
	q.Set("exclude", "replies,retweets")

	endpoint := fmt.Sprintf("%s/2/users/%s/tweets?%s", t.apiURL, url.PathEscape(accountID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var timeline twitterTimeline
	if err := t.client.DoJSON(req, &timeline); err != nil {
		return nil, err
	}

	posts := make([]SourcePost, 0, len(timeline.Data))
	for _, tw := range timeline.Data {
		posts = append(posts, SourcePost{
			ID:         tw.ID,
			Text:       html.UnescapeString(tw.Text),
			CreatedAt:  tw.CreatedAt,
			LikeCount:  tw.PublicMetrics.LikeCount,
			ShareCount: tw.PublicMetrics.RetweetCount + tw.PublicMetrics.QuoteCount,
		})
	}

	if maxCount > 0 && len(posts) > maxCount {
		posts = posts[:maxCount]
	}

	log.Printf("Twitter: fetched %d posts for account %s", len(posts), accountID)

	return posts, nil
}

func (t *TwitterClient) fetchMe(ctx context.Context, accessToken string) (*twitterUser, error) {

	endpoint := t.apiURL + "/2/users/me?user.fields=profile_image_url"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var user twitterUser
	if err := t.client.DoJSON(req, &user); err != nil {
		return nil, err
	}

	if user.Data.ID == "" {
		return nil, fmt.Errorf("%w: profile response has no user id", common.ErrNetwork)
	}

	return &user, nil
}

func (t *TwitterClient) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, &t.client.HTTPClient)
}

func clampWindow(n int) int {
	switch {
	case n < minTweetsPerRequest:
		return minTweetsPerRequest
	case n > maxTweetsPerRequest:
		return maxTweetsPerRequest
	default:
		return n
	}
}

func tokenSetFrom(token *oauth2.Token) TokenSet {
	return TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
	}
}

func mapOAuthError(err error) error {

	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		status := 0
		if re.Response != nil {
			status = re.Response.StatusCode
		}
		switch {
		case status == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", common.ErrRateLimited, err)
		case status >= 500:
			return fmt.Errorf("%w: %v", common.ErrNetwork, err)
		default:
			return fmt.Errorf("%w: %v", common.ErrAuth, err)
		}
	}

	return fmt.Errorf("%w: %v", common.ErrNetwork, err)
}
