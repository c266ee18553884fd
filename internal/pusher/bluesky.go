// SPDX-License-Identifier: AGPL-3.0-only
package pusher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fluffyriot/xpost/internal/common"
	"github.com/fluffyriot/xpost/internal/helpers"
)

const (
	MaxPostLength  = 300
	postCollection = "app.bsky.feed.post"
)

var ErrEmptyText = errors.New("post text is empty")

type BlueskyClient struct {
	client *common.Client
	pdsURL string
}

type Session struct {
	DID        string
	Handle     string
	AccessJwt  string
	RefreshJwt string
}

type ConnectedAccount struct {
	AccountID       string
	Username        string
	DisplayName     string
	ProfileImageURL string
	Session         Session
}

type CreatedPost struct {
	ID         string
	URI        string
	CID        string
	Text       string
	CreatedAt  time.Time
	LikeCount  int
	ShareCount int
}

type bskySession struct {
	DID        string `json:"did"`
	Handle     string `json:"handle"`
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
}

type bskyProfile struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}

type bskyPostRecord struct {
	Type      string `json:"$type"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type bskyCreateRecordRequest struct {
	Repo       string         `json:"repo"`
	Collection string         `json:"collection"`
	Record     bskyPostRecord `json:"record"`
}

type bskyCreateRecordResponse struct {
	URI string `json:"uri"`
	CID string `json:"cid"`
}

type xrpcError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewBlueskyClient(c *common.Client, pdsURL string) *BlueskyClient {
	return &BlueskyClient{
		client: c,
		pdsURL: strings.TrimRight(pdsURL, "/"),
	}
}

// Authenticate creates a session with an app password and loads the profile.
func (b *BlueskyClient) Authenticate(ctx context.Context, identifier, secret string) (ConnectedAccount, error) {

	if identifier == "" || secret == "" {
		return ConnectedAccount{}, fmt.Errorf("%w: identifier and password are required", common.ErrAuth)
	}

	var sess bskySession
	err := b.call(ctx, http.MethodPost, "com.atproto.server.createSession", "", map[string]string{
		"identifier": identifier,
		"password":   secret,
	}, &sess)
	if err != nil {
		if isXRPCError(err, "AuthenticationRequired", "AuthFactorTokenRequired", "AccountTakedown", "InvalidRequest") {
			return ConnectedAccount{}, fmt.Errorf("%w: %v", common.ErrAuth, err)
		}
		return ConnectedAccount{}, err
	}

	account := ConnectedAccount{
		AccountID: sess.DID,
		Username:  sess.Handle,
		Session: Session{
			DID:        sess.DID,
			Handle:     sess.Handle,
			AccessJwt:  sess.AccessJwt,
			RefreshJwt: sess.RefreshJwt,
		},
	}

	var profile bskyProfile
	path := "app.bsky.actor.getProfile?actor=" + url.QueryEscape(sess.DID)
	if err := b.call(ctx, http.MethodGet, path, sess.AccessJwt, nil, &profile); err != nil {
		log.Printf("Bluesky: could not load profile for %s: %v", sess.Handle, err)
		return account, nil
	}

	account.DisplayName = profile.DisplayName
	account.ProfileImageURL = profile.Avatar

	return account, nil
}

// CreatePost publishes text as a new post. If the access token was stale the
// session is refreshed once and the refreshed session is returned; otherwise
// the returned session is nil.
func (b *BlueskyClient) CreatePost(ctx context.Context, text string, session Session) (CreatedPost, *Session, error) {

	text = strings.TrimSpace(text)
	if text == "" {
		return CreatedPost{}, nil, ErrEmptyText
	}
	text = helpers.TruncateRunes(text, MaxPostLength)

	if session.DID == "" || (session.AccessJwt == "" && session.RefreshJwt == "") {
		return CreatedPost{}, nil, fmt.Errorf("%w: no stored session", common.ErrSessionExpired)
	}

	var refreshed *Session

	if session.AccessJwt == "" {
		next, err := b.refreshSession(ctx, session)
		if err != nil {
			return CreatedPost{}, nil, err
		}
		session = *next
		refreshed = next
	}

	post, err := b.createRecord(ctx, text, session)
	if err != nil && refreshed == nil && isExpiredSession(err) {
		log.Printf("Bluesky: access token for %s expired, refreshing session", session.DID)

		next, rerr := b.refreshSession(ctx, session)
		if rerr != nil {
			return CreatedPost{}, nil, rerr
		}
		refreshed = next

		post, err = b.createRecord(ctx, text, *next)
	}
	if err != nil {
		if isExpiredSession(err) {
			return CreatedPost{}, refreshed, fmt.Errorf("%w: %v", common.ErrSessionExpired, err)
		}
		return CreatedPost{}, refreshed, err
	}

	return post, refreshed, nil
}

func (b *BlueskyClient) createRecord(ctx context.Context, text string, session Session) (CreatedPost, error) {

	now := time.Now().UTC()

	body := bskyCreateRecordRequest{
		Repo:       session.DID,
		Collection: postCollection,
		Record: bskyPostRecord{
			Type:      postCollection,
			Text:      text,
			CreatedAt: now.Format(time.RFC3339Nano),
		},
	}

	var out bskyCreateRecordResponse
	if err := b.call(ctx, http.MethodPost, "com.atproto.repo.createRecord", session.AccessJwt, body, &out); err != nil {
		return CreatedPost{}, err
	}

	if out.URI == "" {
		return CreatedPost{}, fmt.Errorf("%w: createRecord returned no uri", common.ErrNetwork)
	}

	return CreatedPost{
		ID:        helpers.RecordKey(out.URI),
		URI:       out.URI,
		CID:       out.CID,
		Text:      text,
		CreatedAt: now,
	}, nil
}

func (b *BlueskyClient) refreshSession(ctx context.Context, session Session) (*Session, error) {

	if session.RefreshJwt == "" {
		return nil, fmt.Errorf("%w: no refresh token stored", common.ErrSessionExpired)
	}

	var sess bskySession
	if err := b.call(ctx, http.MethodPost, "com.atproto.server.refreshSession", session.RefreshJwt, nil, &sess); err != nil {
		if common.IsTransient(err) && !isExpiredSession(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: refresh failed: %v", common.ErrSessionExpired, err)
	}

	next := &Session{
		DID:        session.DID,
		Handle:     session.Handle,
		AccessJwt:  sess.AccessJwt,
		RefreshJwt: sess.RefreshJwt,
	}
	if sess.DID != "" {
		next.DID = sess.DID
	}
	if sess.Handle != "" {
		next.Handle = sess.Handle
	}

	return next, nil
}

func (b *BlueskyClient) call(ctx context.Context, method, nsid, bearer string, in, out any) error {

	var payload io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.pdsURL+"/xrpc/"+nsid, payload)
	if err != nil {
		return err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return b.client.DoJSON(req, out)
}

func xrpcErrorName(err error) string {
	var apiErr *common.APIError
	if !errors.As(err, &apiErr) {
		return ""
	}

	var body xrpcError
	if json.Unmarshal([]byte(apiErr.Body), &body) != nil {
		return ""
	}
	return body.Error
}

func isXRPCError(err error, names ...string) bool {
	name := xrpcErrorName(err)
	if name == "" {
		return false
	}
	for _, n := range names {
		if name == n {
			return true
		}
	}
	return false
}

func isExpiredSession(err error) bool {
	if isXRPCError(err, "ExpiredToken", "InvalidToken") {
		return true
	}

	var apiErr *common.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
