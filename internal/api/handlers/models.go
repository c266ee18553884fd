// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"time"

	"github.com/fluffyriot/xpost/internal/helpers"
	"github.com/fluffyriot/xpost/internal/store"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RepostRequest struct {
	PostID string `json:"postId"`
}

type LinkRequest struct {
	SourceAccountID      string `json:"sourceAccountId"`
	DestinationAccountID string `json:"destinationAccountId"`
}

type BlueskyConnectRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Worker   string `json:"worker"`
}

type AccountResponse struct {
	ID           string     `json:"id"`
	Network      string     `json:"network"`
	Color        string     `json:"color"`
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	ProfileImage string     `json:"profileImage"`
	ProfileURL   string     `json:"profileUrl"`
	IsConnected  bool       `json:"isConnected"`
	IsLinked     bool       `json:"isLinked"`
	SyncStatus   string     `json:"syncStatus,omitempty"`
	StatusReason string     `json:"statusReason,omitempty"`
	LastSynced   *time.Time `json:"lastSynced,omitempty"`
}

type SourcePostResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	LikeCount  int       `json:"likeCount"`
	ShareCount int       `json:"shareCount"`
	URL        string    `json:"url"`
}

type DestinationPostResponse struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"accountId"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
	LikeCount  int       `json:"likeCount"`
	ShareCount int       `json:"shareCount"`
	URL        string    `json:"url,omitempty"`
}

type PostResponse struct {
	ID              string                   `json:"id"`
	SourceAccountID string                   `json:"sourceAccountId"`
	Account         *AccountResponse         `json:"account,omitempty"`
	Source          SourcePostResponse       `json:"source"`
	Destination     *DestinationPostResponse `json:"destination,omitempty"`
	IsReposted      bool                     `json:"isReposted"`
}

type LinkResponse struct {
	ID                 string          `json:"id"`
	SourceAccount      AccountResponse `json:"sourceAccount"`
	DestinationAccount AccountResponse `json:"destinationAccount"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"createdAt"`
}

func sourceAccountResponse(a store.SourceAccount) AccountResponse {
	url, _ := helpers.ConvNetworkToURL(helpers.NetworkTwitter, a.Username)

	resp := AccountResponse{
		ID:           a.AccountID,
		Network:      helpers.SourceNetwork.Name,
		Color:        helpers.SourceNetwork.Color,
		Username:     a.Username,
		Name:         a.DisplayName,
		ProfileImage: a.ProfileImageURL,
		ProfileURL:   url,
		IsConnected:  a.Connected,
		IsLinked:     a.Linked,
		SyncStatus:   a.SyncStatus,
		StatusReason: a.StatusReason,
	}
	if !a.LastSynced.IsZero() {
		t := a.LastSynced
		resp.LastSynced = &t
	}
	return resp
}

func destinationAccountResponse(a store.DestinationAccount) AccountResponse {
	url, _ := helpers.ConvNetworkToURL(helpers.NetworkBluesky, a.Username)

	return AccountResponse{
		ID:           a.AccountID,
		Network:      helpers.DestinationNetwork.Name,
		Color:        helpers.DestinationNetwork.Color,
		Username:     a.Username,
		Name:         a.DisplayName,
		ProfileImage: a.ProfileImageURL,
		ProfileURL:   url,
		IsConnected:  a.IsConnected,
		IsLinked:     a.IsConnected,
		SyncStatus:   a.SyncStatus,
		StatusReason: a.StatusReason,
	}
}

func summaryResponse(id string, network helpers.Network, s store.AccountSummary) AccountResponse {
	url, _ := helpers.ConvNetworkToURL(network.Name, s.Username)

	return AccountResponse{
		ID:           id,
		Network:      network.Name,
		Color:        network.Color,
		Username:     s.Username,
		Name:         s.DisplayName,
		ProfileImage: s.ProfileImageURL,
		ProfileURL:   url,
		IsConnected:  true,
		IsLinked:     true,
	}
}

func postResponse(p store.EnrichedPost) PostResponse {
	resp := PostResponse{
		ID:              p.ID.String(),
		SourceAccountID: p.SourceAccountID,
		Source: SourcePostResponse{
			ID:         p.Source.ID,
			Text:       p.Source.Text,
			CreatedAt:  p.Source.CreatedAt,
			LikeCount:  p.Source.LikeCount,
			ShareCount: p.Source.ShareCount,
			URL:        p.SourceURL,
		},
		IsReposted: p.IsReposted,
	}

	if p.Account.Username != "" {
		account := summaryResponse(p.SourceAccountID, helpers.SourceNetwork, p.Account)
		resp.Account = &account
	}

	if d := p.Destination; d != nil {
		resp.Destination = &DestinationPostResponse{
			ID:         d.ID,
			AccountID:  d.AccountID,
			Text:       d.Text,
			CreatedAt:  d.CreatedAt,
			LikeCount:  d.LikeCount,
			ShareCount: d.ShareCount,
			URL:        p.DestinationURL,
		}
	}
	return resp
}

func linkResponse(l store.LinkWithAccounts) LinkResponse {
	return LinkResponse{
		ID:                 l.ID.String(),
		SourceAccount:      summaryResponse(l.SourceAccountID, helpers.SourceNetwork, l.Source),
		DestinationAccount: summaryResponse(l.DestinationAccountID, helpers.DestinationNetwork, l.Destination),
		Active:             l.Active,
		CreatedAt:          l.CreatedAt,
	}
}
