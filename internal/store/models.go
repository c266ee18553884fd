// SPDX-License-Identifier: AGPL-3.0-only
package store

import (
	"time"

	"github.com/google/uuid"
)

type Role int

const (
	RoleSource Role = iota
	RoleDestination
)

type LinkResult int

const (
	LinkCreated LinkResult = iota
	LinkReactivated
	LinkAlreadyActive
)

func (r LinkResult) String() string {
	switch r {
	case LinkCreated:
		return "created"
	case LinkReactivated:
		return "reactivated"
	case LinkAlreadyActive:
		return "alreadyActive"
	default:
		return "unknown"
	}
}

const (
	StatusSynced            = "Synced"
	StatusFailed            = "Failed"
	StatusConnected         = "Connected"
	StatusReconnectRequired = "Reconnect required"
)

type SourcePost struct {
	ID         string
	Text       string
	CreatedAt  time.Time
	LikeCount  int
	ShareCount int
}

type DestinationPost struct {
	ID         string
	AccountID  string
	Text       string
	CreatedAt  time.Time
	LikeCount  int
	ShareCount int
}

type Post struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	SourceAccountID string
	Source          SourcePost
	Destination     *DestinationPost
	IsReposted      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AccountSummary struct {
	Username        string
	DisplayName     string
	ProfileImageURL string
}

type EnrichedPost struct {
	Post
	Account        AccountSummary
	SourceURL      string
	DestinationURL string
}

type Link struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	SourceAccountID      string
	DestinationAccountID string
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type LinkWithAccounts struct {
	Link
	Source      AccountSummary
	Destination AccountSummary
}

// SourceAccount holds plaintext tokens; they are sealed only inside the store.
type SourceAccount struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	AccountID       string
	Username        string
	DisplayName     string
	ProfileImageURL string
	AccessToken     string
	RefreshToken    string
	TokenExpiresAt  time.Time
	Connected       bool
	Linked          bool
	SyncStatus      string
	StatusReason    string
	LastSynced      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type DestinationAccount struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	AccountID           string
	Username            string
	DisplayName         string
	ProfileImageURL     string
	IsConnected         bool
	AccessSessionToken  string
	RefreshSessionToken string
	SyncStatus          string
	StatusReason        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
