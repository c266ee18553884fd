// SPDX-License-Identifier: AGPL-3.0-only
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fluffyriot/xpost/internal/database"
	"github.com/google/uuid"
)

type Links struct {
	q   *database.Queries
	now func() time.Time
}

func NewLinks(q *database.Queries) *Links {
	return &Links{q: q, now: time.Now}
}

// Link creates the link or reactivates a soft-deleted one. An already active
// link is reported as LinkAlreadyActive together with ErrLinkAlreadyActive.
// Account ownership is not checked here.
func (s *Links) Link(ctx context.Context, userID uuid.UUID, sourceAccountID, destinationAccountID string) (Link, LinkResult, error) {

	if sourceAccountID == "" || destinationAccountID == "" {
		return Link{}, 0, fmt.Errorf("%w: both account ids are required", ErrInvalid)
	}

	now := s.now()

	row, err := s.q.CreateLink(ctx, database.CreateLinkParams{
		ID:                   uuid.New(),
		UserID:               userID,
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err == nil {
		return linkFromRow(row), LinkCreated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Link{}, 0, err
	}

	row, err = s.q.ReactivateLink(ctx, database.ReactivateLinkParams{
		UserID:               userID,
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
		UpdatedAt:            now,
	})
	if err == nil {
		return linkFromRow(row), LinkReactivated, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Link{}, 0, err
	}

	return Link{}, LinkAlreadyActive, ErrLinkAlreadyActive
}

// Unlink soft-deletes an active link.
func (s *Links) Unlink(ctx context.Context, userID, linkID uuid.UUID) (Link, error) {

	row, err := s.q.DeactivateLink(ctx, database.DeactivateLinkParams{
		ID:        linkID,
		UserID:    userID,
		UpdatedAt: s.now(),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Link{}, fmt.Errorf("link %s: %w", linkID, ErrNotFound)
	}
	if err != nil {
		return Link{}, err
	}

	return linkFromRow(row), nil
}

func (s *Links) ActiveLinksFor(ctx context.Context, userID uuid.UUID) ([]Link, error) {

	rows, err := s.q.GetActiveLinksForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return linksFromRows(rows), nil
}

func (s *Links) ActiveLinksForSource(ctx context.Context, userID uuid.UUID, sourceAccountID string) ([]Link, error) {

	rows, err := s.q.GetActiveLinksForSource(ctx, database.GetActiveLinksForSourceParams{
		UserID:          userID,
		SourceAccountID: sourceAccountID,
	})
	if err != nil {
		return nil, err
	}
	return linksFromRows(rows), nil
}

// HasOtherActiveLink reports whether an active link other than excludingLinkID
// references accountID in the given role. Pass uuid.Nil to consider every link.
func (s *Links) HasOtherActiveLink(ctx context.Context, userID uuid.UUID, accountID string, excludingLinkID uuid.UUID, role Role) (bool, error) {

	switch role {
	case RoleSource:
		return s.q.HasOtherActiveSourceLink(ctx, database.HasOtherActiveSourceLinkParams{
			UserID:          userID,
			SourceAccountID: accountID,
			ID:              excludingLinkID,
		})
	case RoleDestination:
		return s.q.HasOtherActiveDestinationLink(ctx, database.HasOtherActiveDestinationLinkParams{
			UserID:               userID,
			DestinationAccountID: accountID,
			ID:                   excludingLinkID,
		})
	default:
		return false, fmt.Errorf("unknown link role %d", role)
	}
}

func (s *Links) ListActiveWithAccounts(ctx context.Context, userID uuid.UUID) ([]LinkWithAccounts, error) {

	rows, err := s.q.GetActiveLinksWithAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	links := make([]LinkWithAccounts, 0, len(rows))
	for _, r := range rows {
		links = append(links, LinkWithAccounts{
			Link: linkFromRow(r.AccountLink),
			Source: AccountSummary{
				Username:        r.SourceUsername.String,
				DisplayName:     r.SourceDisplayName.String,
				ProfileImageURL: r.SourceProfileImageUrl.String,
			},
			Destination: AccountSummary{
				Username:        r.DestinationUsername.String,
				DisplayName:     r.DestinationDisplayName.String,
				ProfileImageURL: r.DestinationProfileImageUrl.String,
			},
		})
	}
	return links, nil
}

func linksFromRows(rows []database.AccountLink) []Link {
	links := make([]Link, 0, len(rows))
	for _, r := range rows {
		links = append(links, linkFromRow(r))
	}
	return links
}

func linkFromRow(r database.AccountLink) Link {
	return Link{
		ID:                   r.ID,
		UserID:               r.UserID,
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Active:               r.Active,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}
