// SPDX-License-Identifier: AGPL-3.0-only
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fluffyriot/xpost/internal/database"
	"github.com/fluffyriot/xpost/internal/helpers"
	"github.com/google/uuid"
)

type Posts struct {
	q   *database.Queries
	now func() time.Time
}

func NewPosts(q *database.Queries) *Posts {
	return &Posts{q: q, now: time.Now}
}

// UpsertFromSource records a fetched source post. Existing posts only get
// their engagement counts refreshed, reposted or not.
func (s *Posts) UpsertFromSource(ctx context.Context, userID uuid.UUID, sourceAccountID string, sp SourcePost) (Post, error) {

	if sp.ID == "" || sourceAccountID == "" {
		return Post{}, fmt.Errorf("%w: source post and account ids are required", ErrInvalid)
	}

	row, err := s.updateCounts(ctx, userID, sp)
	if err == nil {
		return postFromRow(row), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Post{}, err
	}

	now := s.now()
	row, err = s.q.CreatePost(ctx, database.CreatePostParams{
		ID:               uuid.New(),
		UserID:           userID,
		SourcePostID:     sp.ID,
		SourceAccountID:  sourceAccountID,
		SourceText:       sp.Text,
		SourceCreatedAt:  sp.CreatedAt,
		SourceLikeCount:  helpers.ClampToInt32(sp.LikeCount),
		SourceShareCount: helpers.ClampToInt32(sp.ShareCount),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err == nil {
		return postFromRow(row), nil
	}
	if !isUniqueViolation(err) {
		return Post{}, err
	}

	// Lost a race with a concurrent insert of the same post.
	row, err = s.updateCounts(ctx, userID, sp)
	if err != nil {
		return Post{}, err
	}
	return postFromRow(row), nil
}

func (s *Posts) updateCounts(ctx context.Context, userID uuid.UUID, sp SourcePost) (database.Post, error) {
	return s.q.UpdatePostSourceCounts(ctx, database.UpdatePostSourceCountsParams{
		UserID:           userID,
		SourcePostID:     sp.ID,
		SourceLikeCount:  helpers.ClampToInt32(sp.LikeCount),
		SourceShareCount: helpers.ClampToInt32(sp.ShareCount),
		UpdatedAt:        s.now(),
	})
}

// FindUnsynced returns posts of one source account that are not reposted yet, newest first.
func (s *Posts) FindUnsynced(ctx context.Context, userID uuid.UUID, sourceAccountID string) ([]Post, error) {

	rows, err := s.q.GetUnsyncedPosts(ctx, database.GetUnsyncedPostsParams{
		UserID:          userID,
		SourceAccountID: sourceAccountID,
	})
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, postFromRow(r))
	}
	return posts, nil
}

func (s *Posts) Get(ctx context.Context, userID, postID uuid.UUID) (Post, error) {

	row, err := s.q.GetPostById(ctx, database.GetPostByIdParams{ID: postID, UserID: userID})
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}
	if err != nil {
		return Post{}, err
	}

	return postFromRow(row), nil
}

// MarkReposted moves a post to the reposted state. The update only matches
// posts that are not reposted yet, so a second caller gets ErrAlreadyReposted
// and the first destination post is never overwritten.
func (s *Posts) MarkReposted(ctx context.Context, userID, postID uuid.UUID, dp DestinationPost) (Post, error) {

	if dp.ID == "" {
		return Post{}, fmt.Errorf("%w: destination post id is required", ErrInvalid)
	}

	row, err := s.q.MarkPostReposted(ctx, database.MarkPostRepostedParams{
		ID:                    postID,
		UserID:                userID,
		DestinationPostID:     sql.NullString{String: dp.ID, Valid: true},
		DestinationAccountID:  sql.NullString{String: dp.AccountID, Valid: dp.AccountID != ""},
		DestinationText:       sql.NullString{String: dp.Text, Valid: true},
		DestinationCreatedAt:  sql.NullTime{Time: dp.CreatedAt, Valid: !dp.CreatedAt.IsZero()},
		DestinationLikeCount:  helpers.ClampToInt32(dp.LikeCount),
		DestinationShareCount: helpers.ClampToInt32(dp.ShareCount),
		UpdatedAt:             s.now(),
	})
	if err == nil {
		return postFromRow(row), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Post{}, err
	}

	if _, err := s.Get(ctx, userID, postID); err != nil {
		return Post{}, err
	}
	return Post{}, fmt.Errorf("post %s: %w", postID, ErrAlreadyReposted)
}

func (s *Posts) ListWithAccounts(ctx context.Context, userID uuid.UUID) ([]EnrichedPost, error) {

	rows, err := s.q.GetPostsWithAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts := make([]EnrichedPost, 0, len(rows))
	for _, r := range rows {
		ep := EnrichedPost{
			Post: postFromRow(r.Post),
			Account: AccountSummary{
				Username:        r.AccountUsername.String,
				DisplayName:     r.AccountDisplayName.String,
				ProfileImageURL: r.AccountProfileImageUrl.String,
			},
		}

		ep.SourceURL, _ = helpers.ConvPostToURL(helpers.NetworkTwitter, ep.Account.Username, ep.Source.ID)
		if ep.Destination != nil && ep.Destination.AccountID != "" {
			ep.DestinationURL, _ = helpers.ConvPostToURL(helpers.NetworkBluesky, ep.Destination.AccountID, ep.Destination.ID)
		}

		posts = append(posts, ep)
	}
	return posts, nil
}

func postFromRow(r database.Post) Post {
	p := Post{
		ID:              r.ID,
		UserID:          r.UserID,
		SourceAccountID: r.SourceAccountID,
		Source: SourcePost{
			ID:         r.SourcePostID,
			Text:       r.SourceText,
			CreatedAt:  r.SourceCreatedAt,
			LikeCount:  int(r.SourceLikeCount),
			ShareCount: int(r.SourceShareCount),
		},
		IsReposted: r.IsReposted,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}

	if r.IsReposted && r.DestinationPostID.Valid {
		p.Destination = &DestinationPost{
			ID:         r.DestinationPostID.String,
			AccountID:  r.DestinationAccountID.String,
			Text:       r.DestinationText.String,
			CreatedAt:  r.DestinationCreatedAt.Time,
			LikeCount:  int(r.DestinationLikeCount),
			ShareCount: int(r.DestinationShareCount),
		}
	}

	return p
}
