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

type Users struct {
	q *database.Queries
}

func NewUsers(q *database.Queries) *Users {
	return &Users{q: q}
}

func (s *Users) Create(ctx context.Context, username, passwordHash string) (User, error) {

	now := time.Now()
	row, err := s.q.CreateUser(ctx, database.CreateUserParams{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: nullString(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if isUniqueViolation(err) {
		return User{}, fmt.Errorf("%s: %w", username, ErrUserExists)
	}
	if err != nil {
		return User{}, err
	}
	return userFromRow(row), nil
}

func (s *Users) GetByUsername(ctx context.Context, username string) (User, error) {

	row, err := s.q.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return User{}, err
	}
	return userFromRow(row), nil
}

func (s *Users) GetByID(ctx context.Context, id uuid.UUID) (User, error) {

	row, err := s.q.GetUserById(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return User{}, err
	}
	return userFromRow(row), nil
}

func (s *Users) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {

	_, err := s.q.UpdateUserPassword(ctx, database.UpdateUserPasswordParams{
		ID:           id,
		PasswordHash: nullString(passwordHash),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return err
}

// WithSourceAndDestination lists users owning at least one account on each side.
func (s *Users) WithSourceAndDestination(ctx context.Context) ([]uuid.UUID, error) {

	rows, err := s.q.GetUsersWithSourceAndDestination(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func userFromRow(r database.User) User {
	return User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash.String,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
