// SPDX-License-Identifier: AGPL-3.0-only
package authstate

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fluffyriot/xpost/internal/database"
)

type Postgres struct {
	q   *database.Queries
	now func() time.Time
}

func NewPostgres(q *database.Queries) *Postgres {
	return &Postgres{q: q, now: time.Now}
}

func (p *Postgres) Save(ctx context.Context, state string, pending Pending, ttl time.Duration) error {
	now := p.now()
	return p.q.CreateOAuthState(ctx, database.CreateOAuthStateParams{
		State:        state,
		UserID:       pending.UserID,
		CodeVerifier: pending.CodeVerifier,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	})
}

func (p *Postgres) Take(ctx context.Context, state string) (Pending, bool, error) {

	row, err := p.q.TakeOAuthState(ctx, state)
	if errors.Is(err, sql.ErrNoRows) {
		return Pending{}, false, nil
	}
	if err != nil {
		return Pending{}, false, err
	}

	if !p.now().Before(row.ExpiresAt) {
		return Pending{}, false, nil
	}

	return Pending{UserID: row.UserID, CodeVerifier: row.CodeVerifier}, true, nil
}

func (p *Postgres) Purge(ctx context.Context) (int64, error) {
	return p.q.DeleteExpiredOAuthStates(ctx, p.now())
}
