// SPDX-License-Identifier: AGPL-3.0-only
package authstate

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Pending is what has to survive between redirecting a user to the
// authorization page and receiving the callback.
type Pending struct {
	UserID       uuid.UUID
	CodeVerifier string
}

// Store keeps pending OAuth handshakes keyed by the state parameter.
// Take is single use: a state can be redeemed at most once, and expired
// entries are reported as absent.
type Store interface {
	Save(ctx context.Context, state string, p Pending, ttl time.Duration) error
	Take(ctx context.Context, state string) (Pending, bool, error)
	Purge(ctx context.Context) (int64, error)
}
