// SPDX-License-Identifier: AGPL-3.0-only
package reposter

import (
	"context"
	"fmt"
	"log"

	"github.com/fluffyriot/xpost/internal/store"
	"github.com/google/uuid"
)

// LinkAccounts links two accounts owned by userID and recomputes their
// link flags.
func (e *Engine) LinkAccounts(ctx context.Context, userID uuid.UUID, sourceAccountID, destinationAccountID string) (store.Link, store.LinkResult, error) {

	if sourceAccountID == "" || destinationAccountID == "" {
		return store.Link{}, 0, fmt.Errorf("%w: sourceAccountId and destinationAccountId are required", ErrValidation)
	}

	if _, err := e.accounts.GetSource(ctx, userID, sourceAccountID); err != nil {
		return store.Link{}, 0, err
	}
	if _, err := e.accounts.GetDestination(ctx, userID, destinationAccountID); err != nil {
		return store.Link{}, 0, err
	}

	link, result, err := e.links.Link(ctx, userID, sourceAccountID, destinationAccountID)
	if err != nil {
		return link, result, err
	}

	if err := e.RecomputeConnected(ctx, userID, sourceAccountID, destinationAccountID); err != nil {
		return link, result, err
	}

	log.Printf("Reposter: link %s -> %s for user %s %s", sourceAccountID, destinationAccountID, userID, result)
	return link, result, nil
}

func (e *Engine) UnlinkAccounts(ctx context.Context, userID, linkID uuid.UUID) (store.Link, error) {

	link, err := e.links.Unlink(ctx, userID, linkID)
	if err != nil {
		return store.Link{}, err
	}

	if err := e.RecomputeConnected(ctx, userID, link.SourceAccountID, link.DestinationAccountID); err != nil {
		return link, err
	}

	log.Printf("Reposter: link %s removed for user %s", linkID, userID)
	return link, nil
}

// RecomputeConnected derives the link flags of both accounts from whether any
// active link still references them: the source's linked flag and the
// destination's connected flag. A source's OAuth connection, which decides
// sync eligibility, is never touched here.
func (e *Engine) RecomputeConnected(ctx context.Context, userID uuid.UUID, sourceAccountID, destinationAccountID string) error {

	if sourceAccountID != "" {
		linked, err := e.links.HasOtherActiveLink(ctx, userID, sourceAccountID, uuid.Nil, store.RoleSource)
		if err != nil {
			return err
		}
		if err := e.accounts.SetSourceLinked(ctx, userID, sourceAccountID, linked); err != nil {
			return err
		}
	}

	if destinationAccountID != "" {
		linked, err := e.links.HasOtherActiveLink(ctx, userID, destinationAccountID, uuid.Nil, store.RoleDestination)
		if err != nil {
			return err
		}
		if err := e.accounts.SetDestinationConnected(ctx, userID, destinationAccountID, linked); err != nil {
			return err
		}
	}

	return nil
}
