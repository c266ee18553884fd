// SPDX-License-Identifier: AGPL-3.0-only
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrNotRunning     = errors.New("scheduler is not running")
)

// RunOnce performs a single scheduler tick: it purges expired OAuth states and
// runs the automatic repost pass for every user with both account kinds.
// Overlapping calls return ErrSyncInProgress without doing any work.
func (w *Worker) RunOnce(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrSyncInProgress
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	if w.States != nil {
		purged, err := w.States.Purge(ctx)
		if err != nil {
			log.Printf("Worker: could not purge expired OAuth states: %v", err)
		} else if purged > 0 {
			log.Printf("Worker: purged %d expired OAuth states", purged)
		}
	}

	users, err := w.Users.WithSourceAndDestination(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	limit := w.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for _, userID := range users {
		if ctx.Err() != nil {
			break
		}
		userID := userID
		g.Go(func() error {
			w.syncUser(ctx, userID)
			return nil
		})
	}
	_ = g.Wait()

	log.Printf("Worker: Completed sync for %d users", len(users))
	return ctx.Err()
}

// SyncUser starts a repost pass for one user in the background and returns
// at once. A pass already pending for the same user yields ErrSyncInProgress;
// a stopped worker yields ErrNotRunning.
func (w *Worker) SyncUser(userID uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.active {
		return ErrNotRunning
	}
	if _, ok := w.manual[userID]; ok {
		return ErrSyncInProgress
	}
	if w.manual == nil {
		w.manual = make(map[uuid.UUID]struct{})
	}
	w.manual[userID] = struct{}{}
	w.passes.Add(1)

	go func() {
		defer w.passes.Done()
		defer func() {
			w.mu.Lock()
			delete(w.manual, userID)
			w.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), ManualSyncTimeout)
		defer cancel()

		log.Printf("Worker: manual sync requested for user %s", userID)
		w.syncUser(ctx, userID)
	}()

	return nil
}

func (w *Worker) syncUser(ctx context.Context, userID uuid.UUID) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Worker: Panic in repost pass (user=%s): %v", userID, r)
		}
	}()

	report, err := w.Engine.ProcessAutoRepost(ctx, userID)
	if err != nil {
		log.Printf("Worker: repost pass for user %s failed: %v", userID, err)
		return
	}

	log.Printf("Worker: user %s: %s", userID, report)
}
