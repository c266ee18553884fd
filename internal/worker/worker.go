// SPDX-License-Identifier: AGPL-3.0-only
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fluffyriot/xpost/internal/reposter"
	"github.com/google/uuid"
)

const (
	DefaultInterval    = time.Minute
	DefaultConcurrency = 4

	// ManualSyncTimeout bounds a single pass started through SyncUser.
	ManualSyncTimeout = 5 * time.Minute
)

type UserLister interface {
	WithSourceAndDestination(ctx context.Context) ([]uuid.UUID, error)
}

type Reposter interface {
	ProcessAutoRepost(ctx context.Context, userID uuid.UUID) (reposter.Report, error)
}

type StatePurger interface {
	Purge(ctx context.Context) (int64, error)
}

type Worker struct {
	Users       UserLister
	Engine      Reposter
	States      StatePurger
	Concurrency int
	Ticker      *time.Ticker
	stopChan    chan struct{}
	doneChan    chan struct{}
	mu          sync.Mutex
	running     bool
	active      bool
	manual      map[uuid.UUID]struct{}
	passes      sync.WaitGroup
}

func NewWorker(users UserLister, engine Reposter, states StatePurger, concurrency int) *Worker {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Worker{
		Users:       users,
		Engine:      engine,
		States:      states,
		Concurrency: concurrency,
	}
}

func (w *Worker) Start(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		log.Println("Worker: Scheduler already active")
		return
	}
	w.active = true
	w.stopChan = make(chan struct{})
	w.doneChan = make(chan struct{})
	w.Ticker = time.NewTicker(interval)
	ticker, stop, done := w.Ticker, w.stopChan, w.doneChan
	w.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-ticker.C:
				w.SyncAll()
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()
	log.Printf("Worker: Background worker started with interval: %v", interval)
}

// Stop ends the scheduler loop and waits for a running tick and any pass
// started through SyncUser to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		log.Println("Worker: Scheduler not active")
		return
	}
	w.active = false
	stop, done := w.stopChan, w.doneChan
	w.mu.Unlock()

	close(stop)
	<-done
	w.passes.Wait()
	log.Println("Worker: Background worker stopped")
}

func (w *Worker) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Worker) SyncAll() {
	if err := w.RunOnce(context.Background()); err != nil {
		log.Printf("Worker: %v", err)
	}
}
