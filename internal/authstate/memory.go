// SPDX-License-Identifier: AGPL-3.0-only
package authstate

import (
	"context"
	"sync"
	"time"
)

const defaultMaxEntries = 1000

// Memory is a process-local Store for single-instance deployments and tests.
type Memory struct {
	entries    map[string]memoryEntry
	mu         sync.Mutex
	maxEntries int
	now        func() time.Time
}

type memoryEntry struct {
	pending   Pending
	expiresAt time.Time
}

func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	return &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Save(_ context.Context, state string, p Pending, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	if len(m.entries) >= m.maxEntries {
		m.purgeLocked(now)
	}
	// Still full: drop an arbitrary entry.
	if len(m.entries) >= m.maxEntries {
		for k := range m.entries {
			delete(m.entries, k)
			break
		}
	}

	m.entries[state] = memoryEntry{pending: p, expiresAt: now.Add(ttl)}
	return nil
}

func (m *Memory) Take(_ context.Context, state string) (Pending, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[state]
	if !ok {
		return Pending{}, false, nil
	}
	delete(m.entries, state)

	if !m.now().Before(entry.expiresAt) {
		return Pending{}, false, nil
	}
	return entry.pending, true, nil
}

func (m *Memory) Purge(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purgeLocked(m.now()), nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) purgeLocked(now time.Time) int64 {
	var n int64
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}
