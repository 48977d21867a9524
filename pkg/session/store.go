package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Store is a concurrency-safe session table keyed by call ID.
//
// Operations on different call IDs are independent. Concurrent events
// for the same call ID are last-write-wins; the telephony provider
// delivers one speaker turn at a time in practice.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

// NewStore creates an empty session store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		sessions: make(map[string]*Session),
		logger:   logger.With("component", "session.store"),
	}
}

// Create inserts a fresh session for callID, overwriting any existing
// entry.
func (st *Store) Create(callID string) {
	st.mu.Lock()
	st.sessions[callID] = New(callID)
	st.mu.Unlock()
}

// Get returns a copy of the session for callID, or false if absent.
// The store is the sole mutator of session state; all writes go
// through Update.
func (st *Store) Get(callID string) (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[callID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// GetOrCreate returns a copy of the session for callID, creating a
// fresh one first when absent.
func (st *Store) GetOrCreate(callID string) Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[callID]
	if !ok {
		s = New(callID)
		st.sessions[callID] = s
	}
	return *s
}

// Update runs fn on the session for callID under the store lock,
// creating the session first when absent. The callback must not block.
func (st *Store) Update(callID string, fn func(*Session)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[callID]
	if !ok {
		s = New(callID)
		st.sessions[callID] = s
	}
	fn(s)
}

// Delete removes the session for callID. No-op if absent.
func (st *Store) Delete(callID string) {
	st.mu.Lock()
	delete(st.sessions, callID)
	st.mu.Unlock()
}

// Len returns the number of active sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Snapshot returns copies of all sessions sorted by call ID, for the
// debug surface. Mutating the result does not affect the store.
func (st *Store) Snapshot() []Session {
	st.mu.RLock()
	out := make([]Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, *s)
	}
	st.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CallID < out[j].CallID })
	return out
}

// Sweep deletes every session idle for longer than maxIdle and
// returns how many were removed.
func (st *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for callID, s := range st.sessions {
		if s.LastActivityAt.Before(cutoff) {
			delete(st.sessions, callID)
			removed++
			st.logger.Info("cleaned up inactive call", "call_id", callID)
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
// Call in a goroutine.
func (st *Store) StartSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(maxIdle); n > 0 {
				st.logger.Debug("sweep removed sessions", "count", n)
			}
		}
	}
}
